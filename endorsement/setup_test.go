// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package endorsement_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/contract"
	"github.com/bitmark-inc/itemd/currency"
	"github.com/bitmark-inc/itemd/fixtures"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/merkle"
	"github.com/bitmark-inc/itemd/proposal"
	"github.com/bitmark-inc/itemd/transactionrecord"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func newItem(t *testing.T, buyers ...*account.PrivateKey) *item.Item {
	accounts := make([]*account.Account, len(buyers))
	for i, b := range buyers {
		accounts[i] = b.Account()
	}
	i, err := item.New(fixtures.Seller.Account(), "Fidget spinner", "001", currency.NewAmount(500, currency.USD), accounts)
	require.NoError(t, err, "new item")
	return i
}

func createProposal(t *testing.T, buyers ...*account.PrivateKey) *transactionrecord.Proposal {
	p, err := proposal.NewBuilder(fixtures.Notary.Account()).Propose(contract.Create, nil, newItem(t, buyers...))
	require.NoError(t, err, "propose")
	return p
}

func liveState(t *testing.T, buyers ...*account.PrivateKey) *item.StateAndRef {
	return &item.StateAndRef{
		Ref: item.StateRef{
			TxId:  merkle.NewDigest([]byte("created")),
			Index: 0,
		},
		State: newItem(t, buyers...),
	}
}

func priceProposal(t *testing.T, consumed *item.StateAndRef, quantity int64) *transactionrecord.Proposal {
	p, err := proposal.NewBuilder(fixtures.Notary.Account()).Propose(contract.UpdatePrice, consumed, consumed.State.WithNewPrice(currency.NewAmount(quantity, currency.USD)))
	require.NoError(t, err, "propose")
	return p
}

func pack(t *testing.T, tx transactionrecord.Transaction) []byte {
	packed, err := tx.Pack()
	require.NoError(t, err, "pack")
	return packed
}
