// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/contract"
	"github.com/bitmark-inc/itemd/currency"
	"github.com/bitmark-inc/itemd/fixtures"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/merkle"
	"github.com/bitmark-inc/itemd/transactionrecord"
)

func createProposal(t *testing.T) *transactionrecord.Proposal {
	i, err := item.New(fixtures.Seller.Account(), "Fidget spinner", "001", currency.NewAmount(500, currency.USD), []*account.Account{fixtures.Buyer1.Account()})
	require.Nil(t, err, "new item")

	return &transactionrecord.Proposal{
		Command: contract.Create,
		Output:  i,
		Signers: i.Participants(),
		Notary:  fixtures.Notary.Account(),
		Nonce:   12345,
	}
}

func addBuyerProposal(t *testing.T) *transactionrecord.Proposal {
	created := createProposal(t)
	input := &item.StateAndRef{
		Ref: item.StateRef{
			TxId:  merkle.NewDigest([]byte("create")),
			Index: 0,
		},
		State: created.Output,
	}
	output := input.State.WithNewBuyers([]*account.Account{fixtures.Buyer1.Account(), fixtures.Buyer2.Account()})

	return &transactionrecord.Proposal{
		Command: contract.AddBuyer,
		Input:   input,
		Output:  output,
		Signers: account.Union(input.State.Participants(), output.Participants()),
		Notary:  fixtures.Notary.Account(),
		Nonce:   67890,
	}
}

func endorseAll(t *testing.T, proposal *transactionrecord.Proposal, keys ...*account.PrivateKey) *transactionrecord.Endorsed {
	txId, err := proposal.TxId()
	require.Nil(t, err, "tx id")

	endorsed := &transactionrecord.Endorsed{
		Proposal: proposal,
	}
	for _, key := range keys {
		endorsed.Endorsements = append(endorsed.Endorsements, transactionrecord.Endorse(key, txId))
	}
	return endorsed
}
