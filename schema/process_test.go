// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/contract"
	"github.com/bitmark-inc/itemd/currency"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/fixtures"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/messagebus"
	"github.com/bitmark-inc/itemd/proposal"
	"github.com/bitmark-inc/itemd/transactionrecord"
)

func finalisedMessage(t *testing.T) messagebus.Message {
	i, err := item.New(fixtures.Seller.Account(), "Fidget spinner", "001", currency.NewAmount(500, currency.USD), []*account.Account{fixtures.Buyer1.Account()})
	require.NoError(t, err)
	p, err := proposal.NewBuilder(fixtures.Notary.Account()).Propose(contract.Create, nil, i)
	require.NoError(t, err)
	packed, err := (&transactionrecord.Finalised{Proposal: p}).Pack()
	require.NoError(t, err)
	return messagebus.Message{
		Command:    messagebus.FinalisedCommand,
		Parameters: [][]byte{packed},
	}
}

func TestProcessReportsErrors(t *testing.T) {
	p, err := Open(":memory:", nil)
	require.NoError(t, err, "open")

	message := finalisedMessage(t)
	assert.NoError(t, p.process(message), "valid transaction")
	assert.NoError(t, p.process(messagebus.Message{Command: "other"}), "other command ignored")

	assert.Equal(t, fault.ErrMissingParameters, p.process(messagebus.Message{Command: messagebus.FinalisedCommand}), "no parameters")
	assert.Error(t, p.process(messagebus.Message{
		Command:    messagebus.FinalisedCommand,
		Parameters: [][]byte{[]byte("garbage")},
	}), "unpack")

	require.NoError(t, p.Close(), "close")
	assert.Error(t, p.process(message), "apply on a closed database")
}
