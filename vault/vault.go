// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package vault holds the finalised transactions a node took part in
// and the single live snapshot of every item it knows
package vault

import (
	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/merkle"
	"github.com/bitmark-inc/itemd/transactionrecord"
)

// Vault - persistence and query of item snapshots
type Vault interface {
	Live(linearId item.LinearId) (*item.StateAndRef, error)
	LiveBySKU(sku string) (*item.StateAndRef, error)
	Record(tx *transactionrecord.Finalised) error
	Transaction(txId merkle.Digest) (*transactionrecord.Finalised, error)
}

// Owed - a finalised transaction not yet delivered to one participant
type Owed struct {
	TxId   merkle.Digest
	To     *account.Account
	Packed []byte
}

// Outbox - deliveries that must survive a restart
type Outbox interface {
	Owe(txId merkle.Digest, parties []*account.Account, packed []byte) error
	Settle(txId merkle.Digest, to *account.Account) error
	Owed() ([]Owed, error)
}
