// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proposal assembles candidate transitions and checks them
// locally before any other party sees them
package proposal

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/contract"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/transactionrecord"
)

// Builder - creates proposals that name a fixed notary
type Builder struct {
	notary *account.Account
}

// NewBuilder - builder for proposals settled by the given notary
func NewBuilder(notary *account.Account) *Builder {
	return &Builder{
		notary: notary,
	}
}

// Notary - the authority named in every proposal
func (b *Builder) Notary() *account.Account {
	return b.notary
}

// Propose - assemble and verify a proposal
//
// consumed is nil for Create; the signer set is computed from the
// snapshots so the result either verifies or is not returned
func (b *Builder) Propose(command contract.Command, consumed *item.StateAndRef, produced *item.Item) (*transactionrecord.Proposal, error) {
	if nil == b.notary {
		return nil, fault.ErrEmptyNotaryConfiguration
	}
	if nil == produced {
		return nil, fault.ErrWrongOutputCount
	}
	if nil != consumed && nil == consumed.State {
		return nil, fault.ErrWrongInputCount
	}

	proposal := &transactionrecord.Proposal{
		Command: command,
		Input:   consumed,
		Output:  produced,
		Notary:  b.notary,
	}

	signers, err := contract.RequiredSigners(command, proposal.Inputs(), proposal.Outputs())
	if nil != err {
		return nil, err
	}
	proposal.Signers = signers

	nonce, err := newNonce()
	if nil != err {
		return nil, err
	}
	proposal.Nonce = nonce

	if err := proposal.Verify(); nil != err {
		return nil, err
	}
	return proposal, nil
}

func newNonce() (uint64, error) {
	buffer := make([]byte, 8)
	if _, err := rand.Read(buffer); nil != err {
		return 0, err
	}
	return binary.BigEndian.Uint64(buffer), nil
}
