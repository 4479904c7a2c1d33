// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/contract"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/merkle"
)

// TagType - type code for records
type TagType uint64

// enumerate the possible record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	StateTag       = TagType(iota) // stored snapshot with its reference
	ProposalTag    = TagType(iota) // candidate transition
	EndorsementTag = TagType(iota) // one party's signature over a proposal
	EndorsedTag    = TagType(iota) // proposal with every required endorsement
	ReceiptTag     = TagType(iota) // uniqueness authority confirmation
	FinalisedTag   = TagType(iota) // endorsed proposal with receipt

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Transaction - generic record interface
type Transaction interface {
	Pack() (Packed, error)
}

// size limits for various fields
const (
	maxNameLength      = 256
	maxSKULength       = 128
	maxBuyers          = 1024
	maxSignatureLength = 1024
	maxAccountLength   = 128
	maxRecordLength    = 1 << 20
)

// State - a snapshot together with the output that produced it
type State struct {
	Ref   item.StateRef `json:"ref"`
	State *item.Item    `json:"state"`
}

// Proposal - a transition awaiting endorsement and finality
//
// Input is nil for Create; Signers is the complete set of parties
// that must endorse; Nonce makes otherwise identical proposals
// distinct transactions
type Proposal struct {
	Command contract.Command   `json:"command"`
	Input   *item.StateAndRef  `json:"input"`
	Output  *item.Item         `json:"output"`
	Signers []*account.Account `json:"signers"`
	Notary  *account.Account   `json:"notary"`
	Nonce   uint64             `json:"nonce,string"`
}

// Endorsement - a party's signature over a transaction id
type Endorsement struct {
	Signer    *account.Account  `json:"signer"`
	Signature account.Signature `json:"signature"`
}

// Endorsed - a proposal carrying an endorsement from every signer
type Endorsed struct {
	Proposal     *Proposal      `json:"proposal"`
	Endorsements []*Endorsement `json:"endorsements"`
}

// Receipt - the uniqueness authority's confirmation that TxId
// consumed Ref
type Receipt struct {
	Ref       item.StateRef     `json:"ref"`
	TxId      merkle.Digest     `json:"txId"`
	Notary    *account.Account  `json:"notary"`
	Signature account.Signature `json:"signature"`
}

// Finalised - a committed transition
//
// Receipt is nil for Create, which consumes nothing
type Finalised struct {
	Proposal     *Proposal      `json:"proposal"`
	Endorsements []*Endorsement `json:"endorsements"`
	Receipt      *Receipt       `json:"receipt"`
}

// Inputs - the consumed snapshots, as the verifier expects them
func (proposal *Proposal) Inputs() []*item.Item {
	if nil == proposal.Input {
		return []*item.Item{}
	}
	return []*item.Item{proposal.Input.State}
}

// Outputs - the produced snapshots, as the verifier expects them
func (proposal *Proposal) Outputs() []*item.Item {
	return []*item.Item{proposal.Output}
}

// Verify - run the item contract over the proposal
func (proposal *Proposal) Verify() error {
	return contract.Verify(proposal.Command, proposal.Inputs(), proposal.Outputs(), proposal.Signers)
}

// TxId - identifier of the transaction the proposal would create
func (proposal *Proposal) TxId() (merkle.Digest, error) {
	packed, err := proposal.Pack()
	if nil != err {
		return merkle.Digest{}, err
	}
	return packed.TxId(), nil
}

// OutputRef - reference of the produced snapshot once committed
func (proposal *Proposal) OutputRef() (item.StateRef, error) {
	txId, err := proposal.TxId()
	if nil != err {
		return item.StateRef{}, err
	}
	return item.StateRef{
		TxId:  txId,
		Index: 0,
	}, nil
}

// Participants - every party that must learn about the outcome
func (proposal *Proposal) Participants() []*account.Account {
	if nil == proposal.Input {
		return proposal.Output.Participants()
	}
	return account.Union(proposal.Input.State.Participants(), proposal.Output.Participants())
}

// Finalise - attach the receipt to an endorsed proposal
func (endorsed *Endorsed) Finalise(receipt *Receipt) *Finalised {
	return &Finalised{
		Proposal:     endorsed.Proposal,
		Endorsements: endorsed.Endorsements,
		Receipt:      receipt,
	}
}

// Endorsed - the finalised transaction without its receipt
func (finalised *Finalised) Endorsed() *Endorsed {
	return &Endorsed{
		Proposal:     finalised.Proposal,
		Endorsements: finalised.Endorsements,
	}
}
