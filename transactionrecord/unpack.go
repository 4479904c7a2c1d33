// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/google/uuid"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/contract"
	"github.com/bitmark-inc/itemd/currency"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/merkle"
	"github.com/bitmark-inc/itemd/util"
)

// a specific decode failure raised inside the unpacker
type decodeError struct {
	err error
}

// Unpack - turn a byte slice into a record
//
// must cast result to correct type
//
// e.g.
//   switch tx := result.(type) {
//   case *transactionrecord.Proposal:
//
// n is the number of bytes consumed
func (record Packed) Unpack() (t Transaction, n int, e error) {
	defer func() {
		if r := recover(); nil != r {
			t = nil
			n = 0
			if d, ok := r.(decodeError); ok {
				e = d.err
			} else {
				e = fault.ErrNotTransactionPack
			}
		}
	}()

	u := &unpacker{record: record}
	recordType := u.uint64()

	switch TagType(recordType) {

	case StateTag:
		state := &State{
			Ref: u.stateRef(),
		}
		state.State = u.item()
		return state, u.n, nil

	case ProposalTag:
		return u.proposalBody(), u.n, nil

	case EndorsementTag:
		return u.endorsement(), u.n, nil

	case EndorsedTag:
		proposal, endorsements := u.proposalAndEndorsements()
		endorsed := &Endorsed{
			Proposal:     proposal,
			Endorsements: endorsements,
		}
		return endorsed, u.n, nil

	case ReceiptTag:
		return u.receiptBody(), u.n, nil

	case FinalisedTag:
		proposal, endorsements := u.proposalAndEndorsements()
		finalised := &Finalised{
			Proposal:     proposal,
			Endorsements: endorsements,
		}
		packedReceipt := u.bytes(0, maxRecordLength)
		if 0 != len(packedReceipt) {
			finalised.Receipt = unpackNested(packedReceipt, ReceiptTag).(*Receipt)
		}
		return finalised, u.n, nil

	default:
		return nil, 0, fault.ErrNotTransactionPack
	}
}

// UnpackExact - unpack a record that must use the whole buffer
func (record Packed) UnpackExact() (Transaction, error) {
	t, n, err := record.Unpack()
	if nil != err {
		return nil, err
	}
	if n != len(record) {
		return nil, fault.ErrNotTransactionPack
	}
	return t, nil
}

// a record embedded as a byte field must be complete and of the
// expected type
func unpackNested(packed Packed, tag TagType) Transaction {
	t, err := packed.UnpackExact()
	if nil != err {
		panic(decodeError{err})
	}
	switch tag {
	case ProposalTag:
		if _, ok := t.(*Proposal); ok {
			return t
		}
	case ReceiptTag:
		if _, ok := t.(*Receipt); ok {
			return t
		}
	}
	panic(decodeError{fault.ErrNotTransactionPack})
}

// sequential field reader; any failure panics and is recovered by
// Unpack
type unpacker struct {
	record []byte
	n      int
}

func (u *unpacker) uint64() uint64 {
	value, count := util.FromVarint64(u.record[u.n:])
	if 0 == count {
		panic(decodeError{fault.ErrNotTransactionPack})
	}
	u.n += count
	return value
}

func (u *unpacker) count(maximum int) int {
	value, count := util.ClippedVarint64(u.record[u.n:], 0, maximum)
	if 0 == count {
		panic(decodeError{fault.ErrNotTransactionPack})
	}
	u.n += count
	return value
}

func (u *unpacker) bytes(minimum int, maximum int) []byte {
	length := u.count(maximum)
	if length < minimum {
		panic(decodeError{fault.ErrNotTransactionPack})
	}
	b := u.fixed(length)
	return b
}

func (u *unpacker) fixed(length int) []byte {
	b := make([]byte, length)
	copy(b, u.record[u.n:u.n+length])
	u.n += length
	return b
}

func (u *unpacker) string(maximum int) string {
	return string(u.bytes(0, maximum))
}

func (u *unpacker) account() *account.Account {
	a, err := account.AccountFromBytes(u.bytes(1, maxAccountLength))
	if nil != err {
		panic(decodeError{err})
	}
	return a
}

func (u *unpacker) signature() account.Signature {
	return account.Signature(u.bytes(1, maxSignatureLength))
}

func (u *unpacker) digest() merkle.Digest {
	var d merkle.Digest
	copy(d[:], u.fixed(merkle.DigestLength))
	return d
}

func (u *unpacker) stateRef() item.StateRef {
	ref := item.StateRef{
		TxId: u.digest(),
	}
	ref.Index = u.uint64()
	return ref
}

func (u *unpacker) item() *item.Item {
	i := &item.Item{
		Seller: u.account(),
		Name:   u.string(4 * maxNameLength),
		SKU:    u.string(4 * maxSKULength),
	}

	quantity := int64(u.uint64())
	c, err := currency.FromUint64(u.uint64())
	if nil != err {
		panic(decodeError{err})
	}
	i.Price = currency.NewAmount(quantity, c)

	buyerCount := u.count(maxBuyers)
	i.PotentialBuyers = make([]*account.Account, buyerCount)
	for k := 0; k < buyerCount; k += 1 {
		i.PotentialBuyers[k] = u.account()
	}

	switch u.uint64() {
	case 0:
		i.ForSale = false
	case 1:
		i.ForSale = true
	default:
		panic(decodeError{fault.ErrNotTransactionPack})
	}

	i.LinearId.ExternalId = u.string(4 * maxSKULength)
	id, err := uuid.FromBytes(u.fixed(len(uuid.UUID{})))
	if nil != err {
		panic(decodeError{fault.ErrInvalidLinearId})
	}
	i.LinearId.Id = id
	return i
}

// proposal fields following the tag
func (u *unpacker) proposalBody() *Proposal {
	command, err := contract.CommandFromUint64(u.uint64())
	if nil != err {
		panic(decodeError{err})
	}
	proposal := &Proposal{
		Command: command,
	}

	switch u.uint64() {
	case 0:
	case 1:
		ref := u.stateRef()
		proposal.Input = &item.StateAndRef{
			Ref:   ref,
			State: u.item(),
		}
	default:
		panic(decodeError{fault.ErrNotTransactionPack})
	}

	proposal.Output = u.item()

	signerCount := u.count(maxBuyers + 1)
	proposal.Signers = make([]*account.Account, signerCount)
	for k := 0; k < signerCount; k += 1 {
		proposal.Signers[k] = u.account()
	}

	proposal.Notary = u.account()
	proposal.Nonce = u.uint64()
	return proposal
}

func (u *unpacker) endorsement() *Endorsement {
	endorsement := &Endorsement{
		Signer: u.account(),
	}
	endorsement.Signature = u.signature()
	return endorsement
}

func (u *unpacker) proposalAndEndorsements() (*Proposal, []*Endorsement) {
	proposal := unpackNested(u.bytes(1, maxRecordLength), ProposalTag).(*Proposal)

	endorsementCount := u.count(maxBuyers + 1)
	endorsements := make([]*Endorsement, endorsementCount)
	for k := 0; k < endorsementCount; k += 1 {
		endorsements[k] = u.endorsement()
	}
	return proposal, endorsements
}

// receipt fields following the tag
func (u *unpacker) receiptBody() *Receipt {
	receipt := &Receipt{
		Ref: u.stateRef(),
	}
	receipt.TxId = u.digest()
	receipt.Notary = u.account()
	receipt.Signature = u.signature()
	return receipt
}
