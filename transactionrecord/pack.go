// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"unicode/utf8"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/util"
)

// Pack - pack a stored snapshot
//
// Varint64(tag) followed by the reference then the item
func (state *State) Pack() (Packed, error) {
	if nil == state.State {
		return nil, fault.ErrMissingParameters
	}
	message := util.ToVarint64(uint64(StateTag))
	message = appendStateRef(message, state.Ref)
	return appendItem(message, state.State)
}

// Pack - pack a proposal
//
// Varint64(tag) command, optional input (flag, ref, item), output,
// signer count and signers, notary, nonce
//
// signers are packed in canonical order so that equal proposals give
// equal transaction ids
func (proposal *Proposal) Pack() (Packed, error) {
	if nil == proposal.Output || nil == proposal.Notary {
		return nil, fault.ErrMissingParameters
	}
	if len(proposal.Signers) > maxBuyers+1 {
		return nil, fault.ErrCountMismatch
	}

	message := util.ToVarint64(uint64(ProposalTag))
	message = appendUint64(message, uint64(proposal.Command))

	if nil == proposal.Input {
		message = appendUint64(message, 0)
	} else {
		if nil == proposal.Input.State {
			return nil, fault.ErrMissingParameters
		}
		message = appendUint64(message, 1)
		message = appendStateRef(message, proposal.Input.Ref)
		var err error
		message, err = appendItem(message, proposal.Input.State)
		if nil != err {
			return nil, err
		}
	}

	message, err := appendItem(message, proposal.Output)
	if nil != err {
		return nil, err
	}

	signers := make([]*account.Account, len(proposal.Signers))
	for i, signer := range proposal.Signers {
		if nil == signer {
			return nil, fault.ErrMissingParameters
		}
		signers[i] = signer
	}
	account.Sort(signers)
	message = appendUint64(message, uint64(len(signers)))
	for _, signer := range signers {
		message = appendAccount(message, signer)
	}

	message = appendAccount(message, proposal.Notary)
	return appendUint64(message, proposal.Nonce), nil
}

// Pack - pack a single endorsement
func (endorsement *Endorsement) Pack() (Packed, error) {
	message := util.ToVarint64(uint64(EndorsementTag))
	return appendEndorsement(message, endorsement)
}

// Pack - pack an endorsed proposal
//
// Varint64(tag) followed by the packed proposal as a byte field then
// the endorsements
func (endorsed *Endorsed) Pack() (Packed, error) {
	message := util.ToVarint64(uint64(EndorsedTag))
	return appendProposalAndEndorsements(message, endorsed.Proposal, endorsed.Endorsements)
}

// Pack - pack a notary receipt with its signature last
func (receipt *Receipt) Pack() (Packed, error) {
	message, err := receipt.message()
	if nil != err {
		return nil, err
	}
	if 0 == len(receipt.Signature) || len(receipt.Signature) > maxSignatureLength {
		return nil, fault.ErrInvalidSignature
	}
	return appendBytes(message, receipt.Signature), nil
}

// the part of a receipt covered by the notary signature
func (receipt *Receipt) message() (Packed, error) {
	if nil == receipt.Notary {
		return nil, fault.ErrMissingParameters
	}
	message := util.ToVarint64(uint64(ReceiptTag))
	message = appendStateRef(message, receipt.Ref)
	message = append(message, receipt.TxId[:]...)
	return appendAccount(message, receipt.Notary), nil
}

// Pack - pack a finalised transaction
//
// as Endorsed followed by the receipt as a byte field, empty for
// Create
func (finalised *Finalised) Pack() (Packed, error) {
	message := util.ToVarint64(uint64(FinalisedTag))
	message, err := appendProposalAndEndorsements(message, finalised.Proposal, finalised.Endorsements)
	if nil != err {
		return nil, err
	}
	if nil == finalised.Receipt {
		return appendBytes(message, nil), nil
	}
	receipt, err := finalised.Receipt.Pack()
	if nil != err {
		return nil, err
	}
	return appendBytes(message, receipt), nil
}

func appendProposalAndEndorsements(buffer Packed, proposal *Proposal, endorsements []*Endorsement) (Packed, error) {
	if nil == proposal {
		return nil, fault.ErrMissingParameters
	}
	packed, err := proposal.Pack()
	if nil != err {
		return nil, err
	}
	buffer = appendBytes(buffer, packed)

	if len(endorsements) > maxBuyers+1 {
		return nil, fault.ErrCountMismatch
	}
	buffer = appendUint64(buffer, uint64(len(endorsements)))
	for _, e := range endorsements {
		buffer, err = appendEndorsement(buffer, e)
		if nil != err {
			return nil, err
		}
	}
	return buffer, nil
}

func appendEndorsement(buffer Packed, endorsement *Endorsement) (Packed, error) {
	if nil == endorsement || nil == endorsement.Signer {
		return nil, fault.ErrMissingParameters
	}
	if 0 == len(endorsement.Signature) || len(endorsement.Signature) > maxSignatureLength {
		return nil, fault.ErrInvalidSignature
	}
	buffer = appendAccount(buffer, endorsement.Signer)
	return appendBytes(buffer, endorsement.Signature), nil
}

// append an item: seller, name, sku, price, buyers, for sale, linear id
func appendItem(buffer Packed, i *item.Item) (Packed, error) {
	if nil == i.Seller {
		return nil, fault.ErrMissingParameters
	}
	if utf8.RuneCountInString(i.Name) > maxNameLength || utf8.RuneCountInString(i.SKU) > maxSKULength {
		return nil, fault.ErrFieldTooLong
	}
	if len(i.PotentialBuyers) > maxBuyers {
		return nil, fault.ErrCountMismatch
	}

	buffer = appendAccount(buffer, i.Seller)
	buffer = appendString(buffer, i.Name)
	buffer = appendString(buffer, i.SKU)
	buffer = appendUint64(buffer, uint64(i.Price.Quantity))
	buffer = appendUint64(buffer, i.Price.Currency.Uint64())

	buffer = appendUint64(buffer, uint64(len(i.PotentialBuyers)))
	for _, buyer := range i.PotentialBuyers {
		if nil == buyer {
			return nil, fault.ErrMissingParameters
		}
		buffer = appendAccount(buffer, buyer)
	}

	if i.ForSale {
		buffer = appendUint64(buffer, 1)
	} else {
		buffer = appendUint64(buffer, 0)
	}

	buffer = appendString(buffer, i.LinearId.ExternalId)
	return append(buffer, i.LinearId.Id[:]...), nil
}

// append a state reference: fixed size digest then Varint64(index)
func appendStateRef(buffer Packed, ref item.StateRef) Packed {
	buffer = append(buffer, ref.TxId[:]...)
	return appendUint64(buffer, ref.Index)
}

// append a single string to a buffer
//
// the field is prefixed by Varint64(length)
func appendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// append an address to a buffer
//
// the field is prefixed by Varint64(length)
func appendAccount(buffer Packed, address *account.Account) Packed {
	return appendBytes(buffer, address.Bytes())
}

// append a bytes to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	return append(buffer, data...)
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	return append(buffer, util.ToVarint64(value)...)
}
