// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/merkle"
)

// Endorse - sign a transaction id
func Endorse(key *account.PrivateKey, txId merkle.Digest) *Endorsement {
	return &Endorsement{
		Signer:    key.Account(),
		Signature: key.Sign(txId[:]),
	}
}

// Check - the endorsement is a valid signature over the transaction id
func (endorsement *Endorsement) Check(txId merkle.Digest) error {
	if nil == endorsement.Signer {
		return fault.ErrMissingParameters
	}
	return endorsement.Signer.CheckSignature(txId[:], endorsement.Signature)
}

// CheckEndorsements - every signer endorsed exactly once and every
// signature is valid
func (endorsed *Endorsed) CheckEndorsements() error {
	return checkEndorsements(endorsed.Proposal, endorsed.Endorsements)
}

// CheckEndorsements - every signer endorsed exactly once and every
// signature is valid
func (finalised *Finalised) CheckEndorsements() error {
	return checkEndorsements(finalised.Proposal, finalised.Endorsements)
}

func checkEndorsements(proposal *Proposal, endorsements []*Endorsement) error {
	if nil == proposal {
		return fault.ErrMissingParameters
	}
	txId, err := proposal.TxId()
	if nil != err {
		return err
	}

	seen := make([]*account.Account, 0, len(endorsements))
	for _, e := range endorsements {
		if nil == e || nil == e.Signer {
			return fault.ErrMissingParameters
		}
		if account.Contains(seen, e.Signer) {
			return fault.ErrDuplicateEndorsement
		}
		if !account.Contains(proposal.Signers, e.Signer) {
			return fault.ErrNotAParticipant
		}
		if err := e.Check(txId); nil != err {
			return err
		}
		seen = append(seen, e.Signer)
	}

	for _, signer := range proposal.Signers {
		if !account.Contains(seen, signer) {
			return fault.ErrEndorsementMissing
		}
	}
	return nil
}

// SignReceipt - the authority confirms that txId consumed ref
func SignReceipt(key *account.PrivateKey, ref item.StateRef, txId merkle.Digest) (*Receipt, error) {
	receipt := &Receipt{
		Ref:    ref,
		TxId:   txId,
		Notary: key.Account(),
	}
	message, err := receipt.message()
	if nil != err {
		return nil, err
	}
	receipt.Signature = key.Sign(message)
	return receipt, nil
}

// Check - the receipt was signed by the expected notary
func (receipt *Receipt) Check(notary *account.Account) error {
	if nil == receipt.Notary || !receipt.Notary.Equal(notary) {
		return fault.ErrWrongNotary
	}
	message, err := receipt.message()
	if nil != err {
		return err
	}
	if err := notary.CheckSignature(message, receipt.Signature); nil != err {
		return fault.ErrInvalidReceipt
	}
	return nil
}
