// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package finality

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/messagebus"
	"github.com/bitmark-inc/itemd/notary"
	"github.com/bitmark-inc/itemd/transactionrecord"
	"github.com/bitmark-inc/itemd/vault"
)

// Recorder - verifies finalised transactions and stores them
type Recorder struct {
	log    *logger.L
	self   *account.Account
	notary *account.Account
	vault  vault.Vault
	bus    *messagebus.BroadcastQueue
}

// NewRecorder - recorder for the party self trusting receipts from
// notary; bus may be nil
func NewRecorder(self *account.Account, notary *account.Account, v vault.Vault, bus *messagebus.BroadcastQueue) *Recorder {
	return &Recorder{
		log:    logger.New("finality"),
		self:   self,
		notary: notary,
		vault:  v,
		bus:    bus,
	}
}

// Record - check every part of the transaction, then make its output
// live in the vault
func (r *Recorder) Record(tx *transactionrecord.Finalised) error {
	if nil == tx || nil == tx.Proposal || nil == tx.Proposal.Output {
		return fault.ErrMissingParameters
	}
	proposal := tx.Proposal

	packed, err := tx.Pack()
	if nil != err {
		return err
	}
	txId, err := proposal.TxId()
	if nil != err {
		return err
	}

	if err := r.check(tx); nil != err {
		r.log.Warnf("reject: %s  error: %s", txId, err)
		return err
	}

	if err := r.vault.Record(tx); nil != err {
		r.log.Errorf("record: %s  error: %s", txId, err)
		return err
	}

	r.log.Infof("finalised: %s  %s  item: %s", txId, proposal.Command, proposal.Output)

	if nil != r.bus {
		r.bus.Send(messagebus.FinalisedCommand, packed)
	}
	return nil
}

func (r *Recorder) check(tx *transactionrecord.Finalised) error {
	proposal := tx.Proposal

	if !account.Contains(proposal.Participants(), r.self) {
		return fault.ErrNotAParticipant
	}
	if !r.notary.Equal(proposal.Notary) {
		return fault.ErrWrongNotary
	}
	if err := proposal.Verify(); nil != err {
		return err
	}
	if err := tx.CheckEndorsements(); nil != err {
		return err
	}

	if nil == proposal.Input {
		if nil != tx.Receipt {
			return fault.ErrInvalidReceipt
		}
		return nil
	}

	txId, err := proposal.TxId()
	if nil != err {
		return err
	}
	return notary.VerifyReceipt(tx.Receipt, r.notary, proposal.Input.Ref, txId)
}
