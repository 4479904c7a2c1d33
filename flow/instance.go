// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package flow

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/merkle"
	"github.com/bitmark-inc/itemd/transactionrecord"
)

// Instance - one run of an operation
type Instance struct {
	sync.Mutex

	log       *logger.L
	txId      merkle.Digest
	status    Status
	proposal  *transactionrecord.Proposal
	endorsed  *transactionrecord.Endorsed
	finalised *transactionrecord.Finalised
	err       error
}

func newInstance(log *logger.L, proposal *transactionrecord.Proposal) (*Instance, error) {
	txId, err := proposal.TxId()
	if nil != err {
		return nil, err
	}
	log.Infof("instance: %s  %s  status: %s", txId, proposal.Command, Proposed)
	return &Instance{
		log:      log,
		txId:     txId,
		status:   Proposed,
		proposal: proposal,
	}, nil
}

// setStatus - advance the state machine
//
// an illegal transition is a programming error and panics
func (i *Instance) setStatus(next Status, err error) {
	i.Lock()
	defer i.Unlock()

	if !i.status.CanBecome(next) {
		logger.Panicf("instance: %s  illegal status change: %s → %s", i.txId, i.status, next)
	}
	i.status = next
	i.err = err

	if nil != err {
		i.log.Warnf("instance: %s  status: %s  error: %s", i.txId, next, err)
	} else {
		i.log.Infof("instance: %s  status: %s", i.txId, next)
	}
}

// begin - start a stage that is only allowed from status from
func (i *Instance) begin(from Status, next Status) error {
	i.Lock()
	defer i.Unlock()

	if from != i.status {
		i.log.Warnf("instance: %s  status: %s  cannot begin: %s", i.txId, i.status, next)
		return fault.ErrIllegalStatusTransition
	}
	i.status = next
	i.err = nil
	i.log.Infof("instance: %s  status: %s", i.txId, next)
	return nil
}

// TxId - the transaction the instance is committing
func (i *Instance) TxId() merkle.Digest {
	return i.txId
}

// Status - current status
func (i *Instance) Status() Status {
	i.Lock()
	defer i.Unlock()
	return i.status
}

// Err - the reason for a Refused or Conflict status
func (i *Instance) Err() error {
	i.Lock()
	defer i.Unlock()
	return i.err
}

// Proposal - the proposal being committed
func (i *Instance) Proposal() *transactionrecord.Proposal {
	return i.proposal
}

// Finalised - the committed transaction once Finalized
func (i *Instance) Finalised() *transactionrecord.Finalised {
	i.Lock()
	defer i.Unlock()
	return i.finalised
}
