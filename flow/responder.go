// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package flow

import (
	"context"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/endorsement"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/finality"
	"github.com/bitmark-inc/itemd/transactionrecord"
	"github.com/bitmark-inc/itemd/transport"
)

// Responder - takes part in operations started by other nodes
type Responder struct {
	log      *logger.L
	endorser *endorsement.Endorser
	recorder *finality.Recorder
}

// NewResponder - answer with the given endorser and recorder
func NewResponder(endorser *endorsement.Endorser, recorder *finality.Recorder) *Responder {
	return &Responder{
		log:      logger.New("responder"),
		endorser: endorser,
		recorder: recorder,
	}
}

// Register - install the endorse and finalise handlers
func (r *Responder) Register(server transport.Server) {
	server.Register(transport.FunctionEndorse, r.endorse)
	server.Register(transport.FunctionFinalise, r.finalise)
}

// parameters: [packed proposal]
func (r *Responder) endorse(ctx context.Context, from *account.Account, parameters [][]byte) ([][]byte, error) {
	if 1 != len(parameters) {
		return nil, fault.ErrMissingParameters
	}

	e, err := r.endorser.Endorse(ctx, from, parameters[0])
	if nil != err {
		return nil, err
	}
	packed, err := e.Pack()
	if nil != err {
		return nil, err
	}
	return [][]byte{packed}, nil
}

// parameters: [packed finalised transaction]
func (r *Responder) finalise(ctx context.Context, from *account.Account, parameters [][]byte) ([][]byte, error) {
	if 1 != len(parameters) {
		return nil, fault.ErrMissingParameters
	}

	t, err := transactionrecord.Packed(parameters[0]).UnpackExact()
	if nil != err {
		return nil, err
	}
	tx, ok := t.(*transactionrecord.Finalised)
	if !ok {
		return nil, fault.ErrNotTransactionPack
	}

	// only a signer can have initiated the transaction
	if nil == from || !account.Contains(tx.Proposal.Signers, from) {
		r.log.Warnf("finalised transaction from non-signer: %s", from)
		return nil, fault.ErrNotAParticipant
	}

	if err := r.recorder.Record(tx); nil != err {
		return nil, err
	}
	return [][]byte{}, nil
}
