// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package endorsement

import (
	"context"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/ratelimit"
	"github.com/bitmark-inc/itemd/transactionrecord"
	"github.com/bitmark-inc/itemd/vault"
)

// Endorser - answers endorsement requests from other parties
type Endorser struct {
	log     *logger.L
	key     *account.PrivateKey
	notary  *account.Account
	vault   vault.Vault
	limiter *rate.Limiter
}

// NewEndorser - endorser signing with key, accepting only proposals
// settled by notary
func NewEndorser(key *account.PrivateKey, notary *account.Account, v vault.Vault, limiter *rate.Limiter) *Endorser {
	return &Endorser{
		log:     logger.New("endorse"),
		key:     key,
		notary:  notary,
		vault:   v,
		limiter: limiter,
	}
}

// Endorse - check a packed proposal from a party and sign its tx id
func (e *Endorser) Endorse(ctx context.Context, from *account.Account, packed []byte) (*transactionrecord.Endorsement, error) {
	if err := ratelimit.Limit(ctx, e.limiter); nil != err {
		return nil, err
	}

	t, err := transactionrecord.Packed(packed).UnpackExact()
	if nil != err {
		return nil, err
	}
	proposal, ok := t.(*transactionrecord.Proposal)
	if !ok {
		return nil, fault.ErrNotTransactionPack
	}
	txId, err := proposal.TxId()
	if nil != err {
		return nil, err
	}

	if err := e.check(from, proposal); nil != err {
		e.log.Warnf("refuse: %s  from: %s  error: %s", txId, from, err)
		return nil, err
	}

	e.log.Infof("endorse: %s  %s  from: %s", txId, proposal.Command, from)
	return transactionrecord.Endorse(e.key, txId), nil
}

func (e *Endorser) check(from *account.Account, proposal *transactionrecord.Proposal) error {
	if !account.Contains(proposal.Signers, e.key.Account()) {
		return fault.ErrNotAParticipant
	}
	if nil == from || !account.Contains(proposal.Signers, from) {
		return fault.ErrNotAParticipant
	}
	if !e.notary.Equal(proposal.Notary) {
		return fault.ErrWrongNotary
	}

	// the consumed snapshot must be the one this node holds as live
	if nil != proposal.Input {
		live, err := e.vault.Live(proposal.Input.State.LinearId)
		switch {
		case fault.ErrItemNotFound == err:
		case nil != err:
			return err
		case live.Ref != proposal.Input.Ref || !live.State.Equal(proposal.Input.State):
			return fault.ErrLiveStateMismatch
		}
	} else {
		_, err := e.vault.Live(proposal.Output.LinearId)
		switch {
		case fault.ErrItemNotFound == err:
		case nil != err:
			return err
		default:
			return fault.ErrItemAlreadyExists
		}
	}

	return proposal.Verify()
}
