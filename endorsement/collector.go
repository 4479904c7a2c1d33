// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package endorsement

import (
	"context"
	"fmt"

	"github.com/bitmark-inc/logger"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/merkle"
	"github.com/bitmark-inc/itemd/transactionrecord"
	"github.com/bitmark-inc/itemd/transport"
)

// Refusal - a counterparty did not endorse
//
// Reason is the error the counterparty returned, or the transport
// failure that prevented an answer
type Refusal struct {
	Party  *account.Account
	Reason error
}

func (r *Refusal) Error() string {
	return fmt.Sprintf("refused by: %s  reason: %s", r.Party, r.Reason)
}

// Unwrap - the underlying reason
func (r *Refusal) Unwrap() error {
	return r.Reason
}

// Collector - obtains endorsements for proposals this node initiates
type Collector struct {
	log       *logger.L
	key       *account.PrivateKey
	transport transport.Transport
}

// NewCollector - collector signing with key and reaching parties
// through t
func NewCollector(key *account.PrivateKey, t transport.Transport) *Collector {
	return &Collector{
		log:       logger.New("endorse"),
		key:       key,
		transport: t,
	}
}

// Collect - self-endorse, then ask every other signer concurrently
//
// the first refusal cancels the remaining requests and is returned as
// a *Refusal
func (c *Collector) Collect(ctx context.Context, proposal *transactionrecord.Proposal) (*transactionrecord.Endorsed, error) {
	if err := proposal.Verify(); nil != err {
		return nil, err
	}

	self := c.key.Account()
	if !account.Contains(proposal.Signers, self) {
		return nil, fault.ErrNotAParticipant
	}

	packed, err := proposal.Pack()
	if nil != err {
		return nil, err
	}
	txId := packed.TxId()

	counterparties := make([]*account.Account, 0, len(proposal.Signers))
	for _, signer := range proposal.Signers {
		if !signer.Equal(self) {
			counterparties = append(counterparties, signer)
		}
	}

	c.log.Infof("collect: %s  %s  from: %d parties", txId, proposal.Command, len(counterparties))

	endorsements := make([]*transactionrecord.Endorsement, len(counterparties))
	g, gctx := errgroup.WithContext(ctx)
	for i, party := range counterparties {
		i, party := i, party
		g.Go(func() error {
			e, err := c.request(gctx, party, packed, txId)
			if nil != err {
				return &Refusal{
					Party:  party,
					Reason: err,
				}
			}
			endorsements[i] = e
			return nil
		})
	}

	if err := g.Wait(); nil != err {
		c.log.Warnf("collect: %s  %s", txId, err)
		return nil, err
	}

	endorsed := &transactionrecord.Endorsed{
		Proposal:     proposal,
		Endorsements: append([]*transactionrecord.Endorsement{transactionrecord.Endorse(c.key, txId)}, endorsements...),
	}
	if err := endorsed.CheckEndorsements(); nil != err {
		return nil, err
	}

	c.log.Infof("collect: %s  complete", txId)
	return endorsed, nil
}

// one session with a counterparty
func (c *Collector) request(ctx context.Context, party *account.Account, packed transactionrecord.Packed, txId merkle.Digest) (*transactionrecord.Endorsement, error) {
	results, err := c.transport.Call(ctx, party, transport.FunctionEndorse, packed)
	if nil != err {
		return nil, err
	}
	if 1 != len(results) {
		return nil, fault.ErrCountMismatch
	}

	t, err := transactionrecord.Packed(results[0]).UnpackExact()
	if nil != err {
		return nil, err
	}
	endorsement, ok := t.(*transactionrecord.Endorsement)
	if !ok || !party.Equal(endorsement.Signer) {
		return nil, fault.ErrUnexpectedReply
	}
	if err := endorsement.Check(txId); nil != err {
		return nil, err
	}

	c.log.Debugf("endorsed: %s  by: %s", txId, party)
	return endorsement, nil
}
