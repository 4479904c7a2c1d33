// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package finality

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/merkle"
	"github.com/bitmark-inc/itemd/notary"
	"github.com/bitmark-inc/itemd/transactionrecord"
	"github.com/bitmark-inc/itemd/transport"
	"github.com/bitmark-inc/itemd/vault"
)

// retry timing
const (
	defaultDeliveryTimeout = 10 * time.Second
	defaultRetryInterval   = 1 * time.Second
	maximumBackoff         = 5 * time.Minute
)

// Coordinator - claims and broadcasts transactions this node initiated
//
// as a background process it retries deliveries that failed in
// transit until shutdown; with an outbox the owed deliveries are
// resumed by the next run
type Coordinator struct {
	sync.Mutex

	log       *logger.L
	self      *account.Account
	authority notary.Authority
	transport transport.Transport
	recorder  *Recorder
	outbox    vault.Outbox

	deliveryTimeout time.Duration
	retryInterval   time.Duration
	pending         []*delivery
}

// a delivery still owed to a participant
type delivery struct {
	to       *account.Account
	txId     merkle.Digest
	packed   []byte
	attempts int
	next     time.Time
}

// NewCoordinator - coordinator for the party self; outbox may be nil
func NewCoordinator(self *account.Account, authority notary.Authority, t transport.Transport, recorder *Recorder, outbox vault.Outbox) *Coordinator {
	return &Coordinator{
		log:             logger.New("finality"),
		self:            self,
		authority:       authority,
		transport:       t,
		recorder:        recorder,
		outbox:          outbox,
		deliveryTimeout: defaultDeliveryTimeout,
		retryInterval:   defaultRetryInterval,
	}
}

// SetRetryInterval - time between retry rounds and the first backoff
func (c *Coordinator) SetRetryInterval(interval time.Duration) {
	c.Lock()
	c.retryInterval = interval
	c.Unlock()
}

// Finalise - claim the consumed state and deliver the result
//
// a lost claim returns fault.ErrStateAlreadyConsumed and nothing is
// recorded anywhere; after a successful claim the transaction is
// returned even if some participants could not yet be reached
func (c *Coordinator) Finalise(ctx context.Context, endorsed *transactionrecord.Endorsed) (*transactionrecord.Finalised, error) {
	if nil == endorsed || nil == endorsed.Proposal {
		return nil, fault.ErrMissingParameters
	}
	proposal := endorsed.Proposal

	if err := endorsed.CheckEndorsements(); nil != err {
		return nil, err
	}
	if !c.authority.Identity().Equal(proposal.Notary) {
		return nil, fault.ErrWrongNotary
	}
	txId, err := proposal.TxId()
	if nil != err {
		return nil, err
	}

	var receipt *transactionrecord.Receipt
	if nil != proposal.Input {
		receipt, err = c.authority.Claim(ctx, proposal.Input.Ref, txId)
		if nil != err {
			c.log.Warnf("claim: %s  %s  error: %s", txId, proposal.Input.Ref, err)
			return nil, err
		}
		err = notary.VerifyReceipt(receipt, proposal.Notary, proposal.Input.Ref, txId)
		if nil != err {
			c.log.Errorf("receipt: %s  error: %s", txId, err)
			return nil, err
		}
	}

	finalised := endorsed.Finalise(receipt)
	packed, err := finalised.Pack()
	if nil != err {
		return nil, err
	}

	// the broadcast is not abandoned with the caller's context
	ctx = context.WithoutCancel(ctx)

	participants := proposal.Participants()
	others := make([]*account.Account, 0, len(participants))
	for _, party := range participants {
		if !party.Equal(c.self) {
			others = append(others, party)
		}
	}

	// owed before anything is recorded so a restart resumes delivery
	if nil != c.outbox && 0 != len(others) {
		if err := c.outbox.Owe(txId, others, packed); nil != err {
			c.log.Errorf("outbox: %s  error: %s", txId, err)
		}
	}

	localErr := c.recorder.Record(finalised)
	if nil != localErr {
		c.log.Errorf("local record: %s  error: %s", txId, localErr)
	}

	c.broadcast(ctx, others, txId, packed)

	return finalised, localErr
}

// deliver to every other participant at once; the failures that may
// succeed later are queued for retry
func (c *Coordinator) broadcast(ctx context.Context, others []*account.Account, txId merkle.Digest, packed []byte) {
	var wg sync.WaitGroup
	for _, party := range others {
		wg.Add(1)
		go func(party *account.Account) {
			defer wg.Done()
			d := &delivery{
				to:     party,
				txId:   txId,
				packed: packed,
			}
			c.attempt(ctx, d)
		}(party)
	}
	wg.Wait()
}

// one delivery attempt; returns true when the delivery is settled
func (c *Coordinator) attempt(ctx context.Context, d *delivery) bool {
	ctx, cancel := context.WithTimeout(ctx, c.deliveryTimeout)
	defer cancel()

	_, err := c.transport.Call(ctx, d.to, transport.FunctionFinalise, d.packed)
	switch {
	case nil == err:
		c.log.Debugf("delivered: %s  to: %s", d.txId, d.to)
		c.settle(d)
		return true
	case fault.IsErrTransport(err), errors.Is(err, context.Canceled):
		c.log.Warnf("deliver: %s  to: %s  attempt: %d  error: %s", d.txId, d.to, d.attempts+1, err)
		c.schedule(d)
		return false
	default:
		// the participant rejected the transaction; repeating it will
		// not change the answer
		c.log.Errorf("deliver: %s  to: %s  rejected: %s", d.txId, d.to, err)
		c.settle(d)
		return true
	}
}

func (c *Coordinator) settle(d *delivery) {
	if nil == c.outbox {
		return
	}
	if err := c.outbox.Settle(d.txId, d.to); nil != err {
		c.log.Errorf("outbox: %s  to: %s  settle error: %s", d.txId, d.to, err)
	}
}

// queue every delivery a previous run left owed; receivers record
// idempotently so one already in flight may be repeated
func (c *Coordinator) resume() {
	if nil == c.outbox {
		return
	}
	owed, err := c.outbox.Owed()
	if nil != err {
		c.log.Errorf("outbox: error: %s", err)
		return
	}

	c.Lock()
	defer c.Unlock()

	now := time.Now()
	resumed := 0
scan:
	for _, o := range owed {
		for _, d := range c.pending {
			if d.txId == o.TxId && d.to.Equal(o.To) {
				continue scan
			}
		}
		c.pending = append(c.pending, &delivery{
			to:     o.To,
			txId:   o.TxId,
			packed: o.Packed,
			next:   now,
		})
		resumed += 1
	}
	if 0 != resumed {
		c.log.Infof("resumed deliveries: %d", resumed)
	}
}

func (c *Coordinator) schedule(d *delivery) {
	c.Lock()
	defer c.Unlock()

	backoff := c.retryInterval
	for i := 0; i < d.attempts && backoff < maximumBackoff; i += 1 {
		backoff *= 2
	}
	if backoff > maximumBackoff {
		backoff = maximumBackoff
	}
	d.attempts += 1
	d.next = time.Now().Add(backoff)
	c.pending = append(c.pending, d)
}

// Pending - number of deliveries waiting for a retry
func (c *Coordinator) Pending() int {
	c.Lock()
	defer c.Unlock()
	return len(c.pending)
}

// Run - retry pending deliveries until shutdown
func (c *Coordinator) Run(args interface{}, shutdown <-chan struct{}) {
	log := c.log
	log.Info("starting…")

	c.resume()

	c.Lock()
	interval := c.retryInterval
	c.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-shutdown
		cancel()
	}()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
			c.retry(ctx)
		}
	}

	log.Info("stopped")
}

// attempt every delivery whose backoff has expired
func (c *Coordinator) retry(ctx context.Context) {
	now := time.Now()

	c.Lock()
	due := make([]*delivery, 0, len(c.pending))
	waiting := c.pending[:0]
	for _, d := range c.pending {
		if now.Before(d.next) {
			waiting = append(waiting, d)
		} else {
			due = append(due, d)
		}
	}
	c.pending = waiting
	c.Unlock()

	for _, d := range due {
		if nil != ctx.Err() {
			c.schedule(d)
			continue
		}
		c.attempt(ctx, d)
	}
}
