// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
)

// Network - in-process delivery between endpoints
//
// every call runs the remote handler on its own goroutine and the
// parameters and results are copied so no memory is shared
type Network struct {
	sync.RWMutex
	endpoints   map[string]*Endpoint
	unreachable map[string]bool
	delay       time.Duration
}

// Endpoint - one party attached to a Network
type Endpoint struct {
	Handlers
	network  *Network
	identity *account.Account
}

// NewNetwork - an empty network
func NewNetwork() *Network {
	return &Network{
		endpoints:   make(map[string]*Endpoint),
		unreachable: make(map[string]bool),
	}
}

// Join - attach a party
func (n *Network) Join(identity *account.Account) *Endpoint {
	e := &Endpoint{
		network:  n,
		identity: identity,
	}
	n.Lock()
	n.endpoints[identity.String()] = e
	n.Unlock()
	return e
}

// SetReachable - simulate a party going offline or returning
func (n *Network) SetReachable(identity *account.Account, reachable bool) {
	n.Lock()
	if reachable {
		delete(n.unreachable, identity.String())
	} else {
		n.unreachable[identity.String()] = true
	}
	n.Unlock()
}

// SetDelay - latency added to every delivery
func (n *Network) SetDelay(delay time.Duration) {
	n.Lock()
	n.delay = delay
	n.Unlock()
}

// Identity - the party this endpoint belongs to
func (e *Endpoint) Identity() *account.Account {
	return e.identity
}

// Call - deliver a request and wait for the reply or the context
func (e *Endpoint) Call(ctx context.Context, to *account.Account, function string, parameters ...[]byte) ([][]byte, error) {
	if err := ctx.Err(); nil != err {
		return nil, contextFault(err)
	}

	n := e.network
	n.RLock()
	remote, ok := n.endpoints[to.String()]
	down := n.unreachable[to.String()]
	delay := n.delay
	n.RUnlock()

	if !ok || down {
		return nil, fault.ErrPeerUnreachable
	}

	request := copyPacket(parameters)
	done := make(chan [][]byte, 1)
	go func() {
		if delay > 0 {
			time.Sleep(delay)
		}
		done <- copyPacket(remote.Dispatch(ctx, e.identity, function, request))
	}()

	select {
	case reply := <-done:
		return DecodeReply(function, reply)
	case <-ctx.Done():
		return nil, contextFault(ctx.Err())
	}
}

func contextFault(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fault.ErrDeliveryTimeout
	}
	return err
}

func copyPacket(packet [][]byte) [][]byte {
	result := make([][]byte, len(packet))
	for i, p := range packet {
		result[i] = append([]byte{}, p...)
	}
	return result
}
