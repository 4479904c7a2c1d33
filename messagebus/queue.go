// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"sync"
)

// FinalisedCommand - a transaction was recorded in the vault; the
// single parameter is the packed finalised transaction
const FinalisedCommand = "finalised"

// Message - a command with byte parameters
type Message struct {
	Command    string
	Parameters [][]byte
}

// BroadcastQueue - every subscriber receives every message
//
// Send waits for each subscriber to accept the message, unless the
// subscriber is released first
type BroadcastQueue struct {
	sync.Mutex
	subscribers []*subscriber
}

type subscriber struct {
	queue chan Message
	done  chan struct{}
}

// Chan - subscribe with a buffer of the given size
func (b *BroadcastQueue) Chan(size int) <-chan Message {
	if size < 0 {
		size = 0
	}
	s := &subscriber{
		queue: make(chan Message, size),
		done:  make(chan struct{}),
	}
	b.Lock()
	b.subscribers = append(b.subscribers, s)
	b.Unlock()
	return s.queue
}

// Release - unsubscribe a channel returned by Chan
func (b *BroadcastQueue) Release(queue <-chan Message) {
	b.Lock()
	var released *subscriber
	for i, s := range b.subscribers {
		if (<-chan Message)(s.queue) == queue {
			released = s
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			break
		}
	}
	b.Unlock()
	if nil != released {
		close(released.done)
	}
}

// Send - deliver a message to all current subscribers
func (b *BroadcastQueue) Send(command string, parameters ...[]byte) {
	b.Lock()
	subscribers := make([]*subscriber, len(b.subscribers))
	copy(subscribers, b.subscribers)
	b.Unlock()

	m := Message{
		Command:    command,
		Parameters: parameters,
	}
	for _, s := range subscribers {
		select {
		case s.queue <- m:
		case <-s.done:
		}
	}
}

// Subscribers - number of current subscribers
func (b *BroadcastQueue) Subscribers() int {
	b.Lock()
	defer b.Unlock()
	return len(b.subscribers)
}
