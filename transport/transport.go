// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"sync"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
)

// function names
const (
	FunctionEndorse  = "P" // proposal for endorsement
	FunctionFinalise = "F" // finalised transaction for recording
	FunctionClaim    = "C" // claim a state at the notary
	errorReply       = "E"
)

// Handler - serve one request from a party
type Handler func(ctx context.Context, from *account.Account, parameters [][]byte) ([][]byte, error)

// Transport - send a request to a party and wait for the reply
type Transport interface {
	Call(ctx context.Context, to *account.Account, function string, parameters ...[]byte) ([][]byte, error)
}

// Server - accept requests for registered functions
type Server interface {
	Register(function string, handler Handler)
}

// Handlers - function table shared by the transport implementations
type Handlers struct {
	sync.RWMutex
	table map[string]Handler
}

// Register - install the handler for a function
func (h *Handlers) Register(function string, handler Handler) {
	h.Lock()
	if nil == h.table {
		h.table = make(map[string]Handler)
	}
	h.table[function] = handler
	h.Unlock()
}

// Dispatch - run the handler and encode its outcome as a reply packet
func (h *Handlers) Dispatch(ctx context.Context, from *account.Account, function string, parameters [][]byte) [][]byte {
	h.RLock()
	handler, ok := h.table[function]
	h.RUnlock()

	if !ok {
		return ErrorPacket(fault.ErrNoHandlerForFunction)
	}
	results, err := handler(ctx, from, parameters)
	if nil != err {
		return ErrorPacket(err)
	}
	return append([][]byte{[]byte(function)}, results...)
}

// ErrorPacket - reply packet for an error
func ErrorPacket(err error) [][]byte {
	class, text := fault.Class(err)
	return [][]byte{[]byte(errorReply), []byte(class), []byte(text)}
}

// DecodeReply - split a reply packet into results or a rebuilt error
func DecodeReply(function string, reply [][]byte) ([][]byte, error) {
	if 0 == len(reply) {
		return nil, fault.ErrMalformedTransportData
	}
	switch string(reply[0]) {
	case errorReply:
		if 3 != len(reply) {
			return nil, fault.ErrMalformedTransportData
		}
		return nil, fault.FromClass(string(reply[1]), string(reply[2]))
	case function:
		return reply[1:], nil
	default:
		return nil, fault.ErrUnexpectedReply
	}
}
