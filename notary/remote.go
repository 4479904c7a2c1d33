// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notary

import (
	"context"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/merkle"
	"github.com/bitmark-inc/itemd/transactionrecord"
	"github.com/bitmark-inc/itemd/transport"
)

// Remote - an authority running on another node
type Remote struct {
	identity  *account.Account
	transport transport.Transport
}

// NewRemote - reach the notary identity through a transport
func NewRemote(identity *account.Account, t transport.Transport) *Remote {
	return &Remote{
		identity:  identity,
		transport: t,
	}
}

// Identity - the notary account
func (remote *Remote) Identity() *account.Account {
	return remote.identity
}

// Claim - send the claim and check the returned receipt
func (remote *Remote) Claim(ctx context.Context, ref item.StateRef, txId merkle.Digest) (*transactionrecord.Receipt, error) {
	results, err := remote.transport.Call(ctx, remote.identity, transport.FunctionClaim, ref.Bytes(), txId[:])
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
	receipt, ok := t.(*transactionrecord.Receipt)
	if !ok {
		return nil, fault.ErrUnexpectedReply
	}

	if err := VerifyReceipt(receipt, remote.identity, ref, txId); nil != err {
		return nil, err
	}
	return receipt, nil
}

// Serve - answer claims on a transport server
//
// parameters: [state ref bytes, tx id]
func Serve(server transport.Server, authority Authority) {
	server.Register(transport.FunctionClaim, func(ctx context.Context, from *account.Account, parameters [][]byte) ([][]byte, error) {
		if 2 != len(parameters) {
			return nil, fault.ErrMissingParameters
		}
		ref, err := item.StateRefFromBytes(parameters[0])
		if nil != err {
			return nil, err
		}
		txId := merkle.Digest{}
		if err := merkle.DigestFromBytes(&txId, parameters[1]); nil != err {
			return nil, err
		}

		receipt, err := authority.Claim(ctx, ref, txId)
		if nil != err {
			return nil, err
		}
		packed, err := receipt.Pack()
		if nil != err {
			return nil, err
		}
		return [][]byte{packed}, nil
	})
}
