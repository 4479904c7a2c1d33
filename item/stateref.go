// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package item

import (
	"fmt"

	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/merkle"
	"github.com/bitmark-inc/itemd/util"
)

// StateRef - points at one output of a finalised transaction
type StateRef struct {
	TxId  merkle.Digest `json:"txId"`
	Index uint64        `json:"index"`
}

// StateAndRef - a snapshot together with the place it was produced
type StateAndRef struct {
	Ref   StateRef `json:"ref"`
	State *Item    `json:"state"`
}

// String - for log messages
func (ref StateRef) String() string {
	return fmt.Sprintf("%s(%d)", ref.TxId, ref.Index)
}

// Bytes - tx id followed by the varint index, used as a database key
func (ref StateRef) Bytes() []byte {
	return append(ref.TxId[:], util.ToVarint64(ref.Index)...)
}

// StateRefFromBytes - reverse of Bytes
func StateRefFromBytes(buffer []byte) (StateRef, error) {
	ref := StateRef{}
	if len(buffer) <= merkle.DigestLength {
		return ref, fault.ErrNotStateRef
	}
	err := merkle.DigestFromBytes(&ref.TxId, buffer[:merkle.DigestLength])
	if nil != err {
		return ref, err
	}
	index, n := util.FromVarint64(buffer[merkle.DigestLength:])
	if 0 == n || merkle.DigestLength+n != len(buffer) {
		return ref, fault.ErrNotStateRef
	}
	ref.Index = index
	return ref, nil
}
