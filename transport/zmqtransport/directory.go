// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqtransport

import (
	"sync"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
)

// Peer - where a party listens
//
// PublicKey is the server CURVE key, empty for plain text
type Peer struct {
	Address   string
	PublicKey []byte
}

// Directory - the known parties
type Directory struct {
	sync.RWMutex
	peers map[string]Peer
}

// NewDirectory - an empty directory
func NewDirectory() *Directory {
	return &Directory{
		peers: make(map[string]Peer),
	}
}

// Add - record or replace the address of a party
func (d *Directory) Add(party *account.Account, peer Peer) {
	d.Lock()
	d.peers[party.String()] = peer
	d.Unlock()
}

// Lookup - the address of a party
func (d *Directory) Lookup(party *account.Account) (Peer, error) {
	d.RLock()
	peer, ok := d.peers[party.String()]
	d.RUnlock()
	if !ok {
		return Peer{}, fault.ErrUnknownParty
	}
	return peer, nil
}
