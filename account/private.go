// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/itemd/fault"
)

// PrivateKey - the signing half of a party's identity
type PrivateKey struct {
	Test       bool
	PrivateKey ed25519.PrivateKey
}

// seed parameters
var (
	seedHeader       = []byte{0x5a, 0xfe, 0x02}
	seedHeaderLength = len(seedHeader)
)

// SeedLength - bytes of entropy in a seed
const SeedLength = ed25519.SeedSize

// NewPrivateKey - create a key from fresh random entropy
func NewPrivateKey(test bool) (*PrivateKey, error) {
	seed := make([]byte, SeedLength)
	if _, err := rand.Read(seed); nil != err {
		return nil, err
	}
	return PrivateKeyFromSeed(seed, test)
}

// PrivateKeyFromSeed - deterministic key from a 32 byte seed
func PrivateKeyFromSeed(seed []byte, test bool) (*PrivateKey, error) {
	if SeedLength != len(seed) {
		return nil, fault.ErrInvalidSeedLength
	}
	return &PrivateKey{
		Test:       test,
		PrivateKey: ed25519.NewKeyFromSeed(seed),
	}, nil
}

// PrivateKeyFromBase58Seed - decode the text form produced by Seed
//
// layout: header ‖ network ‖ seed ‖ sha3 checksum
func PrivateKeyFromBase58Seed(seedBase58Encoded string) (*PrivateKey, error) {
	seed, err := base58.Decode(seedBase58Encoded)
	if nil != err || 0 == len(seed) {
		return nil, fault.ErrCannotDecodeSeed
	}

	if seedHeaderLength+1+SeedLength+checksumLength != len(seed) {
		return nil, fault.ErrInvalidSeedLength
	}

	if !bytes.Equal(seedHeader, seed[:seedHeaderLength]) {
		return nil, fault.ErrCannotDecodeSeed
	}

	checksumStart := len(seed) - checksumLength
	checksum := sha3.Sum256(seed[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], seed[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}

	isTest := 0x01 == seed[seedHeaderLength]
	return PrivateKeyFromSeed(seed[seedHeaderLength+1:checksumStart], isTest)
}

// Seed - base58 text form of the key's seed
func (privateKey *PrivateKey) Seed() string {
	network := byte(0x00)
	if privateKey.Test {
		network = 0x01
	}
	buffer := append([]byte{}, seedHeader...)
	buffer = append(buffer, network)
	buffer = append(buffer, privateKey.PrivateKey.Seed()...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// Account - the public identity for this key
func (privateKey *PrivateKey) Account() *Account {
	return &Account{
		Test:      privateKey.Test,
		PublicKey: append([]byte{}, privateKey.PrivateKey.Public().(ed25519.PublicKey)...),
	}
}

// Sign - sign a message
func (privateKey *PrivateKey) Sign(message []byte) Signature {
	return ed25519.Sign(privateKey.PrivateKey, message)
}

// String - the private key is never printed
func (privateKey *PrivateKey) String() string {
	return "<private key: " + privateKey.Account().String() + ">"
}

// GoString - the private key is never printed
func (privateKey *PrivateKey) GoString() string {
	return privateKey.String()
}
