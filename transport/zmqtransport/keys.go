// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqtransport

import (
	"encoding/hex"
	"strings"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/itemd/fault"
)

const (
	taggedPublic  = "PUBLIC:"
	taggedPrivate = "PRIVATE:"
	keyLength     = 32
)

// NewKeyPair - a CURVE key pair in the tagged hex text form accepted
// by ParseKey
func NewKeyPair() (string, string, error) {
	// keys are produced in Z85 (ZeroMQ Base-85 Encoding) see: http://rfc.zeromq.org/spec:32
	publicKey, privateKey, err := zmq.NewCurveKeypair()
	if nil != err {
		return "", "", err
	}
	publicText := taggedPublic + hex.EncodeToString([]byte(zmq.Z85decode(publicKey)))
	privateText := taggedPrivate + hex.EncodeToString([]byte(zmq.Z85decode(privateKey)))
	return publicText, privateText, nil
}

// ReadPublicKey - decode a tagged public key to 32 bytes
func ReadPublicKey(key string) ([]byte, error) {
	data, private, err := ParseKey(key)
	if nil != err {
		return nil, err
	}
	if private {
		return nil, fault.ErrInvalidPublicKey
	}
	return data, nil
}

// ReadPrivateKey - decode a tagged private key to 32 bytes
func ReadPrivateKey(key string) ([]byte, error) {
	data, private, err := ParseKey(key)
	if nil != err {
		return nil, err
	}
	if !private {
		return nil, fault.ErrInvalidPrivateKey
	}
	return data, nil
}

// ParseKey - decode either kind of tagged key
func ParseKey(data string) ([]byte, bool, error) {
	s := strings.TrimSpace(data)
	private := false
	switch {
	case strings.HasPrefix(s, taggedPrivate):
		s = s[len(taggedPrivate):]
		private = true
	case strings.HasPrefix(s, taggedPublic):
		s = s[len(taggedPublic):]
	default:
		return nil, false, fault.ErrInvalidPublicKey
	}
	h, err := hex.DecodeString(s)
	if nil != err || keyLength != len(h) {
		if private {
			return nil, true, fault.ErrInvalidPrivateKey
		}
		return nil, false, fault.ErrInvalidPublicKey
	}
	return h, private, nil
}

// PublicKeyFromPrivate - derive the public half of a CURVE key
func PublicKeyFromPrivate(privateKey []byte) ([]byte, error) {
	public, err := zmq.AuthCurvePublic(zmq.Z85encode(string(privateKey)))
	if nil != err {
		return nil, err
	}
	return []byte(zmq.Z85decode(public)), nil
}
