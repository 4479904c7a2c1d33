// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqtransport

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/transport"
)

// Client - sends requests to the parties of a directory
//
// each call uses its own REQ socket, so calls may run concurrently
type Client struct {
	log        *logger.L
	identity   *account.Account
	directory  *Directory
	publicKey  []byte
	privateKey []byte
	timeout    time.Duration
}

// NewClient - client for the given caller identity
//
// privateKey may be empty; an ephemeral CURVE key is then used for
// servers that require encryption
func NewClient(identity *account.Account, directory *Directory, privateKey []byte, timeout time.Duration) (*Client, error) {
	log := logger.New("transport")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	if 0 == len(privateKey) {
		_, private, err := zmq.NewCurveKeypair()
		if nil != err {
			return nil, err
		}
		privateKey = []byte(zmq.Z85decode(private))
	} else if keyLength != len(privateKey) {
		return nil, fault.ErrInvalidPrivateKey
	}

	publicKey, err := PublicKeyFromPrivate(privateKey)
	if nil != err {
		return nil, err
	}

	return &Client{
		log:        log,
		identity:   identity,
		directory:  directory,
		publicKey:  publicKey,
		privateKey: privateKey,
		timeout:    timeout,
	}, nil
}

// Call - send a request and wait for the reply
//
// the wait ends at the earlier of the client timeout and the context
// deadline
func (client *Client) Call(ctx context.Context, to *account.Account, function string, parameters ...[]byte) ([][]byte, error) {
	if err := ctx.Err(); nil != err {
		return nil, fault.ErrDeliveryTimeout
	}

	peer, err := client.directory.Lookup(to)
	if nil != err {
		return nil, fault.ErrPeerUnreachable
	}

	timeout := client.timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fault.ErrDeliveryTimeout
		}
		if 0 == timeout || remaining < timeout {
			timeout = remaining
		}
	}

	socket, err := newClientSocket(peer.Address, peer.PublicKey, client.publicKey, client.privateKey, timeout)
	if nil != err {
		client.log.Errorf("connect to: %q  error: %s", peer.Address, err)
		return nil, fault.ErrPeerUnreachable
	}
	defer socket.Close()

	request := make([]interface{}, 0, 2+len(parameters))
	request = append(request, function, client.identity.Bytes())
	for _, p := range parameters {
		request = append(request, p)
	}

	if _, err := socket.SendMessage(request...); nil != err {
		client.log.Warnf("send to: %s  error: %s", to, err)
		return nil, fault.ErrPeerUnreachable
	}

	reply, err := socket.RecvMessageBytes(0)
	if nil != err {
		// zmq reconnects silently so an absent peer shows up as a timeout
		client.log.Warnf("receive from: %s  error: %s", to, err)
		return nil, fault.ErrDeliveryTimeout
	}

	return transport.DecodeReply(function, reply)
}
