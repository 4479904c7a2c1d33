// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqtransport

import (
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"
)

const (
	heartbeatInterval = 15 * time.Second
	heartbeatTimeout  = 60 * time.Second
	heartbeatTTL      = 120 * time.Second
)

// to ensure only one auth start
var oneTimeAuthStart sync.Once

// initialise the ZMQ security subsystem
func startAuthentication() error {
	err := error(nil)
	oneTimeAuthStart.Do(func() {
		zmq.AuthSetVerbose(false)
		err = zmq.AuthStart()
	})
	return err
}

// return a pair of connected push/pull sockets
// for shutdown signalling
func newSignalPair(signal string) (*zmq.Socket, *zmq.Socket, error) {
	push, err := zmq.NewSocket(zmq.PUSH)
	if nil != err {
		return nil, nil, err
	}
	push.SetLinger(0)
	err = push.Bind(signal)
	if nil != err {
		push.Close()
		return nil, nil, err
	}

	pull, err := zmq.NewSocket(zmq.PULL)
	if nil != err {
		push.Close()
		return nil, nil, err
	}
	pull.SetLinger(0)
	err = pull.Connect(signal)
	if nil != err {
		push.Close()
		pull.Close()
		return nil, nil, err
	}

	return push, pull, nil
}

// create a REP socket and bind it to every listen address
//
// without a private key the socket runs in plain text
func newServerSocket(zapDomain string, privateKey []byte, listen []string) (*zmq.Socket, error) {
	socket, err := zmq.NewSocket(zmq.REP)
	if nil != err {
		return nil, err
	}

	if 0 != len(privateKey) {
		if err = startAuthentication(); nil != err {
			goto failure
		}
		zmq.AuthCurveAdd(zapDomain, zmq.CURVE_ALLOW_ANY)
		if err = socket.SetCurveServer(1); nil != err {
			goto failure
		}
		if err = socket.SetCurveSecretkey(string(privateKey)); nil != err {
			goto failure
		}
		if err = socket.SetZapDomain(zapDomain); nil != err {
			goto failure
		}
	}

	// IPv6 sockets also accept IPv4
	if err = socket.SetIpv6(true); nil != err {
		goto failure
	}
	socket.SetLinger(0)
	socket.SetHeartbeatIvl(heartbeatInterval)
	socket.SetHeartbeatTimeout(heartbeatTimeout)
	socket.SetHeartbeatTtl(heartbeatTTL)

	for _, address := range listen {
		if err = socket.Bind(address); nil != err {
			goto failure
		}
	}
	return socket, nil

failure:
	socket.Close()
	return nil, err
}

// create a REQ socket connected to one server
func newClientSocket(address string, serverPublicKey []byte, publicKey []byte, privateKey []byte, timeout time.Duration) (*zmq.Socket, error) {
	socket, err := zmq.NewSocket(zmq.REQ)
	if nil != err {
		return nil, err
	}

	if 0 != len(serverPublicKey) {
		if err = socket.SetCurveServer(0); nil != err {
			goto failure
		}
		if err = socket.SetCurvePublickey(string(publicKey)); nil != err {
			goto failure
		}
		if err = socket.SetCurveSecretkey(string(privateKey)); nil != err {
			goto failure
		}
		if err = socket.SetCurveServerkey(string(serverPublicKey)); nil != err {
			goto failure
		}
	}

	if 0 != timeout {
		if err = socket.SetSndtimeo(timeout); nil != err {
			goto failure
		}
		if err = socket.SetRcvtimeo(timeout); nil != err {
			goto failure
		}
	}
	if err = socket.SetLinger(0); nil != err {
		goto failure
	}
	if err = socket.SetIpv6(true); nil != err {
		goto failure
	}
	if err = socket.Connect(address); nil != err {
		goto failure
	}
	return socket, nil

failure:
	socket.Close()
	return nil, err
}
