// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqtransport

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/transport"
)

const (
	listenerZapDomain = "itemd"
	listenerSignal    = "inproc://itemd-listener-signal-%d"
)

var listenerSequence uint64

// Listener - serves requests from other parties
//
// a REP socket handles one request at a time; each handler gets a
// context bounded by the request timeout
type Listener struct {
	transport.Handlers
	log     *logger.L
	push    *zmq.Socket // signal send
	pull    *zmq.Socket // signal receive
	socket  *zmq.Socket
	timeout time.Duration
}

// NewListener - bind the listen addresses
func NewListener(privateKey []byte, listen []string, timeout time.Duration) (*Listener, error) {
	log := logger.New("transport")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	log.Info("initialising…")

	lstn := &Listener{
		log:     log,
		timeout: timeout,
	}

	signal := fmt.Sprintf(listenerSignal, atomic.AddUint64(&listenerSequence, 1))
	var err error
	lstn.push, lstn.pull, err = newSignalPair(signal)
	if nil != err {
		return nil, err
	}

	lstn.socket, err = newServerSocket(listenerZapDomain, privateKey, listen)
	if nil != err {
		log.Errorf("bind error: %s", err)
		lstn.push.Close()
		lstn.pull.Close()
		return nil, err
	}
	for i, address := range listen {
		log.Infof("bind[%d]: %q", i, address)
	}
	return lstn, nil
}

// Run - wait for incoming requests, process them and reply
func (lstn *Listener) Run(args interface{}, shutdown <-chan struct{}) {
	log := lstn.log

	log.Info("starting…")

	stopped := make(chan struct{})
	go func() {
		poller := zmq.NewPoller()
		poller.Add(lstn.socket, zmq.POLLIN)
		poller.Add(lstn.pull, zmq.POLLIN)
	loop:
		for {
			sockets, err := poller.Poll(-1)
			if nil != err {
				log.Errorf("poll error: %s", err)
				continue loop
			}
			for _, socket := range sockets {
				switch s := socket.Socket; s {
				case lstn.socket:
					lstn.process()
				case lstn.pull:
					s.RecvMessageBytes(0)
					break loop
				}
			}
		}
		log.Info("shutting down")
		lstn.pull.Close()
		lstn.socket.Close()
		log.Info("stopped")
		close(stopped)
	}()

	log.Info("waiting…")
	<-shutdown
	log.Info("initiate shutdown")
	lstn.push.SendMessage("stop")
	<-stopped
	lstn.push.Close()
}

// receive one request, dispatch it and send the reply
//
// request: function, caller account, parameters…
func (lstn *Listener) process() {
	log := lstn.log

	data, err := lstn.socket.RecvMessageBytes(0)
	if nil != err {
		log.Errorf("receive error: %s", err)
		return
	}

	var reply [][]byte
	if len(data) < 2 {
		reply = transport.ErrorPacket(fault.ErrMissingParameters)
	} else if from, err := account.AccountFromBytes(data[1]); nil != err {
		reply = transport.ErrorPacket(err)
	} else {
		fn := string(data[0])
		log.Debugf("received: %q from: %s  parameters: %d", fn, from, len(data)-2)

		ctx, cancel := context.WithTimeout(context.Background(), lstn.timeout)
		reply = lstn.Dispatch(ctx, from, fn, data[2:])
		cancel()
	}

	if _, err := lstn.socket.SendMessage(reply); nil != err {
		log.Errorf("send error: %s", err)
		return
	}
	log.Debugf("sent: %q", reply[0])
}
