// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transport carries request/reply sessions between parties
//
// a request is a function name followed by byte parameters; a reply
// is either the function name followed by results or an error packet:
//
//   "E", <fault class>, <error text>
//
// Network is an in-process implementation; zmqtransport carries the
// same packets over ZeroMQ
package transport
