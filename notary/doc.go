// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package notary is the uniqueness authority
//
// a state reference may be claimed by exactly one transaction; the
// first claim wins and every later claim by a different transaction
// is rejected with fault.ErrStateAlreadyConsumed
//
// a Service keeps the claims in a Store and signs a receipt for each
// successful claim; a Remote reaches a Service on another node
// through the transport
package notary
