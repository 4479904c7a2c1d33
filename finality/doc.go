// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package finality commits endorsed proposals
//
// the Coordinator claims the consumed state at the notary and then
// delivers the finalised transaction to every participant; each
// participant's Recorder checks it again before it changes the vault
//
// once a claim has succeeded the transaction is final: deliveries that
// fail are retried in the background and are never rolled back
package finality
