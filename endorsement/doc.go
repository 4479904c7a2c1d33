// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package endorsement gathers the signatures of every required signer
// of a proposal
//
// the initiating node runs a Collector; every counterparty runs an
// Endorser that checks the proposal independently before signing
package endorsement
