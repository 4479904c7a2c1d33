// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package flow provides the item operations a seller can start and the
// responder that lets a node take part in operations started elsewhere
//
// every operation runs as an Instance:
//
//   Proposed → Endorsing → Endorsed → Finalizing → Finalized
//                        ↘ Refused               ↘ Conflict
//
// Refused, Conflict and Finalized are terminal
package flow
