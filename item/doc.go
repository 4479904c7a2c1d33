// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package item holds the state of a sellable item
//
// a snapshot is never modified in place: each change consumes the
// live snapshot and produces a new one with the same linear id
package item
