// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - fan out notifications inside one node
//
// a node records finalised transactions and announces them here so
// that the projection and other observers can follow along
package messagebus
