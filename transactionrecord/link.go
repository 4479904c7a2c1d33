// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/itemd/merkle"
)

// TxId - the identifier of a packed record
func (record Packed) TxId() merkle.Digest {
	return merkle.NewDigest(record)
}
