// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"sort"
)

// Contains - true if the account occurs in the list
func Contains(list []*Account, account *Account) bool {
	for _, a := range list {
		if a.Equal(account) {
			return true
		}
	}
	return false
}

// Union - all distinct accounts of the lists, in canonical order
func Union(lists ...[]*Account) []*Account {
	result := make([]*Account, 0)
	for _, list := range lists {
		for _, a := range list {
			if nil != a && !Contains(result, a) {
				result = append(result, a)
			}
		}
	}
	Sort(result)
	return result
}

// SameSet - both lists hold exactly the same distinct accounts
func SameSet(a []*Account, b []*Account) bool {
	ua := Union(a)
	ub := Union(b)
	if len(ua) != len(ub) {
		return false
	}
	for i := range ua {
		if !ua[i].Equal(ub[i]) {
			return false
		}
	}
	return true
}

// HasDuplicates - some account occurs more than once
func HasDuplicates(list []*Account) bool {
	return len(Union(list)) != len(list)
}

// Sort - canonical order of accounts by their encoded bytes
func Sort(list []*Account) {
	sort.Slice(list, func(i, j int) bool {
		return bytes.Compare(list[i].Bytes(), list[j].Bytes()) < 0
	})
}
