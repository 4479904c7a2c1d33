// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bitmark-inc/itemd/fault"
)

// Amount - a price: quantity is in the minor unit of the currency,
// so 500 USD cents renders as "5.00 USD"
type Amount struct {
	Quantity int64    `json:"quantity"`
	Currency Currency `json:"currency"`
}

// NewAmount - create an amount from minor units
func NewAmount(quantity int64, currency Currency) Amount {
	return Amount{
		Quantity: quantity,
		Currency: currency,
	}
}

// ParseAmount - parse text of the form "5.00 USD"
func ParseAmount(s string) (Amount, error) {
	fields := strings.Fields(s)
	if 2 != len(fields) {
		return Amount{}, fault.ErrInvalidAmount
	}
	c, err := FromString(fields[1])
	if nil != err {
		return Amount{}, err
	}

	whole, fraction := fields[0], ""
	if n := strings.IndexByte(whole, '.'); n >= 0 {
		whole, fraction = whole[:n], whole[n+1:]
	}
	digits := c.Digits()
	if len(fraction) > digits {
		return Amount{}, fault.ErrInvalidAmount
	}
	fraction += strings.Repeat("0", digits-len(fraction))

	negative := strings.HasPrefix(whole, "-")
	q, err := strconv.ParseInt(strings.TrimPrefix(whole, "-")+fraction, 10, 64)
	if nil != err {
		return Amount{}, fault.ErrInvalidAmount
	}
	if negative {
		q = -q
	}
	return NewAmount(q, c), nil
}

// Equal - same quantity in the same currency
func (amount Amount) Equal(other Amount) bool {
	return amount == other
}

// IsNegative - quantity below zero
func (amount Amount) IsNegative() bool {
	return amount.Quantity < 0
}

// String - decimal rendering followed by the currency code
func (amount Amount) String() string {
	digits := amount.Currency.Digits()
	q := amount.Quantity
	sign := ""
	if q < 0 {
		sign = "-"
		q = -q
	}
	if 0 == digits {
		return fmt.Sprintf("%s%d %s", sign, q, amount.Currency)
	}
	scale := int64(1)
	for i := 0; i < digits; i += 1 {
		scale *= 10
	}
	return fmt.Sprintf("%s%d.%0*d %s", sign, q/scale, digits, q%scale, amount.Currency)
}
