// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/itemd/fault"
)

// Currency - enumeration of the ISO-4217 currencies an item may be
// priced in
type Currency uint64

// possible currency values
const (
	Nothing      Currency = iota // this must be the first value
	USD          Currency = iota
	EUR          Currency = iota
	GBP          Currency = iota
	TRY          Currency = iota
	JPY          Currency = iota
	CHF          Currency = iota
	maximumValue Currency = iota // this must be the last value
	First        Currency = Nothing + 1
	Last         Currency = maximumValue - 1
	Count        int      = int(Last) // count of currencies
)

// symbol and number of decimal places of the minor unit
var currencies = map[Currency]struct {
	code   string
	digits int
}{
	Nothing: {"", 0},
	USD:     {"USD", 2},
	EUR:     {"EUR", 2},
	GBP:     {"GBP", 2},
	TRY:     {"TRY", 2},
	JPY:     {"JPY", 0},
	CHF:     {"CHF", 2},
}

// FromString - convert an ISO code to a currency
func FromString(in string) (Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(in))
	for c, v := range currencies {
		if v.code == code {
			return c, nil
		}
	}
	return Nothing, fault.ErrInvalidCurrency
}

// FromUint64 - convert the wire value to a currency
func FromUint64(n uint64) (Currency, error) {
	c := Currency(n)
	if Nothing != c && !c.IsValid() {
		return Nothing, fault.ErrInvalidCurrency
	}
	return c, nil
}

// Uint64 - the wire value of a currency
func (currency Currency) Uint64() uint64 {
	return uint64(currency)
}

// String - the ISO-4217 code
func (currency Currency) String() string {
	if v, ok := currencies[currency]; ok {
		return v.code
	}
	return fmt.Sprintf("?%d", uint64(currency))
}

// GoString - both enum value and symbol, for debugging
func (currency Currency) GoString() string {
	return fmt.Sprintf("<Currency#%d:%q>", uint64(currency), currency.String())
}

// IsValid - valid currency if in range of First to Last
func (currency Currency) IsValid() bool {
	return currency >= First && currency <= Last
}

// Digits - number of decimal places in the minor unit
func (currency Currency) Digits() int {
	return currencies[currency].digits
}

// MarshalText - convert a currency into JSON
func (currency Currency) MarshalText() ([]byte, error) {
	if !currency.IsValid() && Nothing != currency {
		return nil, fault.ErrInvalidCurrency
	}
	return []byte(currency.String()), nil
}

// UnmarshalText - convert a currency string from JSON
func (currency *Currency) UnmarshalText(s []byte) error {
	c, err := FromString(string(s))
	if nil != err {
		return err
	}
	*currency = c
	return nil
}
