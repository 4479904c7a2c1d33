// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package item

import (
	"fmt"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/currency"
)

// Item - one snapshot of a sellable item
type Item struct {
	Seller          *account.Account   `json:"seller"`
	Name            string             `json:"name"`
	SKU             string             `json:"sku"`
	Price           currency.Amount    `json:"price"`
	PotentialBuyers []*account.Account `json:"potentialBuyers"`
	ForSale         bool               `json:"forSale"`
	LinearId        LinearId           `json:"linearId"`
}

// New - a for-sale item with a fresh linear id
func New(seller *account.Account, name string, sku string, price currency.Amount, buyers []*account.Account) (*Item, error) {
	linearId, err := NewLinearId(sku)
	if nil != err {
		return nil, err
	}
	return &Item{
		Seller:          seller,
		Name:            name,
		SKU:             sku,
		Price:           price,
		PotentialBuyers: copyAccounts(buyers),
		ForSale:         true,
		LinearId:        linearId,
	}, nil
}

// Participants - the seller and every potential buyer
func (item *Item) Participants() []*account.Account {
	return account.Union([]*account.Account{item.Seller}, item.PotentialBuyers)
}

// HasBuyer - the account is one of the potential buyers
func (item *Item) HasBuyer(a *account.Account) bool {
	return account.Contains(item.PotentialBuyers, a)
}

// Equal - every field is the same, buyers compared in order
func (item *Item) Equal(other *Item) bool {
	if nil == item || nil == other {
		return item == other
	}
	if !item.Seller.Equal(other.Seller) ||
		item.Name != other.Name ||
		item.SKU != other.SKU ||
		!item.Price.Equal(other.Price) ||
		item.ForSale != other.ForSale ||
		item.LinearId != other.LinearId ||
		len(item.PotentialBuyers) != len(other.PotentialBuyers) {
		return false
	}
	for i, b := range item.PotentialBuyers {
		if !b.Equal(other.PotentialBuyers[i]) {
			return false
		}
	}
	return true
}

// Copy - a deep copy that shares no slices with the original
func (item *Item) Copy() *Item {
	c := *item
	c.PotentialBuyers = copyAccounts(item.PotentialBuyers)
	return &c
}

// WithNewPrice - copy with a different price
func (item *Item) WithNewPrice(price currency.Amount) *Item {
	c := item.Copy()
	c.Price = price
	return c
}

// WithNewBuyers - copy with a different buyer list
func (item *Item) WithNewBuyers(buyers []*account.Account) *Item {
	c := item.Copy()
	c.PotentialBuyers = copyAccounts(buyers)
	return c
}

// WithForSale - copy with a different for sale flag
func (item *Item) WithForSale(forSale bool) *Item {
	c := item.Copy()
	c.ForSale = forSale
	return c
}

// String - short form for log messages
func (item *Item) String() string {
	return fmt.Sprintf("%s[%s %q %s buyers:%d forSale:%t]", item.LinearId, item.SKU, item.Name, item.Price, len(item.PotentialBuyers), item.ForSale)
}

func copyAccounts(list []*account.Account) []*account.Account {
	if nil == list {
		return []*account.Account{}
	}
	result := make([]*account.Account, len(list))
	copy(result, list)
	return result
}
