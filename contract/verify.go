// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/item"
)

// Verify - check a transition of an item
//
// returns nil or the fault.VerificationError naming the first rule
// broken; rules are checked as: cardinality, field rules, signers
func Verify(command Command, inputs []*item.Item, outputs []*item.Item, signers []*account.Account) error {
	if hasNil(inputs) {
		return fault.ErrWrongInputCount
	}
	if hasNil(outputs) {
		return fault.ErrWrongOutputCount
	}

	var err error
	switch command {
	case Create:
		err = verifyCreate(inputs, outputs)
	case UpdatePrice:
		err = verifyUpdatePrice(inputs, outputs)
	case AddBuyer:
		err = verifyAddBuyer(inputs, outputs)
	case NoLongerForSale:
		err = verifyNoLongerForSale(inputs, outputs)
	default:
		return fault.ErrUnknownCommand
	}
	if nil != err {
		return err
	}

	required, err := RequiredSigners(command, inputs, outputs)
	if nil != err {
		return err
	}
	if account.HasDuplicates(signers) || !account.SameSet(required, signers) {
		return fault.ErrSignerSetMismatch
	}
	return nil
}

// RequiredSigners - the parties that must endorse a transition
//
// the cardinality of inputs and outputs must already be correct
func RequiredSigners(command Command, inputs []*item.Item, outputs []*item.Item) ([]*account.Account, error) {
	switch command {
	case Create:
		if 1 != len(outputs) {
			return nil, fault.ErrWrongOutputCount
		}
		return outputs[0].Participants(), nil

	case UpdatePrice, AddBuyer:
		if err := checkUpdateCardinality(inputs, outputs); nil != err {
			return nil, err
		}
		return account.Union(inputs[0].Participants(), outputs[0].Participants()), nil

	case NoLongerForSale:
		if err := checkUpdateCardinality(inputs, outputs); nil != err {
			return nil, err
		}
		return inputs[0].Participants(), nil

	default:
		return nil, fault.ErrUnknownCommand
	}
}

func hasNil(list []*item.Item) bool {
	for _, i := range list {
		if nil == i {
			return true
		}
	}
	return false
}

func checkUpdateCardinality(inputs []*item.Item, outputs []*item.Item) error {
	if 1 != len(inputs) {
		return fault.ErrWrongInputCount
	}
	if 1 != len(outputs) {
		return fault.ErrWrongOutputCount
	}
	return nil
}

func verifyCreate(inputs []*item.Item, outputs []*item.Item) error {
	if 0 != len(inputs) {
		return fault.ErrCreateHasInputs
	}
	if 1 != len(outputs) {
		return fault.ErrWrongOutputCount
	}
	output := outputs[0]

	switch {
	case nil == output.Seller:
		return fault.ErrSellerRequired
	case output.Price.IsNegative():
		return fault.ErrNegativePrice
	case output.HasBuyer(output.Seller):
		return fault.ErrSellerIsBuyer
	case account.HasDuplicates(output.PotentialBuyers):
		return fault.ErrDuplicateBuyer
	case "" == output.Name:
		return fault.ErrNameRequired
	case "" == output.SKU:
		return fault.ErrSkuRequired
	case !output.ForSale:
		return fault.ErrForSaleMustBeSet
	}
	return nil
}

func verifyUpdatePrice(inputs []*item.Item, outputs []*item.Item) error {
	if err := checkUpdateCardinality(inputs, outputs); nil != err {
		return err
	}
	input := inputs[0]
	output := outputs[0]

	switch {
	case !input.Equal(output.WithNewPrice(input.Price)):
		return fault.ErrOnlyPriceMayChange
	case input.Price.Equal(output.Price):
		return fault.ErrPriceMustChange
	case output.Price.IsNegative():
		return fault.ErrNegativePrice
	case !input.ForSale:
		return fault.ErrForSaleMustBeSet
	}
	return nil
}

func verifyAddBuyer(inputs []*item.Item, outputs []*item.Item) error {
	if err := checkUpdateCardinality(inputs, outputs); nil != err {
		return err
	}
	input := inputs[0]
	output := outputs[0]

	if !input.Equal(output.WithNewBuyers(input.PotentialBuyers)) {
		return fault.ErrOnlyBuyersMayChange
	}
	if len(output.PotentialBuyers) <= len(input.PotentialBuyers) {
		return fault.ErrBuyerListMustGrow
	}
	for _, buyer := range input.PotentialBuyers {
		if !output.HasBuyer(buyer) {
			return fault.ErrBuyerListNotRetained
		}
	}
	switch {
	case output.HasBuyer(output.Seller):
		return fault.ErrSellerIsBuyer
	case account.HasDuplicates(output.PotentialBuyers):
		return fault.ErrDuplicateBuyer
	case !input.ForSale:
		return fault.ErrForSaleMustBeSet
	}
	return nil
}

func verifyNoLongerForSale(inputs []*item.Item, outputs []*item.Item) error {
	if err := checkUpdateCardinality(inputs, outputs); nil != err {
		return err
	}
	input := inputs[0]
	output := outputs[0]

	if output.ForSale {
		return fault.ErrForSaleMustBeFalse
	}
	if !input.Equal(output.WithForSale(true)) {
		return fault.ErrOnlyForSaleMayChange
	}
	return nil
}
