// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package flow

import (
	"context"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/contract"
	"github.com/bitmark-inc/itemd/currency"
	"github.com/bitmark-inc/itemd/endorsement"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/finality"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/proposal"
	"github.com/bitmark-inc/itemd/vault"
)

// Initiator - starts item operations on behalf of this node's party
type Initiator struct {
	log         *logger.L
	self        *account.Account
	vault       vault.Vault
	builder     *proposal.Builder
	collector   *endorsement.Collector
	coordinator *finality.Coordinator
}

// NewInitiator - operations for the party self
func NewInitiator(self *account.Account, v vault.Vault, builder *proposal.Builder, collector *endorsement.Collector, coordinator *finality.Coordinator) *Initiator {
	return &Initiator{
		log:         logger.New("flow"),
		self:        self,
		vault:       v,
		builder:     builder,
		collector:   collector,
		coordinator: coordinator,
	}
}

// CreateItem - offer a new item with this node as the seller
func (f *Initiator) CreateItem(ctx context.Context, name string, sku string, price currency.Amount, buyers []*account.Account) (*Instance, error) {
	produced, err := item.New(f.self, name, sku, price, buyers)
	if nil != err {
		return nil, err
	}
	return f.run(ctx, contract.Create, nil, produced)
}

// ChangePrice - set a new price on the live item with this sku
func (f *Initiator) ChangePrice(ctx context.Context, sku string, price currency.Amount) (*Instance, error) {
	consumed, err := f.vault.LiveBySKU(sku)
	if nil != err {
		return nil, err
	}
	return f.changePrice(ctx, consumed, price)
}

// ChangePriceByLinearId - set a new price on the live item with this
// linear id
func (f *Initiator) ChangePriceByLinearId(ctx context.Context, linearId item.LinearId, price currency.Amount) (*Instance, error) {
	consumed, err := f.vault.Live(linearId)
	if nil != err {
		return nil, err
	}
	return f.changePrice(ctx, consumed, price)
}

func (f *Initiator) changePrice(ctx context.Context, consumed *item.StateAndRef, price currency.Amount) (*Instance, error) {
	if err := f.checkSeller(consumed); nil != err {
		return nil, err
	}
	if consumed.State.Price.Equal(price) {
		return nil, fault.ErrPriceMustChange
	}
	return f.run(ctx, contract.UpdatePrice, consumed, consumed.State.WithNewPrice(price))
}

// AddBuyers - offer the live item with this sku to more buyers
//
// buyers already on the list are ignored
func (f *Initiator) AddBuyers(ctx context.Context, sku string, buyers []*account.Account) (*Instance, error) {
	consumed, err := f.vault.LiveBySKU(sku)
	if nil != err {
		return nil, err
	}
	if err := f.checkSeller(consumed); nil != err {
		return nil, err
	}
	if account.Contains(buyers, consumed.State.Seller) {
		return nil, fault.ErrSellerInNewBuyerList
	}

	merged := append([]*account.Account{}, consumed.State.PotentialBuyers...)
	for _, b := range buyers {
		if nil != b && !account.Contains(merged, b) {
			merged = append(merged, b)
		}
	}
	return f.run(ctx, contract.AddBuyer, consumed, consumed.State.WithNewBuyers(merged))
}

// NoLongerForSale - withdraw the live item with this sku
func (f *Initiator) NoLongerForSale(ctx context.Context, sku string) (*Instance, error) {
	consumed, err := f.vault.LiveBySKU(sku)
	if nil != err {
		return nil, err
	}
	if err := f.checkSeller(consumed); nil != err {
		return nil, err
	}
	return f.run(ctx, contract.NoLongerForSale, consumed, consumed.State.WithForSale(false))
}

func (f *Initiator) checkSeller(consumed *item.StateAndRef) error {
	if !f.self.Equal(consumed.State.Seller) {
		return fault.ErrOnlySellerMayChangeItem
	}
	return nil
}

// the complete protocol; the error is the instance's error when it
// ended Refused or Conflict
func (f *Initiator) run(ctx context.Context, command contract.Command, consumed *item.StateAndRef, produced *item.Item) (*Instance, error) {
	instance, err := f.Propose(command, consumed, produced)
	if nil != err {
		return nil, err
	}
	if err := f.Collect(ctx, instance); nil != err {
		return instance, err
	}
	if err := f.Finalise(ctx, instance); nil != err {
		return instance, err
	}
	return instance, nil
}

// Propose - build and verify a proposal
//
// a proposal that fails verification never becomes an instance
func (f *Initiator) Propose(command contract.Command, consumed *item.StateAndRef, produced *item.Item) (*Instance, error) {
	p, err := f.builder.Propose(command, consumed, produced)
	if nil != err {
		f.log.Warnf("propose: %s  error: %s", command, err)
		return nil, err
	}
	return newInstance(f.log, p)
}

// Collect - gather endorsements; ends Endorsed or Refused
//
// an instance that is not Proposed is left unchanged and
// fault.ErrIllegalStatusTransition returned
func (f *Initiator) Collect(ctx context.Context, instance *Instance) error {
	if err := instance.begin(Proposed, Endorsing); nil != err {
		return err
	}

	endorsed, err := f.collector.Collect(ctx, instance.proposal)
	if nil != err {
		instance.setStatus(Refused, err)
		return err
	}

	instance.Lock()
	instance.endorsed = endorsed
	instance.Unlock()
	instance.setStatus(Endorsed, nil)
	return nil
}

// Finalise - claim and broadcast; ends Finalized or Conflict
//
// any failure before the claim succeeded leaves nothing recorded and
// ends in Conflict; an instance that is not Endorsed is left unchanged
// and fault.ErrIllegalStatusTransition returned
func (f *Initiator) Finalise(ctx context.Context, instance *Instance) error {
	if err := instance.begin(Endorsed, Finalizing); nil != err {
		return err
	}

	instance.Lock()
	endorsed := instance.endorsed
	instance.Unlock()

	finalised, err := f.coordinator.Finalise(ctx, endorsed)
	if nil == finalised {
		instance.setStatus(Conflict, err)
		return err
	}

	instance.Lock()
	instance.finalised = finalised
	instance.Unlock()
	instance.setStatus(Finalized, nil)

	// the transaction is final even when the local vault refused it
	if nil != err {
		f.log.Errorf("instance: %s  finalised with local error: %s", instance.txId, err)
	}
	return err
}
