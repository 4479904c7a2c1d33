// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notary

import (
	"context"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/merkle"
	"github.com/bitmark-inc/itemd/transactionrecord"
)

// Authority - claim a state for a transaction
type Authority interface {
	Identity() *account.Account
	Claim(ctx context.Context, ref item.StateRef, txId merkle.Digest) (*transactionrecord.Receipt, error)
}

// Store - remembers the first transaction to claim each state
//
// Reserve returns the transaction that holds ref after the call; this
// is txId when the claim succeeded or was repeated
type Store interface {
	Reserve(ctx context.Context, ref item.StateRef, txId merkle.Digest) (merkle.Digest, error)
	Close() error
}

// Service - a local authority signing receipts with its own key
type Service struct {
	log   *logger.L
	key   *account.PrivateKey
	store Store
}

// NewService - create an authority over a store
func NewService(key *account.PrivateKey, store Store) *Service {
	return &Service{
		log:   logger.New("notary"),
		key:   key,
		store: store,
	}
}

// Identity - the account receipts are signed with
func (service *Service) Identity() *account.Account {
	return service.key.Account()
}

// Claim - reserve ref for txId and return the signed receipt
func (service *Service) Claim(ctx context.Context, ref item.StateRef, txId merkle.Digest) (*transactionrecord.Receipt, error) {
	if txId.IsZero() {
		return nil, fault.ErrMissingParameters
	}

	holder, err := service.store.Reserve(ctx, ref, txId)
	if nil != err {
		service.log.Errorf("reserve: %s  error: %s", ref, err)
		return nil, err
	}

	if holder != txId {
		service.log.Warnf("claim: %s  by: %s  rejected, held by: %s", ref, txId, holder)
		return nil, fault.ErrStateAlreadyConsumed
	}

	service.log.Infof("claim: %s  by: %s", ref, txId)
	return transactionrecord.SignReceipt(service.key, ref, txId)
}

// VerifyReceipt - check the receipt is the notary's confirmation that
// txId consumed ref
func VerifyReceipt(receipt *transactionrecord.Receipt, notary *account.Account, ref item.StateRef, txId merkle.Digest) error {
	if nil == receipt {
		return fault.ErrMissingReceipt
	}
	if err := receipt.Check(notary); nil != err {
		return err
	}
	if receipt.Ref != ref || receipt.TxId != txId {
		return fault.ErrInvalidReceipt
	}
	return nil
}
