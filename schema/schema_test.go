// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/background"
	"github.com/bitmark-inc/itemd/contract"
	"github.com/bitmark-inc/itemd/currency"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/fixtures"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/messagebus"
	"github.com/bitmark-inc/itemd/proposal"
	"github.com/bitmark-inc/itemd/schema"
	"github.com/bitmark-inc/itemd/transactionrecord"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func create(t *testing.T, sku string) *transactionrecord.Finalised {
	i, err := item.New(fixtures.Seller.Account(), "Fidget spinner", sku, currency.NewAmount(500, currency.USD), []*account.Account{fixtures.Buyer1.Account()})
	require.NoError(t, err)
	p, err := proposal.NewBuilder(fixtures.Notary.Account()).Propose(contract.Create, nil, i)
	require.NoError(t, err)
	return &transactionrecord.Finalised{Proposal: p}
}

func next(t *testing.T, previous *transactionrecord.Finalised, command contract.Command, output *item.Item) *transactionrecord.Finalised {
	ref, err := previous.Proposal.OutputRef()
	require.NoError(t, err)
	consumed := &item.StateAndRef{
		Ref:   ref,
		State: previous.Proposal.Output,
	}
	p, err := proposal.NewBuilder(fixtures.Notary.Account()).Propose(command, consumed, output)
	require.NoError(t, err)
	return &transactionrecord.Finalised{Proposal: p}
}

func open(t *testing.T, bus *messagebus.BroadcastQueue) *schema.Projector {
	p, err := schema.Open(":memory:", bus)
	require.NoError(t, err, "open")
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestApply(t *testing.T) {
	p := open(t, nil)
	ctx := context.Background()

	created := create(t, "001")
	require.NoError(t, p.Apply(ctx, created), "create")

	rows, err := p.BySKU(ctx, "001")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, created.Proposal.Output.LinearId.Id.String(), rows[0].LinearId, "linear id")
	assert.Equal(t, fixtures.Seller.Account().String(), rows[0].Seller, "seller")
	assert.Equal(t, "Fidget spinner", rows[0].Name, "name")
	assert.Equal(t, int64(500), rows[0].Value, "value")
	assert.Equal(t, "USD", rows[0].Currency, "currency")
	assert.True(t, rows[0].ForSale, "for sale")

	changed := next(t, created, contract.UpdatePrice, created.Proposal.Output.WithNewPrice(currency.NewAmount(700, currency.USD)))
	require.NoError(t, p.Apply(ctx, changed), "update")

	withdrawn := next(t, changed, contract.NoLongerForSale, changed.Proposal.Output.WithForSale(false))
	require.NoError(t, p.Apply(ctx, withdrawn), "withdraw")

	rows, err = p.BySKU(ctx, "001")
	require.NoError(t, err)
	require.Len(t, rows, 1, "still one row per item")
	assert.Equal(t, int64(700), rows[0].Value, "new value")
	assert.False(t, rows[0].ForSale, "withdrawn")

	forSale, err := p.ForSale(ctx)
	require.NoError(t, err)
	assert.Len(t, forSale, 0, "nothing for sale")
}

func TestApplyOutOfOrder(t *testing.T) {
	p := open(t, nil)
	ctx := context.Background()

	created := create(t, "001")
	changed := next(t, created, contract.UpdatePrice, created.Proposal.Output.WithNewPrice(currency.NewAmount(700, currency.USD)))

	require.NoError(t, p.Apply(ctx, changed), "newer first")
	require.NoError(t, p.Apply(ctx, created), "older second")

	rows, err := p.BySKU(ctx, "001")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(700), rows[0].Value, "newer state kept")
}

func TestApplyMissing(t *testing.T) {
	p := open(t, nil)
	assert.Equal(t, fault.ErrMissingParameters, p.Apply(context.Background(), nil))
}

func TestForSale(t *testing.T) {
	p := open(t, nil)
	ctx := context.Background()

	require.NoError(t, p.Apply(ctx, create(t, "b")))
	require.NoError(t, p.Apply(ctx, create(t, "a")))

	rows, err := p.ForSale(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].SKU, "ordered by sku")
	assert.Equal(t, "b", rows[1].SKU, "ordered by sku")
}

func TestRunFromBus(t *testing.T) {
	bus := &messagebus.BroadcastQueue{}
	p := open(t, bus)

	processes := background.Start(background.Processes{p}, nil)
	defer processes.Stop()

	created := create(t, "bus")
	packed, err := created.Pack()
	require.NoError(t, err)

	bus.Send("other", []byte("ignored"))
	bus.Send(messagebus.FinalisedCommand, packed)

	ctx := context.Background()
	assert.Eventually(t, func() bool {
		rows, err := p.BySKU(ctx, "bus")
		return nil == err && 1 == len(rows)
	}, 5*time.Second, 10*time.Millisecond, "row projected")
}

func TestFileDatabase(t *testing.T) {
	dsn := filepath.Join(fixtures.DatabaseDirectory(t.Name()), "items.db")
	ctx := context.Background()

	p, err := schema.Open(dsn, nil)
	require.NoError(t, err)
	require.NoError(t, p.Apply(ctx, create(t, "001")))
	require.NoError(t, p.Close())

	p, err = schema.Open(dsn, nil)
	require.NoError(t, err, "reopen")
	defer p.Close()

	rows, err := p.BySKU(ctx, "001")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "persisted")
}
