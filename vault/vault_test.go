// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/fixtures"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/merkle"
	"github.com/bitmark-inc/itemd/vault"
)

func TestRecordCreate(t *testing.T) {
	v := openVault(t)

	tx := createTx(t, "001")
	require.NoError(t, v.Record(tx), "record")

	expected := outputOf(t, tx)

	live, err := v.Live(tx.Proposal.Output.LinearId)
	require.NoError(t, err, "live")
	assert.Equal(t, expected.Ref, live.Ref, "live ref")
	assert.True(t, expected.State.Equal(live.State), "live state")

	bySKU, err := v.LiveBySKU("001")
	require.NoError(t, err, "by sku")
	assert.Equal(t, expected.Ref, bySKU.Ref, "sku ref")

	stored, err := v.Transaction(expected.Ref.TxId)
	require.NoError(t, err, "transaction")
	assert.Nil(t, stored.Receipt, "create has no receipt")
	assert.True(t, tx.Proposal.Output.Equal(stored.Proposal.Output), "stored output")
}

func TestRecordIsIdempotent(t *testing.T) {
	v := openVault(t)

	tx := createTx(t, "001")
	require.NoError(t, v.Record(tx), "first")
	assert.NoError(t, v.Record(tx), "second")

	_, err := v.LiveBySKU("001")
	assert.NoError(t, err, "still exactly one")
}

func TestRecordUpdate(t *testing.T) {
	v := openVault(t)

	created := createTx(t, "001")
	require.NoError(t, v.Record(created))
	first := outputOf(t, created)

	changed := priceTx(t, first, 700)
	require.NoError(t, v.Record(changed), "record update")

	live, err := v.LiveBySKU("001")
	require.NoError(t, err, "live")
	assert.Equal(t, int64(700), live.State.Price.Quantity, "new price")
	assert.Equal(t, outputOf(t, changed).Ref, live.Ref, "new ref")

	// a competing transition of the first snapshot
	stale := priceTx(t, first, 900)
	assert.Equal(t, fault.ErrLiveStateMismatch, v.Record(stale), "stale input")

	live, err = v.Live(first.State.LinearId)
	require.NoError(t, err)
	assert.Equal(t, int64(700), live.State.Price.Quantity, "unchanged by the failed record")
}

func TestRecordUnknownInput(t *testing.T) {
	v := openVault(t)

	// a party added later never saw the creation
	created := createTx(t, "001")
	changed := priceTx(t, outputOf(t, created), 700)
	require.NoError(t, v.Record(changed), "record without history")

	live, err := v.LiveBySKU("001")
	require.NoError(t, err)
	assert.Equal(t, int64(700), live.State.Price.Quantity)
}

func TestRecordDuplicateCreate(t *testing.T) {
	v := openVault(t)

	tx := createTx(t, "001")
	require.NoError(t, v.Record(tx))

	p := *tx.Proposal
	p.Nonce += 1
	assert.Equal(t, fault.ErrItemAlreadyExists, v.Record(finalise(t, &p)), "same linear id")
}

func TestRecordMissingParameters(t *testing.T) {
	v := openVault(t)
	assert.Equal(t, fault.ErrMissingParameters, v.Record(nil))
}

func TestLiveNotFound(t *testing.T) {
	v := openVault(t)

	linearId, err := item.NewLinearId("none")
	require.NoError(t, err)

	_, err = v.Live(linearId)
	assert.Equal(t, fault.ErrItemNotFound, err, "by linear id")
	_, err = v.LiveBySKU("none")
	assert.Equal(t, fault.ErrItemNotFound, err, "by sku")
	_, err = v.Transaction(merkle.NewDigest([]byte("none")))
	assert.Equal(t, fault.ErrTransactionNotFound, err, "transaction")
}

func TestLiveBySKUAmbiguous(t *testing.T) {
	v := openVault(t)

	require.NoError(t, v.Record(createTx(t, "dup")))
	require.NoError(t, v.Record(createTx(t, "dup")))

	_, err := v.LiveBySKU("dup")
	assert.Equal(t, fault.ErrMultipleItemsFound, err)

	_, err = v.LiveBySKU("du")
	assert.Equal(t, fault.ErrItemNotFound, err, "prefix of a sku")
}

func TestLiveBySKUDoesNotMatchLongerSKU(t *testing.T) {
	v := openVault(t)

	embedded := createTx(t, "a\x00b")
	require.NoError(t, v.Record(embedded))

	_, err := v.LiveBySKU("a")
	assert.Equal(t, fault.ErrItemNotFound, err, "sku containing a zero byte")

	short := createTx(t, "a")
	require.NoError(t, v.Record(short))

	live, err := v.LiveBySKU("a")
	require.NoError(t, err, "short sku")
	assert.Equal(t, outputOf(t, short).Ref, live.Ref, "short sku ref")

	live, err = v.LiveBySKU("a\x00b")
	require.NoError(t, err, "long sku")
	assert.Equal(t, outputOf(t, embedded).Ref, live.Ref, "long sku ref")
}

func TestLiveReturnsCopies(t *testing.T) {
	v := openVault(t)

	tx := createTx(t, "001")
	require.NoError(t, v.Record(tx))

	live, err := v.Live(tx.Proposal.Output.LinearId)
	require.NoError(t, err)
	live.State.Name = "changed"
	live.State.PotentialBuyers[0] = fixtures.Outsider.Account()

	again, err := v.Live(tx.Proposal.Output.LinearId)
	require.NoError(t, err)
	assert.Equal(t, "Fidget spinner", again.State.Name, "name")
	assert.True(t, fixtures.Buyer1.Account().Equal(again.State.PotentialBuyers[0]), "buyer")
}

func TestReopen(t *testing.T) {
	dir := fixtures.DatabaseDirectory(t.Name())

	v, err := vault.Open(dir)
	require.NoError(t, err)
	tx := createTx(t, "001")
	require.NoError(t, v.Record(tx))
	require.NoError(t, v.Close())

	_, err = v.LiveBySKU("001")
	assert.Equal(t, fault.ErrNotInitialised, err, "closed")

	v, err = vault.Open(dir)
	require.NoError(t, err, "reopen")
	defer v.Close()

	live, err := v.Live(tx.Proposal.Output.LinearId)
	require.NoError(t, err, "live after reopen")
	assert.Equal(t, outputOf(t, tx).Ref, live.Ref)
}
