// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package schema keeps a queryable SQL projection of the live items
//
// one row per linear id in table item_states; rows are written from the
// finalised transactions published on the message bus
package schema

import (
	"context"
	"database/sql"

	"github.com/bitmark-inc/logger"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/messagebus"
	"github.com/bitmark-inc/itemd/transactionrecord"
)

// queue size for bus messages
const queueSize = 100

const createTable = `
CREATE TABLE IF NOT EXISTS item_states (
    linear_id  TEXT PRIMARY KEY,
    seller     TEXT NOT NULL,
    name       TEXT NOT NULL,
    sku        TEXT NOT NULL,
    value      INTEGER NOT NULL,
    currency   TEXT NOT NULL,
    for_sale   BOOLEAN NOT NULL,
    tx_id      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_item_states_sku ON item_states (sku);
CREATE INDEX IF NOT EXISTS idx_item_states_for_sale ON item_states (for_sale);
`

// a row is only replaced by the transaction that consumed it, so a
// late delivery of an older transaction leaves the row alone
const upsertItem = `
INSERT INTO item_states (linear_id, seller, name, sku, value, currency, for_sale, tx_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (linear_id) DO UPDATE SET
    seller = excluded.seller,
    name = excluded.name,
    sku = excluded.sku,
    value = excluded.value,
    currency = excluded.currency,
    for_sale = excluded.for_sale,
    tx_id = excluded.tx_id
WHERE item_states.tx_id = ?
`

const selectItems = `SELECT linear_id, seller, name, sku, value, currency, for_sale, tx_id FROM item_states`

// Row - one projected item
type Row struct {
	LinearId string `json:"linearId"`
	Seller   string `json:"seller"`
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Value    int64  `json:"value"`
	Currency string `json:"currency"`
	ForSale  bool   `json:"forSale"`
	TxId     string `json:"txId"`
}

// Projector - maintains the item_states table
type Projector struct {
	log   *logger.L
	db    *sql.DB
	bus   *messagebus.BroadcastQueue
	queue <-chan messagebus.Message
}

// Open - open the database and subscribe to bus, which may be nil
func Open(dataSourceName string, bus *messagebus.BroadcastQueue) (*Projector, error) {
	log := logger.New("projector")

	db, err := sql.Open("sqlite3", dataSourceName)
	if nil != err {
		return nil, err
	}

	// a single connection keeps in-memory databases shared
	db.SetMaxOpenConns(1)

	if err := db.Ping(); nil != err {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(createTable); nil != err {
		db.Close()
		return nil, err
	}

	p := &Projector{
		log: log,
		db:  db,
		bus: bus,
	}
	if nil != bus {
		p.queue = bus.Chan(queueSize)
	}

	log.Infof("opened: %q", dataSourceName)
	return p, nil
}

// Close - unsubscribe and close the database
func (p *Projector) Close() error {
	if nil != p.bus && nil != p.queue {
		p.bus.Release(p.queue)
		p.queue = nil
	}
	return p.db.Close()
}

// Apply - write the output of a finalised transaction
func (p *Projector) Apply(ctx context.Context, tx *transactionrecord.Finalised) error {
	if nil == tx || nil == tx.Proposal || nil == tx.Proposal.Output {
		return fault.ErrMissingParameters
	}
	txId, err := tx.Proposal.TxId()
	if nil != err {
		return err
	}

	consumedTxId := ""
	if nil != tx.Proposal.Input {
		consumedTxId = tx.Proposal.Input.Ref.TxId.String()
	}

	i := tx.Proposal.Output
	_, err = p.db.ExecContext(ctx, upsertItem,
		i.LinearId.Id.String(),
		i.Seller.String(),
		i.Name,
		i.SKU,
		i.Price.Quantity,
		i.Price.Currency.String(),
		i.ForSale,
		txId.String(),
		consumedTxId,
	)
	if nil != err {
		p.log.Errorf("apply: %s  error: %s", txId, err)
		return err
	}

	p.log.Debugf("apply: %s  item: %s", txId, i.LinearId)
	return nil
}

// BySKU - rows with the given sku
func (p *Projector) BySKU(ctx context.Context, sku string) ([]Row, error) {
	return p.query(ctx, selectItems+` WHERE sku = ? ORDER BY linear_id`, sku)
}

// ForSale - every row still for sale
func (p *Projector) ForSale(ctx context.Context) ([]Row, error) {
	return p.query(ctx, selectItems+` WHERE for_sale ORDER BY sku, linear_id`)
}

func (p *Projector) query(ctx context.Context, query string, args ...interface{}) ([]Row, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if nil != err {
		return nil, err
	}
	defer rows.Close()

	result := make([]Row, 0)
	for rows.Next() {
		r := Row{}
		err := rows.Scan(&r.LinearId, &r.Seller, &r.Name, &r.SKU, &r.Value, &r.Currency, &r.ForSale, &r.TxId)
		if nil != err {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// Run - apply finalised transactions from the bus until shutdown
func (p *Projector) Run(args interface{}, shutdown <-chan struct{}) {
	log := p.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case message := <-p.queue:
			if err := p.process(message); nil != err {
				log.Errorf("process: %s  error: %s", message.Command, err)
			}
		}
	}

	log.Info("stopped")
}

// apply one bus message; other commands are ignored
func (p *Projector) process(message messagebus.Message) error {
	if messagebus.FinalisedCommand != message.Command {
		return nil
	}
	if 1 != len(message.Parameters) {
		return fault.ErrMissingParameters
	}

	t, err := transactionrecord.Packed(message.Parameters[0]).UnpackExact()
	if nil != err {
		return err
	}
	tx, ok := t.(*transactionrecord.Finalised)
	if !ok {
		return fault.ErrNotTransactionPack
	}

	return p.Apply(context.Background(), tx)
}
