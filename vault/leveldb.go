// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/merkle"
	"github.com/bitmark-inc/itemd/transactionrecord"
	"github.com/bitmark-inc/itemd/util"
)

// key prefixes
//
//   L ‖ linear id            → live state ref
//   S ‖ state ref            → packed State record (unconsumed only)
//   K ‖ varint(len sku) ‖ sku ‖ linear id  → live state ref
//   T ‖ tx id                → packed Finalised record
//   C ‖ state ref            → consuming tx id
//   O ‖ tx id ‖ account      → packed Finalised record still owed
const (
	livePrefix     = 'L'
	statePrefix    = 'S'
	skuPrefix      = 'K'
	txPrefix       = 'T'
	consumedPrefix = 'C'
	owedPrefix     = 'O'
)

var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

// 0x101 length-prefixes the sku index
const currentVersion = 0x101

// Database - a vault in a LevelDB directory
type Database struct {
	sync.Mutex
	log   *logger.L
	db    *leveldb.DB
	cache *liveCache
}

// Open - open or create the vault database
func Open(directory string) (*Database, error) {
	log := logger.New("vault")

	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}
	db, err := leveldb.OpenFile(directory, opt)
	if nil != err {
		return nil, err
	}

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}
	switch version {
	case 0:
		if err := putVersion(db, currentVersion); nil != err {
			db.Close()
			return nil, err
		}
	case currentVersion:
	default:
		db.Close()
		log.Criticalf("vault database version: %d  expected: %d", version, currentVersion)
		return nil, fmt.Errorf("vault database version: %d  expected: %d", version, currentVersion)
	}

	log.Infof("opened: %q", directory)

	return &Database{
		log:   log,
		db:    db,
		cache: newLiveCache(),
	}, nil
}

// Close - close the database
func (d *Database) Close() error {
	d.Lock()
	defer d.Unlock()
	if nil == d.db {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	d.cache.clear()
	return err
}

// Live - the unconsumed snapshot of an item
func (d *Database) Live(linearId item.LinearId) (*item.StateAndRef, error) {
	if s, ok := d.cache.get(linearId); ok {
		return s, nil
	}

	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil, fault.ErrNotInitialised
	}

	value, err := d.db.Get(prefixKey(livePrefix, []byte(linearId.String())), nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.ErrItemNotFound
	} else if nil != err {
		return nil, err
	}

	s, err := d.readState(value)
	if nil != err {
		return nil, err
	}
	d.cache.set(linearId, s)
	return copyStateAndRef(s), nil
}

// LiveBySKU - the unconsumed snapshot of the one item with this sku
func (d *Database) LiveBySKU(sku string) (*item.StateAndRef, error) {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil, fault.ErrNotInitialised
	}

	iter := d.db.NewIterator(ldb_util.BytesPrefix(skuKey(sku, "")), nil)
	defer iter.Release()

	var refBytes []byte
	n := 0
	for iter.Next() {
		refBytes = append([]byte{}, iter.Value()...)
		n += 1
	}
	if err := iter.Error(); nil != err {
		return nil, err
	}

	switch n {
	case 0:
		return nil, fault.ErrItemNotFound
	case 1:
		return d.readState(refBytes)
	default:
		return nil, fault.ErrMultipleItemsFound
	}
}

// Transaction - a finalised transaction the vault has recorded
func (d *Database) Transaction(txId merkle.Digest) (*transactionrecord.Finalised, error) {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil, fault.ErrNotInitialised
	}

	value, err := d.db.Get(prefixKey(txPrefix, txId[:]), nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.ErrTransactionNotFound
	} else if nil != err {
		return nil, err
	}
	t, err := transactionrecord.Packed(value).UnpackExact()
	if nil != err {
		return nil, fault.ErrDatabaseCorrupt
	}
	tx, ok := t.(*transactionrecord.Finalised)
	if !ok {
		return nil, fault.ErrDatabaseCorrupt
	}
	return tx, nil
}

// Record - consume the input and make the output live in one batch
//
// recording a transaction already present succeeds without change
func (d *Database) Record(tx *transactionrecord.Finalised) error {
	if nil == tx || nil == tx.Proposal || nil == tx.Proposal.Output {
		return fault.ErrMissingParameters
	}
	proposal := tx.Proposal

	packedTx, err := tx.Pack()
	if nil != err {
		return err
	}
	outRef, err := proposal.OutputRef()
	if nil != err {
		return err
	}
	txId := outRef.TxId
	output := proposal.Output

	state := &transactionrecord.State{
		Ref:   outRef,
		State: output,
	}
	packedState, err := state.Pack()
	if nil != err {
		return err
	}

	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return fault.ErrNotInitialised
	}

	found, err := d.db.Has(prefixKey(txPrefix, txId[:]), nil)
	if nil != err {
		return err
	}
	if found {
		d.log.Debugf("already recorded: %s", txId)
		return nil
	}

	linearKey := prefixKey(livePrefix, []byte(output.LinearId.String()))
	live, err := d.db.Get(linearKey, nil)
	if leveldb.ErrNotFound == err {
		live = nil
	} else if nil != err {
		return err
	}

	batch := new(leveldb.Batch)

	if nil == proposal.Input {
		if nil != live {
			return fault.ErrItemAlreadyExists
		}
	} else {
		inRef := proposal.Input.Ref
		inRefBytes := inRef.Bytes()

		// a party that never saw the consumed snapshot has no live
		// entry for the item and takes the output as its first state
		if nil != live && string(live) != string(inRefBytes) {
			d.log.Warnf("tx: %s  consumes: %s  live state differs", txId, inRef)
			return fault.ErrLiveStateMismatch
		}
		consumedBy, err := d.db.Get(prefixKey(consumedPrefix, inRefBytes), nil)
		if nil == err {
			if string(consumedBy) != string(txId[:]) {
				return fault.ErrStateAlreadyConsumed
			}
		} else if leveldb.ErrNotFound != err {
			return err
		}

		batch.Delete(prefixKey(statePrefix, inRefBytes))
		batch.Put(prefixKey(consumedPrefix, inRefBytes), txId[:])
		batch.Delete(skuKey(proposal.Input.State.SKU, proposal.Input.State.LinearId.String()))
	}

	outRefBytes := outRef.Bytes()
	batch.Put(prefixKey(statePrefix, outRefBytes), packedState)
	batch.Put(linearKey, outRefBytes)
	batch.Put(skuKey(output.SKU, output.LinearId.String()), outRefBytes)
	batch.Put(prefixKey(txPrefix, txId[:]), packedTx)

	err = d.db.Write(batch, &ldb_opt.WriteOptions{Sync: true})
	if nil != err {
		d.log.Errorf("record: %s  error: %s", txId, err)
		return err
	}

	d.cache.set(output.LinearId, &item.StateAndRef{
		Ref:   outRef,
		State: output.Copy(),
	})

	d.log.Infof("recorded: %s  %s  live: %s", txId, proposal.Command, outRef)
	return nil
}

// read an unconsumed state given its packed ref
func (d *Database) readState(refBytes []byte) (*item.StateAndRef, error) {
	value, err := d.db.Get(prefixKey(statePrefix, refBytes), nil)
	if leveldb.ErrNotFound == err {
		return nil, fault.ErrDatabaseCorrupt
	} else if nil != err {
		return nil, err
	}

	t, err := transactionrecord.Packed(value).UnpackExact()
	if nil != err {
		return nil, fault.ErrDatabaseCorrupt
	}
	state, ok := t.(*transactionrecord.State)
	if !ok {
		return nil, fault.ErrDatabaseCorrupt
	}
	return &item.StateAndRef{
		Ref:   state.Ref,
		State: state.State,
	}, nil
}

// prepend the prefix onto the key
func prefixKey(prefix byte, key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = prefix
	return append(prefixedKey, key...)
}

// sku index key; an empty linear id gives the prefix of all entries
// for the sku and of no other sku's entries
func skuKey(sku string, linearId string) []byte {
	length := util.ToVarint64(uint64(len(sku)))
	key := make([]byte, 0, 1+len(length)+len(sku)+len(linearId))
	key = append(key, skuPrefix)
	key = append(key, length...)
	key = append(key, sku...)
	return append(key, linearId...)
}

func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}
	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}
	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	value := make([]byte, 4)
	binary.BigEndian.PutUint32(value, uint32(version))
	return db.Put(versionKey, value, nil)
}

func copyStateAndRef(s *item.StateAndRef) *item.StateAndRef {
	return &item.StateAndRef{
		Ref:   s.Ref,
		State: s.State.Copy(),
	}
}
