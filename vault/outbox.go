// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/merkle"
)

// Owe - remember that every one of parties is still owed the packed
// transaction
func (d *Database) Owe(txId merkle.Digest, parties []*account.Account, packed []byte) error {
	if 0 == len(packed) {
		return fault.ErrMissingParameters
	}

	batch := new(leveldb.Batch)
	for _, party := range parties {
		if nil == party {
			return fault.ErrMissingParameters
		}
		batch.Put(owedKey(txId, party), packed)
	}

	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return fault.ErrNotInitialised
	}
	return d.db.Write(batch, &ldb_opt.WriteOptions{Sync: true})
}

// Settle - the delivery to one party needs no further attempts
func (d *Database) Settle(txId merkle.Digest, to *account.Account) error {
	if nil == to {
		return fault.ErrMissingParameters
	}

	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return fault.ErrNotInitialised
	}
	return d.db.Delete(owedKey(txId, to), &ldb_opt.WriteOptions{Sync: true})
}

// Owed - every delivery not yet settled
func (d *Database) Owed() ([]Owed, error) {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil, fault.ErrNotInitialised
	}

	iter := d.db.NewIterator(ldb_util.BytesPrefix([]byte{owedPrefix}), nil)
	defer iter.Release()

	owed := make([]Owed, 0)
	for iter.Next() {
		key := iter.Key()
		if len(key) <= 1+merkle.DigestLength {
			return nil, fault.ErrDatabaseCorrupt
		}
		var txId merkle.Digest
		copy(txId[:], key[1:1+merkle.DigestLength])
		to, err := account.AccountFromBytes(key[1+merkle.DigestLength:])
		if nil != err {
			d.log.Errorf("owed: %s  account error: %s", txId, err)
			return nil, fault.ErrDatabaseCorrupt
		}
		owed = append(owed, Owed{
			TxId:   txId,
			To:     to,
			Packed: append([]byte{}, iter.Value()...),
		})
	}
	if err := iter.Error(); nil != err {
		return nil, err
	}
	return owed, nil
}

func owedKey(txId merkle.Digest, to *account.Account) []byte {
	return prefixKey(owedPrefix, append(txId[:], to.Bytes()...))
}
