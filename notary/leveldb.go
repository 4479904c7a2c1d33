// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notary

import (
	"context"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/merkle"
)

// key prefix for claimed state references
const claimedPrefix = 'N'

// LevelDBStore - claims held in a local database
type LevelDBStore struct {
	sync.Mutex
	db *leveldb.DB
}

// NewLevelDBStore - open or create the claim database
func NewLevelDBStore(directory string) (*LevelDBStore, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}
	db, err := leveldb.OpenFile(directory, opt)
	if nil != err {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

// Reserve - record txId against ref unless another transaction is there
func (store *LevelDBStore) Reserve(ctx context.Context, ref item.StateRef, txId merkle.Digest) (merkle.Digest, error) {
	if err := ctx.Err(); nil != err {
		return merkle.Digest{}, err
	}

	store.Lock()
	defer store.Unlock()

	if nil == store.db {
		return merkle.Digest{}, fault.ErrNotInitialised
	}

	key := append([]byte{claimedPrefix}, ref.Bytes()...)
	value, err := store.db.Get(key, nil)
	if nil == err {
		holder := merkle.Digest{}
		if err := merkle.DigestFromBytes(&holder, value); nil != err {
			return merkle.Digest{}, fault.ErrDatabaseCorrupt
		}
		return holder, nil
	}
	if leveldb.ErrNotFound != err {
		return merkle.Digest{}, err
	}

	err = store.db.Put(key, txId[:], &ldb_opt.WriteOptions{Sync: true})
	if nil != err {
		return merkle.Digest{}, err
	}
	return txId, nil
}

// Close - close the database
func (store *LevelDBStore) Close() error {
	store.Lock()
	defer store.Unlock()
	if nil == store.db {
		return nil
	}
	err := store.db.Close()
	store.db = nil
	return err
}
