// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/fixtures"
	"github.com/bitmark-inc/itemd/node"
)

func TestGetConfiguration(t *testing.T) {
	name := writeConfiguration(t, settings{
		key:    fixtures.Seller,
		mode:   node.NotaryRemote,
		listen: "tcp://127.0.0.1:24800",
		parties: []party{
			{key: fixtures.Notary, address: "tcp://127.0.0.1:24801"},
		},
	})
	directory := filepath.Dir(name)

	cfg, err := node.GetConfiguration(name)
	require.NoError(t, err, "configuration")

	assert.Equal(t, filepath.Clean(directory), filepath.Clean(cfg.DataDirectory), "data directory")
	assert.Equal(t, filepath.Join(directory, "vault.leveldb"), cfg.VaultDirectory, "vault directory")
	assert.Equal(t, filepath.Join(directory, "items.sqlite3"), cfg.SchemaDatabase, "schema database")
	assert.Equal(t, filepath.Join(directory, "log"), cfg.Logging.Directory, "log directory")
	assert.Equal(t, "itemd.log", cfg.Logging.File, "log file")

	assert.Equal(t, fixtures.Seller.Seed(), cfg.IdentitySeed, "identity")
	assert.Equal(t, fixtures.Notary.Account().String(), cfg.Notary.Account, "notary")
	assert.Equal(t, node.NotaryRemote, cfg.Notary.Mode, "notary mode")
	assert.Equal(t, []string{"tcp://127.0.0.1:24800"}, cfg.Transport.Listen, "listen")
	assert.Equal(t, 5, cfg.Transport.Timeout, "timeout")
	require.Len(t, cfg.Transport.Parties, 1, "parties")
	assert.Equal(t, "tcp://127.0.0.1:24801", cfg.Transport.Parties[0].Address, "party address")

	// defaults kept
	assert.Equal(t, float64(50), cfg.EndorseRate, "endorse rate")
	assert.Equal(t, 100, cfg.EndorseBurst, "endorse burst")

	for _, d := range []string{cfg.VaultDirectory, cfg.Logging.Directory} {
		info, err := os.Stat(d)
		require.NoError(t, err, "directory: %s", d)
		assert.True(t, info.IsDir(), "not a directory: %s", d)
	}
	_, err = os.Stat(filepath.Join(directory, "notary.leveldb"))
	assert.True(t, os.IsNotExist(err), "notary directory made for a remote notary")
}

func TestGetConfigurationErrors(t *testing.T) {
	write := func(text string) string {
		name := filepath.Join(t.TempDir(), "itemd.conf")
		require.NoError(t, os.WriteFile(name, []byte(text), 0600), "write configuration")
		return name
	}
	seed := fixtures.Seller.Seed()

	_, err := node.GetConfiguration(write(`return { data_directory = ".", identity_seed = "` + seed + `" }`))
	assert.Equal(t, fault.ErrEmptyNotaryConfiguration, err, "remote notary without account")

	_, err = node.GetConfiguration(write(`return { data_directory = ".", identity_seed = "` + seed + `", notary = { mode = "raft" } }`))
	assert.Equal(t, fault.ErrConfigurationInvalid, err, "unknown notary mode")

	_, err = node.GetConfiguration(write(`return { data_directory = ".", notary = { mode = "leveldb" } }`))
	assert.Equal(t, fault.ErrConfigurationInvalid, err, "missing identity")

	_, err = node.GetConfiguration(write(`return { identity_seed = "` + seed + `", notary = { mode = "leveldb" } }`))
	assert.Equal(t, fault.ErrNotADirectory, err, "missing data directory")

	_, err = node.GetConfiguration(write(`return { data_directory = "absent", identity_seed = "` + seed + `", notary = { mode = "leveldb" } }`))
	assert.True(t, os.IsNotExist(err), "absent data directory: %v", err)

	_, err = node.GetConfiguration(write(`return { data_directory = ".", identity_seed = "` + seed + `", notary = { mode = "leveldb" }, logging = { file = "x/y.log" } }`))
	assert.Equal(t, fault.ErrConfigurationInvalid, err, "log file with a path")
}
