// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/itemd/configuration"
	"github.com/bitmark-inc/itemd/fault"
)

type party struct {
	Account string `gluamapper:"account"`
	Address string `gluamapper:"address"`
}

type sample struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Rate          float64           `gluamapper:"endorse_rate"`
	Burst         int               `gluamapper:"endorse_burst"`
	Listen        []string          `gluamapper:"listen"`
	Parties       []party           `gluamapper:"parties"`
	Levels        map[string]string `gluamapper:"levels"`
}

const sampleConfiguration = `
local M = {}

M.data_directory = default_directory
M.endorse_rate = 2.5
M.endorse_burst = 4
M.listen = { "tcp://127.0.0.1:2140", "tcp://[::1]:2140" }
M.parties = {
    { account = "buyer", address = "tcp://10.0.0.1:2140" },
}
M.levels = { DEFAULT = "info", notary = "debug" }

return M
`

func writeFile(t *testing.T, text string) string {
	name := filepath.Join(t.TempDir(), "itemd.conf")
	require.NoError(t, os.WriteFile(name, []byte(text), 0600), "write configuration")
	return name
}

func TestParseConfigurationFile(t *testing.T) {
	name := writeFile(t, sampleConfiguration)

	cfg := sample{}
	variables := map[string]string{
		"default_directory": "/var/lib/itemd",
	}
	err := configuration.ParseConfigurationFile(name, &cfg, variables)
	require.NoError(t, err, "parse")

	assert.Equal(t, "/var/lib/itemd", cfg.DataDirectory, "variable not visible")
	assert.Equal(t, 2.5, cfg.Rate, "wrong rate")
	assert.Equal(t, 4, cfg.Burst, "wrong burst")
	assert.Equal(t, []string{"tcp://127.0.0.1:2140", "tcp://[::1]:2140"}, cfg.Listen, "wrong listen")
	require.Len(t, cfg.Parties, 1, "wrong party count")
	assert.Equal(t, party{Account: "buyer", Address: "tcp://10.0.0.1:2140"}, cfg.Parties[0], "wrong party")
	assert.Equal(t, "debug", cfg.Levels["notary"], "wrong level")
}

func TestParseKeepsDefaults(t *testing.T) {
	name := writeFile(t, "return { endorse_burst = 9 }")

	cfg := sample{
		DataDirectory: ".",
		Rate:          10,
	}
	err := configuration.ParseConfigurationFile(name, &cfg, nil)
	require.NoError(t, err, "parse")

	assert.Equal(t, ".", cfg.DataDirectory, "default overwritten")
	assert.Equal(t, float64(10), cfg.Rate, "default overwritten")
	assert.Equal(t, 9, cfg.Burst, "wrong burst")
}

func TestParseArgTable(t *testing.T) {
	name := writeFile(t, "return { data_directory = arg[0] }")

	cfg := sample{}
	err := configuration.ParseConfigurationFile(name, &cfg, nil)
	require.NoError(t, err, "parse")
	assert.Equal(t, name, cfg.DataDirectory, "arg[0] is not the file name")
}

func TestParseErrors(t *testing.T) {
	cfg := sample{}

	err := configuration.ParseConfigurationFile(writeFile(t, "return 42"), &cfg, nil)
	assert.Equal(t, fault.ErrConfigurationNotTable, err, "non-table accepted")

	err = configuration.ParseConfigurationFile(writeFile(t, "return {"), &cfg, nil)
	assert.Error(t, err, "syntax error accepted")

	err = configuration.ParseConfigurationFile(filepath.Join(t.TempDir(), "absent.conf"), &cfg, nil)
	assert.Error(t, err, "missing file accepted")

	err = configuration.ParseConfigurationFile(writeFile(t, "return {}"), cfg, nil)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "non-pointer accepted")
}
