// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fixtures"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// a party entry for the transport section
type party struct {
	key       *account.PrivateKey
	address   string
	publicKey string
}

// settings for one node's configuration file
type settings struct {
	key        *account.PrivateKey
	mode       string
	listen     string
	privateKey string
	parties    []party
}

// write a configuration file into a fresh directory
func writeConfiguration(t *testing.T, s settings) string {
	directory := t.TempDir()

	parties := []string{}
	for _, p := range s.parties {
		parties = append(parties, fmt.Sprintf(
			"        { account = %q, address = %q, public_key = %q },",
			p.key.Account().String(), p.address, p.publicKey,
		))
	}

	text := fmt.Sprintf(`
local M = {}

M.data_directory = "."
M.identity_seed = %q
M.retry_interval = 1

M.notary = {
    account = %q,
    mode = %q,
}

M.transport = {
    listen = { %q },
    private_key = %q,
    timeout = 5,
    parties = {
%s
    },
}

return M
`,
		s.key.Seed(),
		fixtures.Notary.Account().String(),
		s.mode,
		s.listen,
		s.privateKey,
		strings.Join(parties, "\n"),
	)

	name := filepath.Join(directory, "itemd.conf")
	require.NoError(t, os.WriteFile(name, []byte(text), 0600), "write configuration")
	return name
}
