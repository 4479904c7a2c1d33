// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures provides deterministic parties and a throw-away
// logger for tests
package fixtures

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/itemd/account"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// deterministic parties
var (
	Seller   = party("seller")
	Buyer1   = party("buyer-1")
	Buyer2   = party("buyer-2")
	Buyer3   = party("buyer-3")
	Notary   = party("notary")
	Outsider = party("outsider")
)

func party(name string) *account.PrivateKey {
	seed := sha256.Sum256([]byte("itemd test party: " + name))
	key, err := account.PrivateKeyFromSeed(seed[:], true)
	if nil != err {
		panic(err)
	}
	return key
}

// SetupTestLogger - create a log directory that only records critical
// messages
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the log directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// DatabaseDirectory - a fresh directory under the test directory
func DatabaseDirectory(name string) string {
	d := filepath.Join(dir, name)
	_ = os.RemoveAll(d)
	_ = os.MkdirAll(d, 0700)
	return d
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
