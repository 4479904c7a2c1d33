// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/itemd/configuration"
	"github.com/bitmark-inc/itemd/fault"
	"github.com/bitmark-inc/itemd/util"
)

// basic defaults (directories and files are relative to the
// "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultVaultDirectory  = "vault.leveldb"
	defaultNotaryDirectory = "notary.leveldb"
	defaultSchemaDatabase  = "items.sqlite3"

	defaultLogDirectory = "log"
	defaultLogFile      = "itemd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultTransportTimeout = 10 // seconds
	defaultRetryInterval    = 1  // seconds

	defaultEndorseRate  = 50
	defaultEndorseBurst = 100

	defaultRedisAddress = "127.0.0.1:6379"
)

// notary modes
const (
	NotaryRemote  = "remote"  // claims are sent to the notary party
	NotaryLevelDB = "leveldb" // this node is the notary, claims kept in LevelDB
	NotaryRedis   = "redis"   // this node is the notary, claims kept in Redis
)

// RedisType - connection to the redis claim store
type RedisType struct {
	Address  string `gluamapper:"address"`
	Password string `gluamapper:"password"`
	Database int    `gluamapper:"database"`
}

// NotaryType - which authority enforces uniqueness
type NotaryType struct {
	Account   string    `gluamapper:"account"`
	Mode      string    `gluamapper:"mode"`
	Directory string    `gluamapper:"directory"`
	Redis     RedisType `gluamapper:"redis"`
}

// PartyType - address of another party
//
// PublicKey is the tagged CURVE key of the party's listener, empty
// for plain text
type PartyType struct {
	Account   string `gluamapper:"account"`
	Address   string `gluamapper:"address"`
	PublicKey string `gluamapper:"public_key"`
}

// TransportType - the listener and the party directory
type TransportType struct {
	Listen     []string    `gluamapper:"listen"`
	PrivateKey string      `gluamapper:"private_key"`
	Timeout    int         `gluamapper:"timeout"`
	Parties    []PartyType `gluamapper:"parties"`
}

// Configuration - top level configuration
type Configuration struct {
	DataDirectory  string               `gluamapper:"data_directory"`
	IdentitySeed   string               `gluamapper:"identity_seed"`
	VaultDirectory string               `gluamapper:"vault_directory"`
	SchemaDatabase string               `gluamapper:"schema_database"`
	EndorseRate    float64              `gluamapper:"endorse_rate"`
	EndorseBurst   int                  `gluamapper:"endorse_burst"`
	RetryInterval  int                  `gluamapper:"retry_interval"`
	Notary         NotaryType           `gluamapper:"notary"`
	Transport      TransportType        `gluamapper:"transport"`
	Logging        logger.Configuration `gluamapper:"logging"`
}

// GetConfiguration - read and check the configuration
//
// relative paths are made absolute with respect to the data directory
// and the vault, notary and log directories are created
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory:  defaultDataDirectory,
		VaultDirectory: defaultVaultDirectory,
		SchemaDatabase: defaultSchemaDatabase,
		EndorseRate:    defaultEndorseRate,
		EndorseBurst:   defaultEndorseBurst,
		RetryInterval:  defaultRetryInterval,

		Notary: NotaryType{
			Mode:      NotaryRemote,
			Directory: defaultNotaryDirectory,
			Redis: RedisType{
				Address: defaultRedisAddress,
			},
		},

		Transport: TransportType{
			Timeout: defaultTransportTimeout,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	variables := map[string]string{
		"config_directory": dataDirectory,
	}
	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); nil != err {
		return nil, err
	}

	options.Notary.Mode = strings.ToLower(options.Notary.Mode)
	switch options.Notary.Mode {
	case NotaryRemote:
		if "" == options.Notary.Account {
			return nil, fault.ErrEmptyNotaryConfiguration
		}
	case NotaryLevelDB, NotaryRedis:
	default:
		return nil, fault.ErrConfigurationInvalid
	}

	if "" == options.IdentitySeed {
		return nil, fault.ErrConfigurationInvalid
	}
	// zero rate is unlimited
	if options.EndorseRate < 0 || options.EndorseBurst < 0 {
		return nil, fault.ErrConfigurationInvalid
	}
	if options.Transport.Timeout <= 0 || options.RetryInterval <= 0 {
		return nil, fault.ErrConfigurationInvalid
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fault.ErrNotADirectory
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = util.EnsureAbsolute(dataDirectory, options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fault.ErrNotADirectory
	}

	// the schema database may also be an in-memory data source
	if ":memory:" != options.SchemaDatabase {
		options.SchemaDatabase = util.EnsureAbsolute(options.DataDirectory, options.SchemaDatabase)
	}

	// make absolute and create directories if they do not already exist
	directories := []*string{
		&options.VaultDirectory,
		&options.Logging.Directory,
	}
	if NotaryLevelDB == options.Notary.Mode {
		directories = append(directories, &options.Notary.Directory)
	}
	for _, d := range directories {
		*d, err = util.EnsureDirectory(options.DataDirectory, *d)
		if nil != err {
			return nil, err
		}
	}

	// the log file must be a plain name inside the log directory
	switch filepath.Dir(options.Logging.File) {
	case "", ".":
	default:
		return nil, fault.ErrConfigurationInvalid
	}

	// done
	return options, nil
}
