// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/currency"
	"github.com/bitmark-inc/itemd/flow"
	"github.com/bitmark-inc/itemd/item"
	"github.com/bitmark-inc/itemd/node"
	"github.com/bitmark-inc/itemd/schema"
	"github.com/bitmark-inc/itemd/transport/zmqtransport"
)

// setup command handler
//
// commands that create keys; these cannot access any internal
// database or states or the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "generate-identity", "identity":
		test := len(arguments) > 0 && "test" == arguments[0]
		key, err := account.NewPrivateKey(test)
		if nil != err {
			exitwithstatus.Message("generate identity error: %s", err)
		}
		fmt.Printf("identity_seed = %q\n", key.Seed())
		fmt.Printf("account = %q\n", key.Account())

	case "generate-transport-keys", "keys":
		publicKey, privateKey, err := zmqtransport.NewKeyPair()
		if nil != err {
			exitwithstatus.Message("generate transport keys error: %s", err)
		}
		fmt.Printf("public_key = %q\n", publicKey)
		fmt.Printf("private_key = %q\n", privateKey)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg", "items",
		"create", "price", "price-by-id", "add-buyers", "withdraw":
		return false // these require the configuration

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}

		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                         (h)     - display this message\n\n")
		fmt.Printf("  version                      (v)     - display version sting\n\n")

		fmt.Printf("  generate-identity [test]     (identity) - print a new identity seed and its account\n")
		fmt.Printf("\n")

		fmt.Printf("  generate-transport-keys      (keys)  - print a new transport key pair\n")
		fmt.Printf("\n")

		fmt.Printf("  start                        (run)   - just run the program, same as no arguments\n")
		fmt.Printf("                                         for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                  (cfg)   - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  items                                - list the items for sale as JSON\n")
		fmt.Printf("\n")

		fmt.Printf("  create NAME SKU PRICE CCY [BUYER...] - offer a new item\n")
		fmt.Printf("  price SKU PRICE CCY                  - change the price of an item\n")
		fmt.Printf("  price-by-id LINEAR-ID PRICE CCY      - change the price of an item\n")
		fmt.Printf("  add-buyers SKU BUYER...              - offer an item to more buyers\n")
		fmt.Printf("  withdraw SKU                         - the item is no longer for sale\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// configuration command handler
//
// commands that only read the configuration or the projection
func processConfigCommand(arguments []string, options *node.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "config-test", "cfg":
		fmt.Printf("configuration OK\n")

	case "items":
		projector, err := schema.Open(options.SchemaDatabase, nil)
		if nil != err {
			exitwithstatus.Message("schema open error: %s", err)
		}
		defer projector.Close()

		rows, err := projector.ForSale(context.Background())
		if nil != err {
			exitwithstatus.Message("items error: %s", err)
		}
		printJson(rows)

	default:
		return false
	}
	return true
}

// how long a data command waits for retried deliveries before exit
const deliveryWait = 10 * time.Second

// data command handler
//
// each command runs one operation on the started node
func processDataCommand(log *logger.L, arguments []string, n *node.Node) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	ctx := context.Background()
	initiator := n.Initiator()

	var instance *flow.Instance
	var err error

	switch command {
	case "create":
		if len(arguments) < 4 {
			exitwithstatus.Message("create requires: NAME SKU PRICE CCY [BUYER...]")
		}
		price := parseAmount(arguments[2], arguments[3])
		buyers := parseAccounts(arguments[4:])
		instance, err = initiator.CreateItem(ctx, arguments[0], arguments[1], price, buyers)

	case "price":
		if 3 != len(arguments) {
			exitwithstatus.Message("price requires: SKU PRICE CCY")
		}
		instance, err = initiator.ChangePrice(ctx, arguments[0], parseAmount(arguments[1], arguments[2]))

	case "price-by-id":
		if 3 != len(arguments) {
			exitwithstatus.Message("price-by-id requires: LINEAR-ID PRICE CCY")
		}
		linearId, e := item.ParseLinearId(arguments[0])
		if nil != e {
			exitwithstatus.Message("linear id: %q  error: %s", arguments[0], e)
		}
		instance, err = initiator.ChangePriceByLinearId(ctx, linearId, parseAmount(arguments[1], arguments[2]))

	case "add-buyers":
		if len(arguments) < 2 {
			exitwithstatus.Message("add-buyers requires: SKU BUYER...")
		}
		instance, err = initiator.AddBuyers(ctx, arguments[0], parseAccounts(arguments[1:]))

	case "withdraw":
		if 1 != len(arguments) {
			exitwithstatus.Message("withdraw requires: SKU")
		}
		instance, err = initiator.NoLongerForSale(ctx, arguments[0])

	default:
		return false
	}

	// no instance: the operation was rejected before a proposal existed
	if nil == instance {
		log.Errorf("%s error: %s", command, err)
		exitwithstatus.Message("%s error: %s", command, err)
	}

	log.Infof("%s: tx: %s  status: %s", command, instance.TxId(), instance.Status())
	fmt.Printf("tx: %s\nstatus: %s\n", instance.TxId(), instance.Status())
	if pending := n.WaitForDeliveries(deliveryWait); 0 != pending {
		log.Warnf("%s: undelivered: %d", command, pending)
		fmt.Printf("warning: %d participant(s) not reached, delivery resumes on the next start\n", pending)
	}
	if nil != err {
		exitwithstatus.Message("%s error: %s", command, err)
	}
	return true
}

func parseAmount(quantity string, ccy string) currency.Amount {
	amount, err := currency.ParseAmount(quantity + " " + ccy)
	if nil != err {
		exitwithstatus.Message("amount: %q %q  error: %s", quantity, ccy, err)
	}
	return amount
}

func parseAccounts(arguments []string) []*account.Account {
	accounts := make([]*account.Account, 0, len(arguments))
	for _, s := range arguments {
		a, err := account.AccountFromBase58(s)
		if nil != err {
			exitwithstatus.Message("account: %q  error: %s", s, err)
		}
		accounts = append(accounts, a)
	}
	return accounts
}

func printJson(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if nil != err {
		exitwithstatus.Message("json error: %s", err)
	}
	fmt.Fprintf(os.Stdout, "%s\n", b)
}
