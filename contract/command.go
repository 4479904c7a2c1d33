// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package contract

import (
	"fmt"

	"github.com/bitmark-inc/itemd/fault"
)

// Command - the kind of change a transaction makes to an item
type Command uint64

// the closed set of commands; the zero value is never valid
const (
	Invalid         Command = iota
	Create          Command = iota
	UpdatePrice     Command = iota
	AddBuyer        Command = iota
	NoLongerForSale Command = iota
	commandLimit    Command = iota
)

// CommandFromUint64 - decode the wire value of a command
func CommandFromUint64(n uint64) (Command, error) {
	c := Command(n)
	if !c.IsValid() {
		return Invalid, fault.ErrUnknownCommand
	}
	return c, nil
}

// IsValid - one of the defined commands
func (command Command) IsValid() bool {
	return command > Invalid && command < commandLimit
}

// String - name for log messages and JSON
func (command Command) String() string {
	switch command {
	case Create:
		return "Create"
	case UpdatePrice:
		return "UpdatePrice"
	case AddBuyer:
		return "AddBuyer"
	case NoLongerForSale:
		return "NoLongerForSale"
	default:
		return fmt.Sprintf("Command#%d", uint64(command))
	}
}

// MarshalText - convert to JSON text
func (command Command) MarshalText() ([]byte, error) {
	return []byte(command.String()), nil
}
