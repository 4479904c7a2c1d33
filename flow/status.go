// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package flow

import (
	"fmt"
)

// Status - progress of an instance
type Status int

// possible status values
const (
	Proposed Status = iota
	Endorsing
	Endorsed
	Refused
	Finalizing
	Finalized
	Conflict
)

// allowed successors of each status; terminal states have none
var successors = map[Status][]Status{
	Proposed:   {Endorsing},
	Endorsing:  {Endorsed, Refused},
	Endorsed:   {Finalizing},
	Finalizing: {Finalized, Conflict},
}

// CanBecome - the transition to next is allowed
func (s Status) CanBecome(next Status) bool {
	for _, n := range successors[s] {
		if n == next {
			return true
		}
	}
	return false
}

// IsTerminal - no further transitions are possible
func (s Status) IsTerminal() bool {
	return 0 == len(successors[s])
}

// String - name of the status
func (s Status) String() string {
	switch s {
	case Proposed:
		return "Proposed"
	case Endorsing:
		return "Endorsing"
	case Endorsed:
		return "Endorsed"
	case Refused:
		return "Refused"
	case Finalizing:
		return "Finalizing"
	case Finalized:
		return "Finalized"
	case Conflict:
		return "Conflict"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}
