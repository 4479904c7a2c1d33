// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"fmt"
	"testing"

	"github.com/bitmark-inc/itemd/fault"
)

var (
	ErrExistsOne       = fault.ExistsError("exists one ")
	ErrInvalidOne      = fault.InvalidError("invalid one")
	ErrNotFoundOne     = fault.NotFoundError("not found one")
	ErrProcessOne      = fault.ProcessError("process one")
	ErrVerificationOne = fault.VerificationError("verification one")
	ErrRefusalOne      = fault.RefusalError("refusal one")
	ErrConflictOne     = fault.ConflictError("conflict one")
	ErrTransportOne    = fault.TransportError("transport one")
)

// test that the various errors can be classified even when wrapped
func TestClassification(t *testing.T) {
	errorList := []struct {
		err          error
		exists       bool
		invalid      bool
		notFound     bool
		process      bool
		verification bool
		refusal      bool
		conflict     bool
		transport    bool
	}{
		{ErrExistsOne, true, false, false, false, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false, false, false, false},
		{ErrNotFoundOne, false, false, true, false, false, false, false, false},
		{ErrProcessOne, false, false, false, true, false, false, false, false},
		{ErrVerificationOne, false, false, false, false, true, false, false, false},
		{ErrRefusalOne, false, false, false, false, false, true, false, false},
		{ErrConflictOne, false, false, false, false, false, false, true, false},
		{ErrTransportOne, false, false, false, false, false, false, false, true},
		{fmt.Errorf("wrapped: %w", ErrConflictOne), false, false, false, false, false, false, true, false},
		{fault.ErrPriceMustChange, false, false, false, false, true, false, false, false},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrExists(err) != e.exists {
			t.Errorf("%d: expected 'exists' == %v for err = %v", i, e.exists, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrVerification(err) != e.verification {
			t.Errorf("%d: expected 'verification' == %v for err = %v", i, e.verification, err)
		}
		if fault.IsErrRefusal(err) != e.refusal {
			t.Errorf("%d: expected 'refusal' == %v for err = %v", i, e.refusal, err)
		}
		if fault.IsErrConflict(err) != e.conflict {
			t.Errorf("%d: expected 'conflict' == %v for err = %v", i, e.conflict, err)
		}
		if fault.IsErrTransport(err) != e.transport {
			t.Errorf("%d: expected 'transport' == %v for err = %v", i, e.transport, err)
		}
	}
}

// an error sent as (class, text) must compare equal on the other side
func TestWireRoundTrip(t *testing.T) {
	errorList := []error{
		fault.ErrPriceMustChange,
		fault.ErrSellerIsBuyer,
		fault.ErrStateAlreadyConsumed,
		fault.ErrDeclined,
		fault.ErrPeerUnreachable,
		fault.ErrItemNotFound,
		fault.ErrItemAlreadyExists,
		fault.ErrNotTransactionPack,
		fault.ErrNotInitialised,
	}

	for i, err := range errorList {
		class, text := fault.Class(fmt.Errorf("context: %w", err))
		rebuilt := fault.FromClass(class, text)
		if rebuilt != err {
			t.Errorf("%d: rebuilt: %#v  expected: %#v", i, rebuilt, err)
		}
	}

	class, text := fault.Class(fmt.Errorf("plain"))
	if fault.FromClass(class, text).Error() != "plain" {
		t.Errorf("generic error text not preserved")
	}
}
