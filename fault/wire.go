// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// single character class codes used in error replies
const (
	classGeneric      = "G"
	classExists       = "X"
	classInvalid      = "I"
	classNotFound     = "N"
	classProcess      = "P"
	classVerification = "V"
	classRefusal      = "R"
	classConflict     = "C"
	classTransport    = "T"
)

// Class - the wire class code and the innermost classified text of an error
func Class(err error) (string, string) {
	var (
		exists       ExistsError
		invalid      InvalidError
		notFound     NotFoundError
		process      ProcessError
		verification VerificationError
		refusal      RefusalError
		conflict     ConflictError
		transport    TransportError
	)
	switch {
	case errors.As(err, &verification):
		return classVerification, string(verification)
	case errors.As(err, &conflict):
		return classConflict, string(conflict)
	case errors.As(err, &refusal):
		return classRefusal, string(refusal)
	case errors.As(err, &transport):
		return classTransport, string(transport)
	case errors.As(err, &exists):
		return classExists, string(exists)
	case errors.As(err, &invalid):
		return classInvalid, string(invalid)
	case errors.As(err, &notFound):
		return classNotFound, string(notFound)
	case errors.As(err, &process):
		return classProcess, string(process)
	default:
		return classGeneric, err.Error()
	}
}

// FromClass - rebuild an error received as (class, text)
//
// the result compares equal to the named error instance of the same text
func FromClass(class string, text string) error {
	switch class {
	case classExists:
		return ExistsError(text)
	case classInvalid:
		return InvalidError(text)
	case classNotFound:
		return NotFoundError(text)
	case classProcess:
		return ProcessError(text)
	case classVerification:
		return VerificationError(text)
	case classRefusal:
		return RefusalError(text)
	case classConflict:
		return ConflictError(text)
	case classTransport:
		return TransportError(text)
	default:
		return GenericError(text)
	}
}
