// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// domain classes
type VerificationError GenericError // a named rule of the item contract was violated
type RefusalError GenericError      // a counterparty declined without a rule violation
type ConflictError GenericError     // the uniqueness authority rejected a claim
type TransportError GenericError    // delivery failed; may be retried

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised       = ExistsError("already initialised")
	ErrCannotDecodeAccount      = InvalidError("cannot decode account")
	ErrCannotDecodeSeed         = InvalidError("cannot decode seed")
	ErrChecksumMismatch         = InvalidError("checksum mismatch")
	ErrConfigurationInvalid     = InvalidError("configuration is invalid")
	ErrConfigurationNotTable    = InvalidError("configuration did not return a table")
	ErrCountMismatch            = InvalidError("count mismatch")
	ErrDuplicateEndorsement     = InvalidError("duplicate endorsement")
	ErrEndorsementMissing       = InvalidError("endorsement missing")
	ErrFieldTooLong             = InvalidError("field too long")
	ErrInvalidAmount            = InvalidError("invalid amount")
	ErrInvalidCurrency          = InvalidError("invalid currency")
	ErrInvalidKeyLength         = InvalidError("invalid key length")
	ErrInvalidKeyType           = InvalidError("invalid key type")
	ErrInvalidLinearId          = InvalidError("invalid linear id")
	ErrInvalidLoggerChannel     = InvalidError("invalid logger channel")
	ErrInvalidPrivateKey        = InvalidError("invalid private key")
	ErrInvalidPublicKey         = InvalidError("invalid public key")
	ErrInvalidReceipt           = InvalidError("invalid notary receipt")
	ErrInvalidSeedLength        = InvalidError("invalid seed length")
	ErrInvalidSignature         = InvalidError("invalid signature")
	ErrInvalidStructPointer     = InvalidError("invalid struct pointer")
	ErrItemAlreadyExists        = ExistsError("item already exists")
	ErrItemNotFound             = NotFoundError("item not found")
	ErrLiveStateMismatch        = InvalidError("consumed state is not the live state")
	ErrMissingParameters        = InvalidError("missing parameters")
	ErrMissingReceipt           = InvalidError("notary receipt missing")
	ErrMultipleItemsFound       = InvalidError("more than one live item found")
	ErrNotAParticipant          = InvalidError("not a participant")
	ErrNotADirectory            = InvalidError("not a directory")
	ErrNotDigest                = InvalidError("not a digest")
	ErrNotPublicKey             = InvalidError("not a public key")
	ErrNotStateRef              = InvalidError("not a state reference")
	ErrNotTransactionPack       = InvalidError("not a transaction pack")
	ErrOnlySellerMayChangeItem  = InvalidError("only the seller can make changes to an item")
	ErrSellerInNewBuyerList     = InvalidError("seller is part of the new buyer list")
	ErrStateNotFound            = NotFoundError("state not found")
	ErrTransactionNotFound      = NotFoundError("transaction not found")
	ErrUnknownFunction          = InvalidError("unknown function")
	ErrUnknownParty             = NotFoundError("unknown party")
	ErrWrongNotary              = InvalidError("wrong notary")
	ErrIllegalStatusTransition  = ProcessError("illegal status transition")
	ErrNotInitialised           = ProcessError("not initialised")
	ErrUnexpectedReply          = ProcessError("unexpected reply")
	ErrNotaryUnavailable        = ProcessError("notary unavailable")
	ErrDatabaseCorrupt          = ProcessError("database is corrupt")
	ErrEmptyNotaryConfiguration = InvalidError("notary mode is not configured")
)

// contract rule violations - the text is the name of the rule
var (
	ErrBuyerListNotRetained   = VerificationError("the old buyer list must be a subset of the new")
	ErrBuyerListMustGrow      = VerificationError("the new buyer list must contain more buyers")
	ErrCreateHasInputs        = VerificationError("no input should exist when creating an item")
	ErrDuplicateBuyer         = VerificationError("the buyer list must not contain duplicates")
	ErrForSaleMustBeFalse     = VerificationError("the for sale flag must be false")
	ErrForSaleMustBeSet       = VerificationError("the for sale flag must be set")
	ErrNameRequired           = VerificationError("the name must be filled in")
	ErrNegativePrice          = VerificationError("the price must be zero or greater")
	ErrOnlyBuyersMayChange    = VerificationError("only the buyer list may change")
	ErrOnlyForSaleMayChange   = VerificationError("only the for sale flag may change")
	ErrOnlyPriceMayChange     = VerificationError("only the price may change")
	ErrPriceMustChange        = VerificationError("the price must change")
	ErrSellerIsBuyer          = VerificationError("the seller cannot be a buyer")
	ErrSellerRequired         = VerificationError("the seller must be set")
	ErrSignerSetMismatch      = VerificationError("the signer set must match the required signers")
	ErrSkuRequired            = VerificationError("the item sku must be filled in")
	ErrUnknownCommand         = VerificationError("unknown command")
	ErrWrongInputCount        = VerificationError("an update should consume exactly one previous state")
	ErrWrongOutputCount       = VerificationError("exactly one item state should be produced")
	ErrDeclined               = RefusalError("declined")
	ErrRateLimitExceeded      = RefusalError("rate limit exceeded")
	ErrStateAlreadyConsumed   = ConflictError("state already consumed by another transaction")
	ErrPeerUnreachable        = TransportError("peer unreachable")
	ErrDeliveryTimeout        = TransportError("delivery timeout")
	ErrNoHandlerForFunction   = TransportError("no handler for function")
	ErrTransportNotRunning    = TransportError("transport not running")
	ErrMalformedTransportData = TransportError("malformed transport data")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string       { return string(e) }
func (e InvalidError) Error() string      { return string(e) }
func (e NotFoundError) Error() string     { return string(e) }
func (e ProcessError) Error() string      { return string(e) }
func (e VerificationError) Error() string { return string(e) }
func (e RefusalError) Error() string      { return string(e) }
func (e ConflictError) Error() string     { return string(e) }
func (e TransportError) Error() string    { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool       { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool      { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool     { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool      { var t ProcessError; return errors.As(e, &t) }
func IsErrVerification(e error) bool { var t VerificationError; return errors.As(e, &t) }
func IsErrRefusal(e error) bool      { var t RefusalError; return errors.As(e, &t) }
func IsErrConflict(e error) bool     { var t ConflictError; return errors.As(e, &t) }
func IsErrTransport(e error) bool    { var t TransportError; return errors.As(e, &t) }
