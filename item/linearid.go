// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package item

import (
	"strings"

	"github.com/google/uuid"

	"github.com/bitmark-inc/itemd/fault"
)

// LinearId - identity shared by all snapshots of one item
//
// the external id is the sku the item was created with
type LinearId struct {
	ExternalId string
	Id         uuid.UUID
}

// NewLinearId - a random identifier tagged with an external id
func NewLinearId(externalId string) (LinearId, error) {
	id, err := uuid.NewRandom()
	if nil != err {
		return LinearId{}, err
	}
	return LinearId{
		ExternalId: externalId,
		Id:         id,
	}, nil
}

// ParseLinearId - decode the form produced by String
func ParseLinearId(s string) (LinearId, error) {
	n := strings.LastIndexByte(s, '_')
	text := s
	externalId := ""
	if n >= 0 {
		externalId, text = s[:n], s[n+1:]
	}
	id, err := uuid.Parse(text)
	if nil != err {
		return LinearId{}, fault.ErrInvalidLinearId
	}
	return LinearId{
		ExternalId: externalId,
		Id:         id,
	}, nil
}

// IsZero - never assigned
func (linearId LinearId) IsZero() bool {
	return uuid.Nil == linearId.Id
}

// String - "<external id>_<uuid>" or the bare uuid
func (linearId LinearId) String() string {
	if "" == linearId.ExternalId {
		return linearId.Id.String()
	}
	return linearId.ExternalId + "_" + linearId.Id.String()
}

// MarshalText - convert to JSON text
func (linearId LinearId) MarshalText() ([]byte, error) {
	return []byte(linearId.String()), nil
}

// UnmarshalText - convert from JSON text
func (linearId *LinearId) UnmarshalText(s []byte) error {
	l, err := ParseLinearId(string(s))
	if nil != err {
		return err
	}
	*linearId = l
	return nil
}
