// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/itemd/account"
	"github.com/bitmark-inc/itemd/fault"
)

func TestSeedRoundTrip(t *testing.T) {
	for _, test := range []bool{false, true} {
		key, err := account.NewPrivateKey(test)
		require.Nil(t, err, "new key")

		seed := key.Seed()
		recovered, err := account.PrivateKeyFromBase58Seed(seed)
		require.Nil(t, err, "decode seed")

		assert.Equal(t, test, recovered.Test, "network lost")
		assert.True(t, key.Account().Equal(recovered.Account()), "seed gave a different account")
	}
}

func TestSeedErrors(t *testing.T) {
	_, err := account.PrivateKeyFromSeed([]byte{1, 2, 3}, false)
	assert.Equal(t, fault.ErrInvalidSeedLength, err, "short seed accepted")

	_, err = account.PrivateKeyFromBase58Seed("0OIl")
	assert.Equal(t, fault.ErrCannotDecodeSeed, err, "bad base58 accepted")

	key, _ := account.PrivateKeyFromSeed(make([]byte, account.SeedLength), false)
	seed := []byte(key.Seed())
	if '2' == seed[len(seed)-1] {
		seed[len(seed)-1] = '3'
	} else {
		seed[len(seed)-1] = '2'
	}
	_, err = account.PrivateKeyFromBase58Seed(string(seed))
	assert.NotNil(t, err, "corrupted seed accepted")
}

func TestSignature(t *testing.T) {
	key, err := account.PrivateKeyFromSeed([]byte("0123456789abcdef0123456789abcdef"), true)
	require.Nil(t, err, "key from seed")

	message := []byte("Fidget spinner")
	signature := key.Sign(message)

	acc := key.Account()
	assert.Nil(t, acc.CheckSignature(message, signature), "valid signature rejected")
	assert.Equal(t, fault.ErrInvalidSignature, acc.CheckSignature([]byte("Fidget spinners"), signature), "wrong message accepted")
	assert.Equal(t, fault.ErrInvalidSignature, acc.CheckSignature(message, signature[1:]), "short signature accepted")

	other, _ := account.PrivateKeyFromSeed([]byte("fedcba9876543210fedcba9876543210"), true)
	assert.Equal(t, fault.ErrInvalidSignature, other.Account().CheckSignature(message, signature), "other key accepted")

	text, err := signature.MarshalText()
	require.Nil(t, err, "marshal signature")
	var recovered account.Signature
	require.Nil(t, recovered.UnmarshalText(text), "unmarshal signature")
	assert.Equal(t, signature, recovered, "signature changed")
}
