// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:generate mockgen -destination=transport.go -package=mocks github.com/bitmark-inc/itemd/transport Transport
//go:generate mockgen -destination=notary.go -package=mocks github.com/bitmark-inc/itemd/notary Authority
//go:generate mockgen -destination=vault.go -package=mocks github.com/bitmark-inc/itemd/vault Vault

package mocks
