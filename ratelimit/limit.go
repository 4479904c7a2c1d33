// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/itemd/fault"
)

// Limit - wait for a single request slot
//
// fails at once if the slot would only be free after the context
// deadline
func Limit(ctx context.Context, limiter *rate.Limiter) error {
	if err := limiter.Wait(ctx); nil != err {
		return fault.ErrRateLimitExceeded
	}
	return nil
}

// New - a limiter allowing perSecond requests with bursts of burst
//
// zero perSecond means unlimited
func New(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
