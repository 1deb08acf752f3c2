// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package httpclient wraps net/http with an explicit retry policy.
//
// A Policy bounds the number of attempts, the exponential backoff between
// them, and the timeout of each attempt. Statuses in Policy.RetryStatuses
// and transport errors are retried; a numeric Retry-After header overrides
// the computed backoff. Cancelling the caller's context stops any wait.
// When every attempt fails the error wraps ErrRetriesExhausted.
package httpclient
