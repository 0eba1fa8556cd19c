// Copyright 2025 The debugcell Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package goroutine extracts the current goroutine's ID for debug-mode
// ownership pinning.
//
// A cell is pinned to the goroutine that holds its live borrows. Go has no
// capability system that could forbid cross-goroutine sharing statically, so
// debug builds assert it instead: an operation on a cell whose borrows are
// held by another goroutine is a fatal diagnostic rather than a silent data
// race. Release builds never call into this package.
//
// The ID comes from parsing the header line of runtime.Stack output. That
// costs on the order of a microsecond, which is acceptable for a
// debug-configuration check that runs once per cell operation; no
// assembly or runtime-offset tricks are worth that maintenance burden here.
package goroutine
