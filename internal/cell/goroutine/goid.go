// Copyright 2025 The debugcell Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package goroutine

import "runtime"

// ID returns the current goroutine's ID, or 0 if the stack header cannot be
// parsed (which would mean the runtime changed its format).
func ID() int64 {
	// Only the first line is needed: "goroutine 123 [running]:".
	// 64 bytes is more than sufficient; runtime.Stack truncates.
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGID(buf[:n])
}

// parseGID extracts the goroutine ID from stack trace bytes.
//
// Expected format: "goroutine 123 [running]:...". Parsing is done directly
// on the bytes, with no regex and no allocation.
func parseGID(buf []byte) int64 {
	const prefix = "goroutine "

	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}

	var id int64
	for _, c := range buf[len(prefix):] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}
