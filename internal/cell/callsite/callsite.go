// Package callsite captures the source location at which a borrow is taken.
//
// Every live borrow in a debug build carries a Site describing its creation
// point: function, file, and line. Sites are resolved eagerly (one call to
// runtime.CallersFrames at capture time) because a borrow ledger holds few
// entries and violation reporting needs resolved frames anyway.
//
// Frames belonging to the debugcell module itself are skipped during capture
// so the recorded site is always the user's call, regardless of how many
// wrapper frames (Borrow, TryBorrow, Replace, ...) sit in between. This also
// makes capture robust against inlining of those wrappers.
package callsite

import (
	"fmt"
	"runtime"
	"strings"
)

// maxFrames bounds the walk up the stack while looking for the first user
// frame. The facade adds at most three module frames above the user's call,
// so eight leaves generous headroom.
const maxFrames = 8

// modulePrefix identifies this module's own frames so they can be skipped.
const modulePrefix = "github.com/kolkov/debugcell/"

// Site is a resolved borrow-creation location.
//
// The zero Site means "no location recorded" (release builds, or a stack
// walk that found no user frame) and formats as "<unknown>".
type Site struct {
	// PC is the program counter of the captured frame.
	PC uintptr

	// Function is the fully qualified function name, e.g. "main.main".
	Function string

	// File is the full path of the source file.
	File string

	// Line is the line number within File.
	Line int
}

// Capture records the call site of the first frame outside this module.
//
// skip counts frames to drop before the walk starts, exactly as for
// runtime.Callers: 0 would identify Capture itself, 1 its caller, and so on.
// Callers inside the module do not need to count their own wrapper frames
// precisely; module frames are filtered out regardless.
//
// Returns the zero Site when no user frame is found within maxFrames.
func Capture(skip int) Site {
	var pcs [maxFrames]uintptr
	// +2 skips runtime.Callers and Capture itself.
	n := runtime.Callers(skip+2, pcs[:])
	if n == 0 {
		return Site{}
	}

	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.PC == 0 {
			break
		}
		if !internalFrame(frame.Function) {
			return Site{
				PC:       frame.PC,
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			}
		}
		if !more {
			break
		}
	}

	// Only module or runtime frames on the stack. Happens when a borrow is
	// taken directly from a test inside this module's internal packages.
	return Site{}
}

// internalFrame reports whether a function name belongs to frames that must
// never be reported as a borrow site: the Go runtime and this module's own
// wrappers (the cell facade and the internal borrow machinery).
//
// Test functions compiled into the module's packages are still user frames:
// they live in "<pkg>_test" packages or carry a ".Test"/".Benchmark" symbol,
// and are matched explicitly below.
func internalFrame(fn string) bool {
	if strings.HasPrefix(fn, "runtime.") {
		return true
	}
	if !strings.HasPrefix(fn, modulePrefix) {
		return false
	}
	rest := fn[len(modulePrefix):]
	// External test packages ("cell_test.TestX") are user code.
	if strings.Contains(rest, "_test.") {
		return false
	}
	// In-package tests and their helpers are user code too.
	if strings.Contains(rest, ".Test") || strings.Contains(rest, ".Benchmark") || strings.Contains(rest, ".Example") {
		return false
	}
	return true
}

// IsZero reports whether the site carries no location information.
func (s Site) IsZero() bool {
	return s == Site{}
}

// String formats the site as "file.go:42 pkg.Func()".
//
// The format mirrors the per-frame lines of Go's race detector reports: the
// location first (it is what people grep for), then the function.
func (s Site) String() string {
	if s.IsZero() {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d %s()", s.File, s.Line, s.Function)
}
