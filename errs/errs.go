// Package errs provides the logging-and-error helpers the rest of the
// module uses in place of ad hoc error checks, so a failed persistence
// load or save is recorded with caller context instead of silently
// discarded.
package errs

import (
	"log/slog"
	"runtime"
	"strconv"
)

// Log logs a non-nil error with caller info and returns it unchanged.
// The intended usage is:
//
//	errs.Log(manager.Save(m, path))
func Log(err error) error {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return err
}

// Log1 logs err with caller info if it is non-nil and returns v as given
// either way. The intended usage is:
//
//	m := errs.Log1(manager.Load(path))
func Log1[T any](v T, err error) T {
	if err != nil {
		slog.Error(err.Error() + " | " + CallerInfo())
	}
	return v
}

// Must panics if err is non-nil.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 returns v if err is nil; otherwise panics.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// CallerInfo returns the function name and file:line of the function that
// called the Log/Log1 helper above it.
func CallerInfo() string {
	pc, file, line, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name() + " " + file + ":" + strconv.Itoa(line)
}
