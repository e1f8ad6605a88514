package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"
)

// PanicDir is where RecoverPanic writes panic reports. Empty means the
// current directory.
var PanicDir string

func getCaller() string {
	var caller string
	if _, file, line, ok := runtime.Caller(2); ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	} else {
		caller = "unknown"
	}
	return caller
}

func Info(msg string, args ...any) {
	source := getCaller()
	slog.Info(msg, append([]any{"source", source}, args...)...)
}

func Debug(msg string, args ...any) {
	source := getCaller()
	slog.Debug(msg, append([]any{"source", source}, args...)...)
}

func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

// RecoverPanic is a common function to handle panics gracefully.
// It logs the error, writes a panic report file with the stack trace,
// and executes an optional cleanup function before returning.
func RecoverPanic(name string, cleanup func()) {
	if r := recover(); r != nil {
		Error(fmt.Sprintf("Panic in %s: %v", name, r))

		timestamp := time.Now().Format("20060102-150405")
		filename := filepath.Join(PanicDir, fmt.Sprintf("infdir-panic-%s-%s.log", name, timestamp))

		file, err := os.Create(filename)
		if err != nil {
			Error(fmt.Sprintf("Failed to create panic log: %v", err))
		} else {
			defer file.Close()

			fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
			fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
			fmt.Fprintf(file, "Stack Trace:\n%s\n", debug.Stack())

			Info(fmt.Sprintf("Panic details written to %s", filename))
		}

		if cleanup != nil {
			cleanup()
		}
	}
}
