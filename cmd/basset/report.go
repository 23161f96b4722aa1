package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// setupReporting sends command errors to Sentry when SENTRY_DSN is set. The returned func flushes
// pending events and must run before exit.
func setupReporting(stderr io.Writer) func() {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		return func() {}
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: os.Getenv("BASSET_ENV"),
		Release:     "basset@" + version,
	})
	if err != nil {
		fmt.Fprintf(stderr, "basset: error reporting disabled: %v\n", err) //nolint:errcheck // best-effort stderr
		return func() {}
	}
	return func() {
		sentry.Flush(2 * time.Second)
	}
}

// reportError is a no-op until setupReporting initialized a client
func reportError(err error) {
	if err == nil || sentry.CurrentHub().Client() == nil {
		return
	}
	sentry.CaptureException(err)
}
