// Package timeouts defines shared timeout constants used by boxsync commands
// and storage backends.
package timeouts

import "time"

// TelemetryShutdown caps how long a command waits for pending spans to flush.
const TelemetryShutdown = 5 * time.Second

// SQLiteBusy is how long SQLite waits on a locked database before failing a
// statement. Installer runs serialize on the write lock, so this bounds the
// wait for a concurrent run to finish its transaction.
const SQLiteBusy = 5 * time.Second

// DBPing limits the connectivity check performed when a store is opened.
const DBPing = 5 * time.Second
