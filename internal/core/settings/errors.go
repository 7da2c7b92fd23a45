package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// IsBusyError reports whether err is SQLITE_BUSY.
func IsBusyError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_BUSY
	}
	return false
}

// IsCorruptionError reports whether err means the file is not a usable
// database.
func IsCorruptionError(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_NOTADB:
			return true
		}
	}

	msg := err.Error()
	return strings.Contains(msg, "database disk image is malformed") ||
		strings.Contains(msg, "file is not a database")
}

// OpenOrRecover opens the database at path. A corrupt file is moved aside
// to path.corrupt.<timestamp> along with its WAL and SHM files, and a fresh
// database is created in its place. Stored preferences are lost in that
// case; the reader falls back to defaults and asks for the author again.
func OpenOrRecover(path string) (*DB, error) {
	db, err := Open(path)
	if err == nil || !IsCorruptionError(err) {
		return db, err
	}

	backup := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))
	log.Warn().Err(err).Str("backup", backup).Msg("settings database is corrupt, starting fresh")

	if err := os.Rename(path, backup); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("back up corrupt settings: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Rename(path+suffix, backup+suffix); err != nil && !os.IsNotExist(err) {
			if rmErr := os.Remove(path + suffix); rmErr != nil {
				return nil, fmt.Errorf("remove stale %s file: %w", suffix, err)
			}
		}
	}

	return Open(path)
}
