package browser

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	_ "modernc.org/sqlite"
)

// sqliteMagic is the first 16 bytes of every SQLite database file.
var sqliteMagic = []byte("SQLite format 3\x00")

// netscapeHeaders are the first lines a Netscape cookie file may carry.
var netscapeHeaders = []string{
	"# Netscape HTTP Cookie File",
	"# HTTP Cookie File",
}

// DetectFormat determines the format of the cookie store at path. SQLite
// stores are copied aside so the schema can be inspected without touching
// the browser's live database.
func DetectFormat(fsys afero.Fs, path string) (Format, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("cannot open cookie store: %w", err)
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := f.Read(header)
	if err != nil {
		return FormatUnknown, fmt.Errorf("cannot read cookie store: %w", err)
	}
	if n >= 16 && string(header) == string(sqliteMagic) {
		copiedPath, cleanup, err := safeCopy(fsys, path)
		if err != nil {
			return FormatUnknown, err
		}
		defer cleanup()
		return detectSQLiteSchema(copiedPath)
	}

	// Not SQLite; look for a Netscape header line.
	if _, err := f.Seek(0, 0); err != nil {
		return FormatUnknown, fmt.Errorf("cannot read cookie store: %w", err)
	}
	buf := make([]byte, 512)
	n, _ = f.Read(buf)
	firstLine := string(buf[:n])
	if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
		firstLine = firstLine[:idx]
	}
	firstLine = strings.TrimRight(firstLine, "\r")
	for _, header := range netscapeHeaders {
		if firstLine == header {
			return FormatNetscape, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unsupported cookie store format at %s", path)
}

// detectSQLiteSchema opens the copied database and checks which cookie
// table it carries.
func detectSQLiteSchema(dbPath string) (Format, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return FormatUnknown, fmt.Errorf("cannot open SQLite database: %w", err)
	}
	defer db.Close()

	var tableName string
	if err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name='moz_cookies'`,
	).Scan(&tableName); err == nil {
		return FormatFirefox, nil
	}
	if err := db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name='cookies'`,
	).Scan(&tableName); err == nil {
		return FormatChrome, nil
	}
	return FormatUnknown, fmt.Errorf("unsupported cookie database schema at %s", dbPath)
}
