package browser

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sigmavirus24/moreos/pkg/moreos"
)

// parseFirefox reads cookies for domain from a copied Firefox
// cookies.sqlite database. Expired rows are excluded by the query.
func parseFirefox(dbPath, domain string) ([]moreos.Cookie, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?immutable=1", dbPath))
	if err != nil {
		return nil, fmt.Errorf("cannot open Firefox cookie database: %w", err)
	}
	defer db.Close()

	now := time.Now().Unix()
	rows, err := db.Query(`
        SELECT name, value, host, path, expiry, isSecure, isHttpOnly
        FROM moz_cookies
        WHERE (host = ? OR host = ? OR host LIKE ?)
          AND expiry > ?
        ORDER BY path DESC, name ASC
    `, domain, "."+domain, "%."+domain, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query Firefox cookies: %w", err)
	}
	defer rows.Close()

	var cookies []moreos.Cookie
	for rows.Next() {
		var (
			name, value, host, path string
			expiry                  int64
			isSecure, isHTTPOnly    int
		)
		if err := rows.Scan(&name, &value, &host, &path, &expiry, &isSecure, &isHTTPOnly); err != nil {
			return nil, fmt.Errorf("failed to scan Firefox cookie row: %w", err)
		}
		// The SQL clause prefilters; the matching policy decides.
		if !matchesDomain(host, domain) {
			continue
		}
		c, err := rowToCookie(name, value, host, path, time.Unix(expiry, 0), isSecure != 0, isHTTPOnly != 0)
		if err != nil {
			continue
		}
		cookies = append(cookies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate Firefox cookie rows: %w", err)
	}
	return cookies, nil
}
