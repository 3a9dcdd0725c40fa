package browser

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sigmavirus24/moreos/pkg/moreos"
)

// chromeEpochOffsetSeconds separates the Windows NT epoch (1601-01-01)
// Chrome timestamps count from and the Unix epoch.
const chromeEpochOffsetSeconds int64 = 11_644_473_600

// chromeToUnix converts microseconds since 1601-01-01 to a Unix second
// count.
func chromeToUnix(chromeUSec int64) int64 {
	return (chromeUSec / 1_000_000) - chromeEpochOffsetSeconds
}

// parseChrome reads cookies for domain from a copied Chrome Cookies
// database. Encrypted rows (empty value column) are skipped; only
// unexpired rows are returned.
func parseChrome(dbPath, domain string) ([]moreos.Cookie, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?immutable=1", dbPath))
	if err != nil {
		return nil, fmt.Errorf("cannot open Chrome cookie database: %w", err)
	}
	defer db.Close()

	nowChrome := (time.Now().Unix() + chromeEpochOffsetSeconds) * 1_000_000
	rows, err := db.Query(`
        SELECT name, value, host_key, path, expires_utc, is_secure, is_httponly
        FROM cookies
        WHERE (host_key = ? OR host_key = ? OR host_key LIKE ?)
          AND value != ''
          AND expires_utc > ?
        ORDER BY path DESC, name ASC
    `, domain, "."+domain, "%."+domain, nowChrome)
	if err != nil {
		return nil, fmt.Errorf("failed to query Chrome cookies: %w", err)
	}
	defer rows.Close()

	var cookies []moreos.Cookie
	for rows.Next() {
		var (
			name, value, hostKey, path string
			expiresUTC                 int64
			isSecure, isHTTPOnly       int
		)
		if err := rows.Scan(&name, &value, &hostKey, &path, &expiresUTC, &isSecure, &isHTTPOnly); err != nil {
			return nil, fmt.Errorf("failed to scan Chrome cookie row: %w", err)
		}
		// The SQL clause prefilters; the matching policy decides.
		if !matchesDomain(hostKey, domain) {
			continue
		}
		c, err := rowToCookie(name, value, hostKey, path, time.Unix(chromeToUnix(expiresUTC), 0), isSecure != 0, isHTTPOnly != 0)
		if err != nil {
			continue
		}
		cookies = append(cookies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate Chrome cookie rows: %w", err)
	}
	return cookies, nil
}
