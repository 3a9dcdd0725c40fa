package browser

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/sigmavirus24/moreos/pkg/logger"
	"github.com/sigmavirus24/moreos/pkg/moreos"
)

// parseNetscape reads cookies for domain from a Netscape-format text
// file. Comment lines are skipped, except the #HttpOnly_ prefix which
// marks a cookie line as HttpOnly. Malformed lines are skipped with a
// warning.
func parseNetscape(fsys afero.Fs, path, domain string, lg logger.Logger) ([]moreos.Cookie, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open Netscape cookie file: %w", err)
	}
	defer f.Close()

	now := time.Now()
	var cookies []moreos.Cookie

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		httpOnly := false
		if strings.HasPrefix(line, "#HttpOnly_") {
			httpOnly = true
			line = line[len("#HttpOnly_"):]
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			lg.Warning("skipping malformed Netscape cookie line: %q", line)
			continue
		}

		cookieDomain := fields[0]
		// fields[1] is the subdomain flag, redundant with the
		// domain's leading dot.
		cookiePath := fields[2]
		secure := strings.EqualFold(fields[3], "TRUE")
		expiry, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			lg.Warning("skipping cookie %q with invalid expiry: %q", fields[5], fields[4])
			continue
		}
		name := fields[5]
		value := fields[6]

		if !matchesDomain(cookieDomain, domain) {
			continue
		}
		// expiry > 0 means an explicit expiry; 0 marks a session
		// cookie.
		if expiry > 0 && time.Unix(expiry, 0).Before(now) {
			continue
		}

		var expiresAt time.Time
		if expiry > 0 {
			expiresAt = time.Unix(expiry, 0)
		}
		c, err := rowToCookie(name, value, cookieDomain, cookiePath, expiresAt, secure, httpOnly)
		if err != nil {
			lg.Warning("skipping unusable cookie line: %v", err)
			continue
		}
		cookies = append(cookies, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read Netscape cookie file: %w", err)
	}
	return cookies, nil
}
