package browser

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/sigmavirus24/moreos/pkg/logger"
	"github.com/sigmavirus24/moreos/pkg/moreos"
)

// Import reads the cookie store at path and returns the cookies that
// belong to domain, along with metadata about the store. The format is
// detected automatically.
func Import(fsys afero.Fs, path, domain string, lg logger.Logger) ([]moreos.Cookie, *Source, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if lg == nil {
		lg = logger.Nop{}
	}

	format, err := DetectFormat(fsys, path)
	if err != nil {
		return nil, nil, err
	}
	source := &Source{Path: path, Format: format}

	var cookies []moreos.Cookie
	switch format {
	case FormatFirefox, FormatChrome:
		copiedPath, cleanup, err := safeCopy(fsys, path)
		if err != nil {
			return nil, nil, err
		}
		defer cleanup()
		if format == FormatFirefox {
			cookies, err = parseFirefox(copiedPath, domain)
		} else {
			cookies, err = parseChrome(copiedPath, domain)
		}
		if err != nil {
			return nil, nil, err
		}
	case FormatNetscape:
		cookies, err = parseNetscape(fsys, path, domain, lg)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("unsupported cookie store format at %s", path)
	}

	lg.Info("imported %d cookie(s) for %s from %s store", len(cookies), domain, format.Browser())
	return cookies, source, nil
}

// ImportInto imports the store at path and saves the resulting cookies
// into backend. It returns the number of cookies saved.
func ImportInto(backend moreos.Backend, fsys afero.Fs, path, domain string, lg logger.Logger) (int, error) {
	cookies, _, err := Import(fsys, path, domain, lg)
	if err != nil {
		return 0, err
	}
	if len(cookies) == 0 {
		return 0, nil
	}
	if err := backend.Save(cookies); err != nil {
		return 0, err
	}
	return len(cookies), nil
}
