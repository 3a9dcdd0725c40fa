package browser

import (
	"fmt"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/sigmavirus24/moreos/pkg/logger"
	"github.com/sigmavirus24/moreos/pkg/moreos"
)

func TestImport_NetscapeStore(t *testing.T) {
	fsys := afero.NewMemMapFs()
	future := time.Now().Add(24 * time.Hour).Unix()
	path := writeNetscapeFile(t, fsys, fmt.Sprintf("# Netscape HTTP Cookie File\n.example.com\tTRUE\t/\tTRUE\t%d\tsid\tabc123\n", future))

	cookies, source, err := Import(fsys, path, "example.com", logger.Nop{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.Format != FormatNetscape || source.Path != path {
		t.Errorf("unexpected source: %+v", source)
	}
	if len(cookies) != 1 || cookies[0].Name() != "sid" {
		t.Fatalf("expected the sid cookie, got %v", cookies)
	}
}

func TestImport_FirefoxStore(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Unix()
	dbPath := createFirefoxDB(t, [][]any{
		{"sid", "abc123", ".example.com", "/", future, 0, 0},
	})

	cookies, source, err := Import(afero.NewOsFs(), dbPath, "example.com", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.Format != FormatFirefox {
		t.Errorf("expected Firefox format, got %s", source.Format.Browser())
	}
	if len(cookies) != 1 || cookies[0].Name() != "sid" {
		t.Fatalf("expected the sid cookie, got %v", cookies)
	}
}

func TestImport_UnknownStore(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeNetscapeFile(t, fsys, "garbage\n")

	if _, _, err := Import(fsys, path, "example.com", logger.Nop{}); err == nil {
		t.Fatal("expected an error for an unrecognized store")
	}
}

func TestImportInto_SavesCookies(t *testing.T) {
	fsys := afero.NewMemMapFs()
	future := time.Now().Add(24 * time.Hour).Unix()
	path := writeNetscapeFile(t, fsys, fmt.Sprintf("# Netscape HTTP Cookie File\n.example.com\tTRUE\t/\tFALSE\t%d\tsid\tabc123\n.example.com\tTRUE\t/\tFALSE\t%d\tlang\ten\n", future, future))

	backend := moreos.NewInMemory()
	n, err := ImportInto(backend, fsys, path, "example.com", logger.Nop{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 cookies saved, got %d", n)
	}

	stored, err := backend.List(moreos.Filter{Domain: ".example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 cookies in storage, got %d", len(stored))
	}
}

func TestImportInto_EmptyStore(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := writeNetscapeFile(t, fsys, "# Netscape HTTP Cookie File\n")

	backend := moreos.NewInMemory()
	n, err := ImportInto(backend, fsys, path, "example.com", logger.Nop{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 cookies saved, got %d", n)
	}
}
