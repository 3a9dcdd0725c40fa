package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli"

	"github.com/sigmavirus24/moreos/pkg/moreos"
)

// printRuntimeErr formats and prints a runtime error to stdout. Command
// actions report failures this way and return nil so the cli framework
// does not print the error a second time.
func printRuntimeErr(ctx *cli.Context, cmd, action string, err error) {
	if err == nil {
		fmt.Println("err is nil", "[", cmd, "|", action, "]")
		return
	}
	var name string
	if ctx != nil {
		name = ctx.App.HelpName
	} else {
		name = os.Args[0]
	}
	fmt.Printf("%s: %s[%s]: %s\n", name, cmd, action, err.Error())
}

// describeCookie renders one cookie as an indented multi-line block for
// terminal output. Values are shown verbatim; callers decide whether the
// output medium is safe for them.
func describeCookie(c moreos.Cookie) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %s\n", c.Name(), c.Value())
	if c.Domain() != "" {
		fmt.Fprintf(&b, "    domain:    %s\n", c.Domain())
	}
	if c.Path() != "" {
		fmt.Fprintf(&b, "    path:      %s\n", c.Path())
	}
	if !c.Expires().IsZero() {
		fmt.Fprintf(&b, "    expires:   %s\n", c.Expires().UTC().Format("2006-01-02 15:04:05 MST"))
	}
	if maxAge, ok := c.MaxAge(); ok {
		fmt.Fprintf(&b, "    max-age:   %s\n", maxAge)
	}
	if c.SameSite() != moreos.SameSiteUnset {
		fmt.Fprintf(&b, "    samesite:  %s\n", c.SameSite())
	}
	if c.Secure() {
		b.WriteString("    secure\n")
	}
	if c.HTTPOnly() {
		b.WriteString("    httponly\n")
	}
	ext := c.Extensions()
	if len(ext) > 0 {
		keys := make([]string, 0, len(ext))
		for k := range ext {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "    ext:       %s=%s\n", k, ext[k])
		}
	}
	return b.String()
}

// matchingFromFlags converts the relax-* boolean flags into a flag set,
// starting from the default of all restrictions enabled.
func matchingFromFlags(relaxEquality, allowIP, allowPublicSuffix bool) moreos.DomainMatching {
	m := moreos.StrictEquality | moreos.RejectIPAddress | moreos.RejectWellKnownPublicSuffix
	if relaxEquality {
		m &^= moreos.StrictEquality
	}
	if allowIP {
		m &^= moreos.RejectIPAddress
	}
	if allowPublicSuffix {
		m &^= moreos.RejectWellKnownPublicSuffix
	}
	return m
}
