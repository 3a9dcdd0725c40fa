package cmd

import (
	"github.com/urfave/cli"
)

const description = `moreos parses, matches and imports HTTP cookies per RFC 6265.

The parse command decodes Set-Cookie and Cookie header values, match
evaluates the domain-match algorithm between a request host and a cookie
domain, and import reads cookies out of Firefox, Chrome and Netscape
cookie stores.`

// Execute builds the CLI application and runs it with the given
// arguments.
func Execute(args []string) error {
	app := cli.App{
		Name:        "moreos",
		HelpName:    "moreos",
		Usage:       "an RFC 6265 cookie toolbox",
		Version:     version,
		UsageText:   "moreos <command> [arguments...]",
		Description: description,
		Commands: []cli.Command{
			{
				Name:                   "parse",
				Aliases:                []string{"p"},
				Usage:                  "parse a Set-Cookie or Cookie header value",
				Action:                 parse,
				Flags:                  parseFlags,
				UseShortOptionHandling: true,
			},
			{
				Name:                   "match",
				Aliases:                []string{"m"},
				Usage:                  "check a cookie domain against a request host",
				Action:                 match,
				Flags:                  matchFlags,
				UseShortOptionHandling: true,
			},
			{
				Name:                   "import",
				Aliases:                []string{"i"},
				Usage:                  "import cookies from a browser cookie store",
				Action:                 importCookies,
				Flags:                  importFlags,
				UseShortOptionHandling: true,
			},
		},
	}
	return app.Run(args)
}
