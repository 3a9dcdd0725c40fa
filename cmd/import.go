package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli"

	"github.com/sigmavirus24/moreos/internal/browser"
	"github.com/sigmavirus24/moreos/pkg/logger"
)

var (
	importDomain  string
	importVerbose bool

	importFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "domain, d",
			Usage:       "domain whose cookies should be imported",
			Destination: &importDomain,
		},
		cli.BoolFlag{
			Name:        "verbose, V",
			Usage:       "log import progress",
			Destination: &importVerbose,
		},
	}
)

func importCookies(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	path := ctx.Args().First()
	if path == "" {
		fmt.Println("moreos: no cookie store path given")
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if importDomain == "" {
		fmt.Println("moreos: --domain is required")
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}

	var lg logger.Logger = logger.Nop{}
	if importVerbose {
		lg = logger.NewStandard(log.New(os.Stderr, "", log.LstdFlags))
	}
	cookies, source, err := browser.Import(nil, path, importDomain, lg)
	if err != nil {
		printRuntimeErr(ctx, "import", "read_store", err)
		return nil
	}
	if len(cookies) == 0 {
		fmt.Printf("moreos: no cookies for %s in %s store %s\n", importDomain, source.Format.Browser(), path)
		return nil
	}
	fmt.Printf("moreos: %d cookie(s) for %s from %s store\n", len(cookies), importDomain, source.Format.Browser())
	for _, c := range cookies {
		fmt.Print(describeCookie(c))
	}
	return nil
}
