package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/sigmavirus24/moreos/pkg/moreos"
)

var (
	parseHeaderKind string

	parseFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "kind, k",
			Usage:       "header kind to parse: Set-Cookie or Cookie",
			Value:       "Set-Cookie",
			Destination: &parseHeaderKind,
		},
	}
)

func parse(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	args := ctx.Args()
	if len(args) == 0 {
		fmt.Println("moreos: no header value given")
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	header := strings.Join(args, " ")
	cookies, err := moreos.Parse(parseHeaderKind, header)
	if err != nil {
		printRuntimeErr(ctx, "parse", "parse_header", err)
		return nil
	}
	if len(cookies) == 0 {
		fmt.Printf("moreos: no cookies recognized in %q header\n", parseHeaderKind)
		return nil
	}
	for _, c := range cookies {
		fmt.Print(describeCookie(c))
	}
	return nil
}
