package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/sigmavirus24/moreos/pkg/moreos"
)

var (
	matchRelaxEquality     bool
	matchAllowIP           bool
	matchAllowPublicSuffix bool

	matchFlags = []cli.Flag{
		cli.BoolFlag{
			Name:        "relax-equality, r",
			Usage:       "also accept suffix matches like www.example.com against .example.com",
			Destination: &matchRelaxEquality,
		},
		cli.BoolFlag{
			Name:        "allow-ip, i",
			Usage:       "allow IP address literals as hosts and cookie domains",
			Destination: &matchAllowIP,
		},
		cli.BoolFlag{
			Name:        "allow-public-suffix, p",
			Usage:       "allow cookie domains that name a registry suffix like com or co.uk",
			Destination: &matchAllowPublicSuffix,
		},
	}
)

func match(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	args := ctx.Args()
	if len(args) != 2 {
		fmt.Println("moreos: expected exactly two arguments: <request-host> <cookie-domain>")
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	policy := moreos.DomainPolicy{
		Matching: matchingFromFlags(matchRelaxEquality, matchAllowIP, matchAllowPublicSuffix),
	}
	host, domain := args[0], args[1]
	if policy.Match(host, domain) {
		fmt.Printf("moreos: %s matches %s\n", domain, host)
	} else {
		fmt.Printf("moreos: %s does not match %s\n", domain, host)
	}
	return nil
}
