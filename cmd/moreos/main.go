package main

import (
	"fmt"
	"os"

	"github.com/sigmavirus24/moreos/cmd"
)

func main() {
	err := cmd.Execute(os.Args)
	if err != nil {
		fmt.Printf("moreos: %s\n", err.Error())
		os.Exit(1)
	}
}
