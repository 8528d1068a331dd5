package main

import "github.com/mcoot/raidroster/internal/cli"

func main() {
	cli.Execute()
}
