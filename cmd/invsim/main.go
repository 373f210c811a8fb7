package main

import "github.com/rpgo/investment-simulator/internal/cli"

func main() {
	cli.Execute()
}
