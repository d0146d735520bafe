package main

import "github.com/barberoil/fuelpos/internal/cli"

func main() {
	cli.Execute()
}
