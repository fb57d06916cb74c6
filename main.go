package main

import "launchpad/internal/cli"

func main() {
	cli.Execute()
}
