package main

import "github.com/routegen/csimple/internal/cli"

func main() {
	cli.Execute()
}
