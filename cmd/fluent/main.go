package main

import "github.com/goliatone/go-fluent/cmd/fluent/internal/cli"

func main() {
	cli.Execute()
}
