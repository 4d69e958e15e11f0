package main

import "github.com/rustyeddy/candles/internal/cli"

func main() {
	cli.Execute()
}
