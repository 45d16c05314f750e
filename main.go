package main

import "refo/internal/cli"

func main() {
	cli.Execute()
}
