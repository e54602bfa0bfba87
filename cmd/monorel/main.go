package main

import "monorel/internal/cli"

func main() {
	cli.Execute()
}
