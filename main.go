package main

import "kazari/internal/cli"

func main() {
	cli.Execute()
}
