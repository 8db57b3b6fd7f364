package main

import "github.com/mvp-joe/treescope/internal/cli"

func main() {
	cli.Execute()
}
