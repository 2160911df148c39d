package main

import "github.com/abelzeko/dino-velocity/internal/cli"

func main() {
	cli.Execute()
}
