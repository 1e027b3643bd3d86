package main

import (
	"fmt"
	"os"

	"github.com/theQuarky/tsppc/cmd"
)

func main() {
	args := cmd.ParseArgs(os.Args[1:])

	compiler, err := cmd.NewCompiler(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if !compiler.Run() {
		os.Exit(1)
	}
}
