package main

import (
	"fmt"
	"os"

	"github.com/stateful/newsletter/internal/cmd"
	"github.com/stateful/newsletter/internal/log"
)

func root() int {
	defer log.Flush()

	root := cmd.Root()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func main() {
	os.Exit(root())
}
