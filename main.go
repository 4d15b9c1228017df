package main

import (
	"os"

	"github.com/skyscholar/skyscholar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
