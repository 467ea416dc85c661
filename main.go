package main

import (
	"os"

	"github.com/weblearn/weblearn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
