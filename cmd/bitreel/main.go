package main

import (
	"fmt"
	"os"

	"github.com/mmcdole/bitreel/cmd/bitreel/commands"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	if err := commands.Execute(Version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
