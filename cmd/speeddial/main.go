package main

import (
	"os"

	"github.com/ekisa-team/speeddial/cmd/speeddial/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
