package main

import (
	"os"

	"github.com/spf13/afero"

	"socialhub/internal/config"
)

func main() {
	config.LoadDotEnv()
	if err := newRootCommand(afero.NewOsFs()).Execute(); err != nil {
		os.Exit(1)
	}
}
