package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/droverhq/drover/internal/config"
)

//go:embed etc/drover.yaml
var embeddedConfig []byte

func main() {
	// Load .env if present; missing files are fine.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to the embedded defaults
// when no path is given.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.LoadFromBytes(embeddedConfig)
	}
	return config.LoadFile(path)
}
