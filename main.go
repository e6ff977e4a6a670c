package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/logsweep/logsweep/cli"
)

// Version information, set by goreleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	c, err := cli.New()
	if err != nil {
		log.Fatal(err)
	}
	c.SetVersion(version, commit, date)
	if err := c.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
