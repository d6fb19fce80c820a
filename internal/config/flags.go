package config

import (
	"flag"
	"os"

	"github.com/sozarusac/callaudio/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   public base URL for download links
//	-s int      internal listing page size
//
// The function first filters os.Args to only the flags it recognizes
// using flagx.FilterArgs, avoiding collisions with the CLI verbs and
// their own flag sets.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-s"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	fs.StringVar(&config.BaseURL, "b", config.BaseURL, "public base URL for download links")
	fs.IntVar(&config.ListPageSize, "s", config.ListPageSize, "internal listing page size")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
