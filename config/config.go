package config

import (
	"time"

	"github.com/namsral/flag"
)

type Config struct {
	LogLevel string

	// Counting options.
	IslandsOk    bool
	NullBlock    int
	MaxNullCount int
	MaxParseTime time.Duration

	// countserver.
	BindAddr  string
	SecretKey string

	// linkcount batch tool.
	DBPath  string
	Workers int

	// Args holds the positional arguments left after flag parsing.
	Args []string
}

// Load loads the configs from the given arguments
func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("linkcount", flag.ContinueOnError)

	fs.BoolVar(&c.IslandsOk, "islands-ok", false, "allow linkages with disconnected islands")
	fs.IntVar(&c.NullBlock, "null-block", 1, "consecutive unlinked words counting as one null unit (not read: the engine always counts with 1)")
	fs.IntVar(&c.MaxNullCount, "max-null-count", 2, "count linkages at null counts 0..this")
	fs.DurationVar(&c.MaxParseTime, "max-parse-time", 0, "per-sentence time budget, 0 for unlimited")

	fs.StringVar(&c.BindAddr, "bind-addr", ":8181", "countserver listen address")
	fs.StringVar(&c.SecretKey, "secret-key", "", "HMAC secret for JWT auth; empty disables auth")

	fs.StringVar(&c.DBPath, "db-path", "counts.db", "sqlite database for batch results")
	fs.IntVar(&c.Workers, "workers", 4, "parallel sentences in the batch tool")

	fs.StringVar(&c.LogLevel, "log-level", "info", "log level")
	err := fs.Parse(args)
	c.Args = fs.Args()
	return err
}
