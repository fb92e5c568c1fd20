package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/safelite/safelite/internal/version"
)

// Config represents the configuration for the safelite CLI.
type Config struct {
	Database string `arg:"positional" help:"Path to the SQLite database, use :memory: for a private in-memory instance" default:":memory:"`
	Seed     int    `arg:"--seed,env:SAFELITE_SEED" help:"Insert this many generated demo rows at startup" default:"0"`
	NoRepl   bool   `arg:"--no-repl,env:SAFELITE_NO_REPL" help:"Run the demo and exit without the interactive prompt" default:"false"`
	Verbose  bool   `arg:"--verbose,env:SAFELITE_VERBOSE" help:"Enable debug logging" default:"false"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.Banner())
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if err := validateDatabase(cfg.Database); err != nil {
		log.Fatal(err)
	}

	if err := validateSeed(cfg.Seed); err != nil {
		log.Fatal(err)
	}

	return cfg
}

// validateDatabase rejects empty and URI-style database names; the
// handle layer opens plain paths and :memory: only.
func validateDatabase(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("database name must not be empty")
	}
	if strings.HasPrefix(name, "file:") {
		return errors.New("URI database names are not supported, use a plain path")
	}
	return nil
}

// validateSeed rejects negative row counts.
func validateSeed(n int) error {
	if n < 0 {
		return fmt.Errorf("seed count must not be negative, got %d", n)
	}
	return nil
}
