// Package safelite wires the guarded handle layer into the CLI: it
// opens the database, seeds and dumps the demo table, and hands the
// prompt over to the REPL.
package safelite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/safelite/safelite/internal/log"
	"github.com/safelite/safelite/internal/safelite/config"
	"github.com/safelite/safelite/internal/safelite/repl"
	"github.com/safelite/safelite/internal/safelite/seed"
	"github.com/safelite/safelite/internal/sqliteh"
	"github.com/safelite/safelite/internal/version"
)

// Run runs the safelite CLI.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := slog.LevelInfo
	if conf.Verbose {
		level = slog.LevelDebug
	}
	logger := log.NewLoggerWithLevel(os.Stderr, level)

	fmt.Println(version.Banner())

	conn, err := sqliteh.Open(conf.Database, sqliteh.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.ErrorNs(log.NsEngine, "error closing database", log.KV{"error": err.Error()})
		}
	}()

	handle, err := conn.Handle()
	if err != nil {
		return err
	}

	if err := EnsureThings(handle); err != nil {
		return fmt.Errorf("error preparing demo table: %w", err)
	}

	if conf.Seed > 0 {
		if err := seed.Insert(handle, conf.Seed, os.Stderr, logger); err != nil {
			return fmt.Errorf("error seeding demo rows: %w", err)
		}
	}

	if err := DumpThings(handle, os.Stdout); err != nil {
		return fmt.Errorf("error dumping demo table: %w", err)
	}

	if conf.NoRepl {
		return nil
	}

	rp := repl.NewRepl(ctx, stop, handle)
	defer rp.Shutdown()
	go func() {
		if err := rp.Start(); err != nil {
			fmt.Println(err)
			stop()
		}
	}()

	<-ctx.Done()
	fmt.Printf("\nGoodbye!\n\n")
	return nil
}
