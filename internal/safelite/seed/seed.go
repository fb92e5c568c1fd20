// Package seed bulk-inserts generated rows into the demo table through
// a single prepared statement inside one transaction guard.
package seed

import (
	"fmt"
	"io"

	"github.com/safelite/safelite/internal/log"
	"github.com/safelite/safelite/internal/notnull"
	"github.com/safelite/safelite/internal/sqliteh"
	"github.com/schollz/progressbar/v3"
)

// Insert adds n generated rows to the things table, reporting progress
// to w. The whole batch runs inside one transaction: if any insert
// fails, the guard rolls back and the table is left untouched.
func Insert(conn notnull.Value[sqliteh.Conn], n int, w io.Writer, logger log.Logger) error {
	if n <= 0 {
		return nil
	}

	tx, err := sqliteh.Begin(conn)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert, err := sqliteh.Prepare(conn,
		"INSERT INTO things (name, value) VALUES (?, ?);",
	)
	if err != nil {
		return err
	}
	defer insert.Finalize()

	bar := newBar(n, w)
	for i := 0; i < n; i++ {
		if err := insert.BindText(1, fmt.Sprintf("seed-%d", i+1)); err != nil {
			return err
		}
		if err := insert.BindFloat64(2, float64(i+1)/10); err != nil {
			return err
		}
		if err := insert.Run(nil); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	_ = bar.Close()

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.InfoNs(log.NsSeed, "seeded demo rows", log.KV{
		"rows": intWithCommas(n),
		"tx":   tx.ID(),
	})
	return nil
}

func newBar(n int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("seeding"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// intWithCommas returns a string representation of an integer with
// commas, so seeded row counts stay readable.
//
// Example:
//
//	12345 -> "12,345"
func intWithCommas(i int) string {
	if i < 0 {
		return "-" + intWithCommas(-i)
	}
	if i < 1000 {
		return fmt.Sprintf("%d", i)
	}
	return intWithCommas(i/1000) + "," + fmt.Sprintf("%03d", i%1000)
}
