package repl

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/safelite/safelite/internal/notnull"
	"github.com/safelite/safelite/internal/safelite/styled"
	"github.com/safelite/safelite/internal/sqliteh"
)

// cmdQuery prepares and runs a single SQL statement, rendering its
// rows as a table. Statements without result rows report OK instead.
// Any failure is printed and the prompt keeps going.
func cmdQuery(r *Repl, input string) {
	stmt, err := sqliteh.Prepare(r.conn, input)
	if err != nil {
		r.printError(err)
		return
	}
	defer stmt.Finalize()

	tw := styled.NewTableWriter()
	rowCount := 0

	err = stmt.Run(func(row notnull.Value[sqliteh.Stmt]) (bool, error) {
		s := row.Get()
		cols := s.ColumnCount()

		if rowCount == 0 {
			header := table.Row{}
			for i := 0; i < cols; i++ {
				header = append(header, s.ColumnName(i))
			}
			tw.AppendHeader(header)
		}

		values := table.Row{}
		for i := 0; i < cols; i++ {
			if s.ColumnType(i) == sqliteh.TypeNull {
				values = append(values, styled.DimmedColor().Sprint("NULL"))
				continue
			}
			values = append(values, s.ColumnText(i))
		}
		tw.AppendRow(values)

		rowCount++
		return true, nil
	})
	if err != nil {
		r.printError(err)
		return
	}

	if rowCount == 0 {
		tw.AppendHeader(table.Row{"OK"})
		tw.AppendRow(table.Row{"no rows returned"})
	}

	fmt.Println(tw.Render())
}

func cmdBegin(r *Repl) {
	if r.tx != nil {
		r.printError(fmt.Errorf("transaction %s is already open", r.tx.ID()))
		return
	}

	tx, err := sqliteh.Begin(r.conn)
	if err != nil {
		r.printError(err)
		return
	}

	r.tx = tx
	fmt.Println("Transaction started; .commit to keep changes, .rollback to discard them")
}

func cmdCommit(r *Repl) {
	if r.tx == nil {
		r.printError(fmt.Errorf("no open transaction, use .begin first"))
		return
	}

	if err := r.tx.Commit(); err != nil {
		r.printError(err)
		return
	}

	r.tx = nil
	fmt.Println("Transaction committed")
}

func cmdRollback(r *Repl) {
	if r.tx == nil {
		r.printError(fmt.Errorf("no open transaction, use .begin first"))
		return
	}

	if err := r.tx.Rollback(); err != nil {
		r.printError(err)
		return
	}

	r.tx = nil
	fmt.Println("Transaction rolled back")
}
