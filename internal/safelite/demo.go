package safelite

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/safelite/safelite/internal/notnull"
	"github.com/safelite/safelite/internal/safelite/styled"
	"github.com/safelite/safelite/internal/sqliteh"
)

const createThingsSQL = `CREATE TABLE IF NOT EXISTS things (
	id INTEGER PRIMARY KEY,
	name TEXT,
	value REAL
);`

const insertThingSQL = "INSERT OR IGNORE INTO things (id, name, value) VALUES (?, ?, ?);"

// Thing is a row of the demo table.
type Thing struct {
	ID    int64
	Name  string
	Value float64
}

// demoThings are the canonical demo rows.
var demoThings = []Thing{
	{ID: 1, Name: "one", Value: 1.1},
	{ID: 2, Name: "two", Value: 2.2},
}

// readThing builds a Thing from a statement positioned on a row of
// SELECT id, name, value.
func readThing(stmt notnull.Value[sqliteh.Stmt]) Thing {
	s := stmt.Get()
	return Thing{
		ID:    s.ColumnInt64(0),
		Name:  s.ColumnText(1),
		Value: s.ColumnFloat64(2),
	}
}

// EnsureThings creates the demo table and inserts the canonical rows
// inside a single committed transaction. Rows already present are left
// alone. If anything fails before the commit, the transaction guard
// rolls everything back.
func EnsureThings(conn notnull.Value[sqliteh.Conn]) error {
	tx, err := sqliteh.Begin(conn)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := sqliteh.Exec(conn, createThingsSQL); err != nil {
		return err
	}

	insert, err := sqliteh.Prepare(conn, insertThingSQL)
	if err != nil {
		return err
	}
	defer insert.Finalize()

	for _, thing := range demoThings {
		if err := insert.BindInt64(1, thing.ID); err != nil {
			return err
		}
		if err := insert.BindText(2, thing.Name); err != nil {
			return err
		}
		if err := insert.BindFloat64(3, thing.Value); err != nil {
			return err
		}
		if err := insert.Run(nil); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SelectThings returns every row of the demo table in key order.
func SelectThings(conn notnull.Value[sqliteh.Conn]) ([]Thing, error) {
	stmt, err := sqliteh.Prepare(conn, "SELECT id, name, value FROM things ORDER BY id;")
	if err != nil {
		return nil, err
	}
	defer stmt.Finalize()

	things := []Thing{}
	err = stmt.Run(func(row notnull.Value[sqliteh.Stmt]) (bool, error) {
		things = append(things, readThing(row))
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return things, nil
}

// DumpThings renders the demo table to w.
func DumpThings(conn notnull.Value[sqliteh.Conn], w io.Writer) error {
	things, err := SelectThings(conn)
	if err != nil {
		return err
	}

	tw := styled.NewTableWriter()
	tw.AppendHeader(table.Row{"id", "name", "value"})
	for _, thing := range things {
		tw.AppendRow(table.Row{thing.ID, thing.Name, thing.Value})
	}

	_, err = fmt.Fprintln(w, tw.Render())
	return err
}
