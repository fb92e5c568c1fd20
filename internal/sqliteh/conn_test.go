package sqliteh

import (
	"path/filepath"
	"testing"

	"github.com/safelite/safelite/internal/notnull"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestConn(t *testing.T) (*Conn, notnull.Value[Conn]) {
	t.Helper()

	conn, err := Open(InMemory)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})

	handle, err := conn.Handle()
	require.NoError(t, err)
	return conn, handle
}

func TestOpen(t *testing.T) {
	t.Run("InMemory", func(t *testing.T) {
		conn, err := Open(InMemory)
		require.NoError(t, err)
		assert.Equal(t, InMemory, conn.Name())
		assert.NoError(t, conn.Close())
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.db")
		conn, err := Open(path)
		require.NoError(t, err)
		assert.NoError(t, conn.Close())
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "does", "not", "exist", "test.db")
		_, err := Open(path)
		require.Error(t, err)

		var hErr *Error
		require.ErrorAs(t, err, &hErr)
		assert.Equal(t, KindOpen, hErr.Kind)
		assert.Contains(t, hErr.Error(), path)
	})
}

func TestClose(t *testing.T) {
	t.Run("Idempotent", func(t *testing.T) {
		conn, err := Open(InMemory)
		require.NoError(t, err)
		assert.NoError(t, conn.Close())
		assert.NoError(t, conn.Close())
	})

	t.Run("HandleAfterClose", func(t *testing.T) {
		conn, err := Open(InMemory)
		require.NoError(t, err)
		require.NoError(t, conn.Close())

		_, err = conn.Handle()
		var hErr *Error
		require.ErrorAs(t, err, &hErr)
		assert.Equal(t, KindMisuse, hErr.Kind)
	})

	t.Run("ExecAfterClose", func(t *testing.T) {
		conn, err := Open(InMemory)
		require.NoError(t, err)
		handle, err := conn.Handle()
		require.NoError(t, err)
		require.NoError(t, conn.Close())

		err = Exec(handle, "SELECT 1")
		var hErr *Error
		require.ErrorAs(t, err, &hErr)
		assert.Equal(t, KindMisuse, hErr.Kind)
	})
}

func TestExec(t *testing.T) {
	t.Run("DDLAndQuery", func(t *testing.T) {
		_, handle := openTestConn(t)

		err := Exec(handle, `
			CREATE TABLE pets (id INTEGER PRIMARY KEY, name TEXT);
			INSERT INTO pets VALUES (1, 'rex');
			INSERT INTO pets VALUES (2, 'mia');
		`)
		require.NoError(t, err)

		stmt, err := Prepare(handle, "SELECT name FROM pets ORDER BY id")
		require.NoError(t, err)
		defer stmt.Finalize()

		names := []string{}
		err = stmt.Run(func(row notnull.Value[Stmt]) (bool, error) {
			names = append(names, row.Get().ColumnText(0))
			return true, nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"rex", "mia"}, names)
	})

	t.Run("BadSQL", func(t *testing.T) {
		_, handle := openTestConn(t)

		err := Exec(handle, "NOT A STATEMENT")
		require.Error(t, err)

		var hErr *Error
		require.ErrorAs(t, err, &hErr)
		assert.Equal(t, KindExec, hErr.Kind)
		assert.Contains(t, hErr.Error(), "NOT A STATEMENT")
	})
}

func TestPrepare(t *testing.T) {
	t.Run("BadSQL", func(t *testing.T) {
		_, handle := openTestConn(t)

		_, err := Prepare(handle, "SELEKT 1")
		require.Error(t, err)

		var hErr *Error
		require.ErrorAs(t, err, &hErr)
		assert.Equal(t, KindPrepare, hErr.Kind)
		assert.Contains(t, hErr.Error(), "SELEKT 1")
	})

	t.Run("FinalizeIdempotent", func(t *testing.T) {
		_, handle := openTestConn(t)

		stmt, err := Prepare(handle, "SELECT 1")
		require.NoError(t, err)
		assert.NoError(t, stmt.Finalize())
		assert.NoError(t, stmt.Finalize())
	})

	t.Run("RunAfterFinalize", func(t *testing.T) {
		_, handle := openTestConn(t)

		stmt, err := Prepare(handle, "SELECT 1")
		require.NoError(t, err)
		require.NoError(t, stmt.Finalize())

		err = stmt.Run(nil)
		var hErr *Error
		require.ErrorAs(t, err, &hErr)
		assert.Equal(t, KindMisuse, hErr.Kind)
	})
}
