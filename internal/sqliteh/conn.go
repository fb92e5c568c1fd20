package sqliteh

import (
	"errors"

	"github.com/mattn/go-sqlite3"
	"github.com/safelite/safelite/internal/log"
	"github.com/safelite/safelite/internal/notnull"
)

// InMemory is the database name that designates a private in-memory
// instance.
//
// https://www.sqlite.org/inmemorydb.html
const InMemory = ":memory:"

// Conn owns exactly one live SQLite connection. It is created by Open
// and closed exactly once by Close. A Conn must not be copied and must
// not be shared between goroutines without external serialization.
type Conn struct {
	name   string
	raw    *sqlite3.SQLiteConn
	logger log.Logger
}

// Option configures a Conn at open time.
type Option func(*Conn)

// WithLogger sets the logger used by the connection and by transaction
// guards started on it. The default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(conn *Conn) {
		conn.logger = logger
	}
}

// Open opens or creates a database at the given name. The name
// InMemory designates a private in-memory instance. The returned Conn
// owns the connection and must be closed by the caller; statements
// prepared on it must be finalized before the Conn closes.
func Open(name string, options ...Option) (*Conn, error) {
	conn := &Conn{
		name:   name,
		logger: log.Noop(),
	}
	for _, option := range options {
		option(conn)
	}
	if !conn.logger.IsInitialized() {
		conn.logger = log.Noop()
	}

	driverConn, err := (&sqlite3.SQLiteDriver{}).Open(name)
	if err != nil {
		return nil, classify(KindOpen, name, err)
	}

	raw, ok := driverConn.(*sqlite3.SQLiteConn)
	if !ok {
		_ = driverConn.Close()
		return nil, newError(KindOpen, name, errors.New("unexpected driver connection type"))
	}

	conn.raw = raw
	conn.logger.DebugNs(log.NsEngine, "database opened", log.KV{"name": name})
	return conn, nil
}

// Name returns the database name the connection was opened with.
func (conn *Conn) Name() string {
	return conn.name
}

// Handle returns a non-null reference to the connection for use with
// the free functions of this package. It fails once the connection has
// been closed.
func (conn *Conn) Handle() (notnull.Value[Conn], error) {
	if conn == nil || conn.raw == nil {
		return notnull.Value[Conn]{}, newError(KindMisuse, "", errors.New("connection is closed"))
	}
	return notnull.New(conn)
}

// Close closes the connection. It is safe to call more than once; only
// the first call releases the resource.
func (conn *Conn) Close() error {
	if conn.raw == nil {
		return nil
	}

	if err := conn.raw.Close(); err != nil {
		return classify(KindClose, conn.name, err)
	}
	conn.raw = nil

	conn.logger.DebugNs(log.NsEngine, "database closed", log.KV{"name": conn.name})
	return nil
}

// exec runs a SQL script on the raw connection with no result rows
// expected. Used by Exec and by the transaction guard.
func (conn *Conn) exec(sql string) error {
	if conn.raw == nil {
		return newError(KindMisuse, sql, errors.New("connection is closed"))
	}
	if _, err := conn.raw.Exec(sql, nil); err != nil {
		return classify(KindExec, sql, err)
	}
	return nil
}

// Exec runs a SQL string with no result rows expected, such as DDL or
// bulk inserts. The string may contain multiple statements.
func Exec(conn notnull.Value[Conn], sql string) error {
	return conn.Get().exec(sql)
}

// Prepare compiles SQL text into a reusable statement. The returned
// Stmt is owned exclusively by the caller and must be finalized before
// its connection closes.
func Prepare(conn notnull.Value[Conn], sql string) (*Stmt, error) {
	c := conn.Get()
	if c.raw == nil {
		return nil, newError(KindMisuse, sql, errors.New("connection is closed"))
	}

	driverStmt, err := c.raw.Prepare(sql)
	if err != nil {
		return nil, classify(KindPrepare, sql, err)
	}

	raw, ok := driverStmt.(*sqlite3.SQLiteStmt)
	if !ok {
		_ = driverStmt.Close()
		return nil, newError(KindPrepare, sql, errors.New("unexpected driver statement type"))
	}

	numInput := raw.NumInput()
	return &Stmt{
		conn:     c,
		raw:      raw,
		sql:      sql,
		numInput: numInput,
		params:   make([]driverValue, numInput),
	}, nil
}
