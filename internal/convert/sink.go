package convert

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/orsinium-labs/enum"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/nsqlite/nsqlitego"
	_ "modernc.org/sqlite"
)

// Sink is the destination database of a conversion.
type Sink interface {
	// Replace drops the named table if it exists.
	Replace(ctx context.Context, table string) error
	// Create creates the table with one TEXT column per spec column.
	Create(ctx context.Context, spec TableSpec) error
	// Prepare returns an Inserter for rows of the given table.
	Prepare(ctx context.Context, spec TableSpec) (Inserter, error)
	// Close releases the sink handle.
	Close() error
}

// Inserter inserts rows through a prepared statement.
type Inserter interface {
	Insert(ctx context.Context, values []any) error
	Close() error
}

// TableSpec describes the table a conversion materializes.
type TableSpec struct {
	Name    string
	Columns []string
}

// Driver is the database/sql driver used to open a sink.
type Driver = enum.Member[string]

var (
	// DriverMattn is mattn/go-sqlite3, the cgo SQLite binding.
	DriverMattn = Driver{Value: "sqlite3"}
	// DriverModernc is modernc.org/sqlite, the pure Go SQLite port.
	DriverModernc = Driver{Value: "sqlite"}
	// DriverNSQLite sends the statements to a remote NSQLite server.
	DriverNSQLite = Driver{Value: "nsqlite"}

	// Drivers lists every supported sink driver.
	Drivers = enum.New(DriverMattn, DriverModernc, DriverNSQLite)
)

// ParseDriver returns the driver with the given name. An empty name
// selects DriverMattn.
func ParseDriver(name string) (Driver, error) {
	if name == "" {
		return DriverMattn, nil
	}
	d := Drivers.Parse(name)
	if d == nil {
		return Driver{}, fmt.Errorf(
			"unknown driver %q, valid values are: %s", name, strings.Join(DriverNames(), ", "),
		)
	}
	return *d, nil
}

// DriverNames returns the names of every supported driver.
func DriverNames() []string {
	names := []string{}
	for _, d := range Drivers.Members() {
		names = append(names, d.Value)
	}
	return names
}

// IsRemoteSink reports whether the sink path is an NSQLite connection
// string rather than a database file.
func IsRemoteSink(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// uriPathEscaper escapes the characters SQLite reads as URI syntax in the
// path part of a file: URI.
var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// createDSN returns the data source name for the sink path and driver.
//
// File sinks are opened as file: URIs, so the path is escaped to keep the
// database at exactly the given name.
func createDSN(path string, driver Driver) string {
	switch driver {
	case DriverNSQLite:
		return path
	case DriverModernc:
		qp := url.Values{}
		qp.Add("_pragma", "busy_timeout(5000)")
		qp.Add("_pragma", "synchronous(NORMAL)")
		return fmt.Sprintf("file:%s?%s", uriPathEscaper.Replace(path), qp.Encode())
	}

	qp := url.Values{}
	qp.Add("_busy_timeout", "5000")
	qp.Add("_synchronous", "NORMAL")
	return fmt.Sprintf("file:%s?%s", uriPathEscaper.Replace(path), qp.Encode())
}

// SQLSink is a Sink backed by a database/sql handle.
type SQLSink struct {
	db *sql.DB
}

// NewSQLSink wraps an open database handle. The sink owns the handle and
// closes it on Close.
func NewSQLSink(db *sql.DB) *SQLSink {
	return &SQLSink{db: db}
}

// OpenSink opens the database at path with the given driver. Remote
// connection strings always use DriverNSQLite.
func OpenSink(ctx context.Context, path string, driver Driver) (*SQLSink, error) {
	if driver.Value == "" {
		driver = DriverMattn
	}
	if IsRemoteSink(path) {
		driver = DriverNSQLite
	}

	db, err := sql.Open(driver.Value, createDSN(path, driver))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenSink, err)
	}

	// A single connection keeps drop, create and inserts on the same
	// SQLite handle in order.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpenSink, err)
	}

	return NewSQLSink(db), nil
}

// Replace implements Sink.
func (s *SQLSink) Replace(ctx context.Context, table string) error {
	_, err := s.db.ExecContext(ctx, dropTableSQL(table))
	return err
}

// Create implements Sink.
func (s *SQLSink) Create(ctx context.Context, spec TableSpec) error {
	_, err := s.db.ExecContext(ctx, createTableSQL(spec))
	return err
}

// Prepare implements Sink.
func (s *SQLSink) Prepare(ctx context.Context, spec TableSpec) (Inserter, error) {
	stmt, err := s.db.PrepareContext(ctx, insertSQL(spec))
	if err != nil {
		return nil, err
	}
	return &sqlInserter{stmt: stmt}, nil
}

// Close implements Sink.
func (s *SQLSink) Close() error {
	return s.db.Close()
}

type sqlInserter struct {
	stmt *sql.Stmt
}

func (i *sqlInserter) Insert(ctx context.Context, values []any) error {
	_, err := i.stmt.ExecContext(ctx, values...)
	return err
}

func (i *sqlInserter) Close() error {
	return i.stmt.Close()
}

// quoteIdent quotes an SQLite identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func dropTableSQL(table string) string {
	return "DROP TABLE IF EXISTS " + quoteIdent(table)
}

func createTableSQL(spec TableSpec) string {
	defs := make([]string, len(spec.Columns))
	for i, column := range spec.Columns {
		defs[i] = quoteIdent(column) + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(spec.Name), strings.Join(defs, ", "))
}

func insertSQL(spec TableSpec) string {
	names := make([]string, len(spec.Columns))
	placeholders := make([]string, len(spec.Columns))
	for i, column := range spec.Columns {
		names[i] = quoteIdent(column)
		placeholders[i] = "?"
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(spec.Name), strings.Join(names, ", "), strings.Join(placeholders, ", "),
	)
}
