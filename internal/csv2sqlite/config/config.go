package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ATechAdventurer/csv2sqlite/internal/convert"
	"github.com/ATechAdventurer/csv2sqlite/internal/version"
	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
)

// Config represents the configuration for csv2sqlite.
type Config struct {
	Source      string `arg:"positional" help:"CSV file to import"`
	Database    string `arg:"positional" help:"SQLite database file (.db, .sqlite, .sqlite3, .db3) or NSQLite connection string in format http(s)://host:port?authToken=value"`
	Table       string `arg:"-t,--table,env:CSV2SQLITE_TABLE" help:"Name of the table to create, it is replaced if it already exists"`
	NoHeader    bool   `arg:"--no-header,env:CSV2SQLITE_NO_HEADER" help:"Treat the first line as data and name the columns column_1..column_N" default:"false"`
	Strict      bool   `arg:"--strict,env:CSV2SQLITE_STRICT" help:"Fail when a line has a different number of fields than the first one" default:"false"`
	Delimiter   string `arg:"-d,--delimiter,env:CSV2SQLITE_DELIMITER" help:"Field delimiter of the CSV file" default:","`
	Driver      string `arg:"--driver,env:CSV2SQLITE_DRIVER" help:"SQLite driver for database files (sqlite3, sqlite)" default:"sqlite3"`
	Interactive bool   `arg:"-i,--interactive" help:"Ask for every setting even if given as argument" default:"false"`
	Verbose     bool   `arg:"-v,--verbose,env:CSV2SQLITE_VERBOSE" help:"Log debug information to stderr" default:"false"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.CLIVersion())
}

func (Config) Description() string {
	return "Import a CSV file into a table of an SQLite database. Missing arguments are asked interactively."
}

// MustParse loads the optional .env file, then parses and validates the
// configuration from the command line arguments. It returns a Config
// struct or exits the program with an error.
//
// Empty source, database or table values are accepted, the caller is
// expected to ask for them (see NeedsPrompt).
func MustParse(args []string) Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatal(err)
	}

	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{Program: "csv2sqlite"},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if err := cfg.Validate(); err != nil {
		parser.Fail(err.Error())
	}

	return cfg
}

// Validate checks every setting that has a value.
func (c Config) Validate() error {
	if c.Source != "" {
		if err := ValidateSourcePath(c.Source); err != nil {
			return err
		}
	}
	if c.Database != "" {
		if err := ValidateSinkPath(c.Database); err != nil {
			return err
		}
	}
	if c.Table != "" {
		if err := ValidateTableName(c.Table); err != nil {
			return err
		}
	}
	if err := ValidateDelimiter(c.Delimiter); err != nil {
		return err
	}
	return ValidateDriver(c.Driver)
}

// NeedsPrompt reports whether the interactive flow has to run.
func (c Config) NeedsPrompt() bool {
	return c.Interactive || c.Source == "" || c.Database == "" || c.Table == ""
}

// Request returns the conversion request described by the config.
func (c Config) Request() convert.Request {
	return convert.Request{
		SourcePath: c.Source,
		SinkPath:   c.Database,
		TableName:  c.Table,
		HasHeader:  !c.NoHeader,
	}
}

// Options returns the conversion options described by the config. The
// config must be valid.
func (c Config) Options() convert.Options {
	driver, _ := convert.ParseDriver(c.Driver)
	delimiter, _ := utf8.DecodeRuneInString(c.Delimiter)
	if c.Delimiter == "" {
		delimiter = ','
	}

	return convert.Options{
		Strict:    c.Strict,
		Delimiter: delimiter,
		Driver:    driver,
	}
}

var (
	tableNameRegex      = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	sourceExtensions    = []string{".csv"}
	databaseExtensions  = []string{".db", ".sqlite", ".sqlite3", ".db3"}
	fileDrivers         = []string{convert.DriverMattn.Value, convert.DriverModernc.Value}
	forbiddenDelimiters = "\"\r\n\uFFFD"
)

// ValidateSourcePath validates that path names an existing CSV file.
func ValidateSourcePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("source file is required")
	}
	if !hasExtension(path, sourceExtensions) {
		return fmt.Errorf("source file must have a %s extension", strings.Join(sourceExtensions, ", "))
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("source file %s does not exist", path)
		}
		return fmt.Errorf("source file %s is not readable: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("source file %s is not a regular file", path)
	}

	return nil
}

// ValidateSinkPath validates that path is a database file name or an
// NSQLite connection string.
func ValidateSinkPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("database is required")
	}
	if convert.IsRemoteSink(path) {
		if _, err := parseConnectionString(path); err != nil {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		return nil
	}
	if !hasExtension(path, databaseExtensions) {
		return fmt.Errorf(
			"database file must have one of the extensions: %s",
			strings.Join(databaseExtensions, ", "),
		)
	}
	return nil
}

// ValidateTableName validates that name only contains letters, digits
// and underscores.
func ValidateTableName(name string) error {
	if !tableNameRegex.MatchString(name) {
		return errors.New("invalid table name, only letters, digits and underscores are allowed")
	}
	return nil
}

// ValidateDelimiter validates that delimiter is a single usable rune.
func ValidateDelimiter(delimiter string) error {
	if utf8.RuneCountInString(delimiter) != 1 {
		return errors.New("invalid delimiter, must be exactly one character")
	}
	if strings.ContainsAny(delimiter, forbiddenDelimiters) {
		return errors.New("invalid delimiter, quotes and line breaks are not allowed")
	}
	return nil
}

// ValidateDriver validates that driver is one of the file drivers.
func ValidateDriver(driver string) error {
	for _, d := range fileDrivers {
		if driver == d {
			return nil
		}
	}

	return fmt.Errorf(
		"invalid driver, valid values are: %s",
		strings.Join(fileDrivers, ", "),
	)
}

// DefaultDatabasePath returns the database file suggested for a source:
// the same path with a .db extension.
func DefaultDatabasePath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".db"
}

// DefaultTableName returns the table name suggested for a source: its
// base name with every invalid character replaced.
func DefaultTableName(source string) string {
	base := filepath.Base(source)
	name := convert.SanitizeColumnName(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" {
		return "data"
	}
	return name
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}
