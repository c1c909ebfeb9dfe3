package convert

import "errors"

// Structural errors. Any of these ends the run; per-row insert failures
// are never reported through them.
var (
	ErrReadSource      = errors.New("failed to read source")
	ErrInvalidEncoding = errors.New("source is not valid UTF-8")
	ErrOpenSink        = errors.New("failed to open sink")
	ErrDropTable       = errors.New("failed to drop table")
	ErrCreateTable     = errors.New("failed to create table")
	ErrPrepareInsert   = errors.New("failed to prepare insert statement")
	ErrFinalize        = errors.New("failed to finalize insert statement")
	ErrCloseSink       = errors.New("failed to close sink")
)
