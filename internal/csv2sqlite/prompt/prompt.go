// Package prompt asks the conversion settings interactively.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ATechAdventurer/csv2sqlite/internal/csv2sqlite/config"
	"github.com/ATechAdventurer/csv2sqlite/internal/csv2sqlite/styled"
	"github.com/peterh/liner"
)

// lineReader is the subset of *liner.State used by the Prompter.
type lineReader interface {
	PromptWithSuggestion(prompt string, text string, pos int) (string, error)
	Close() error
}

// Prompter asks questions on the terminal.
type Prompter struct {
	line lineReader
	out  io.Writer
}

// New returns a Prompter reading from the terminal. CTRL+C cancels the
// current question. Close must be called to restore the terminal.
func New() *Prompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completePath)

	return &Prompter{
		line: line,
		out:  os.Stdout,
	}
}

// Close restores the terminal.
func (p *Prompter) Close() error {
	return p.line.Close()
}

// Text asks for a line of text pre-filled with def. An empty answer
// selects def. Answers rejected by validate are reported and asked again.
func (p *Prompter) Text(
	label string, def string, validate func(string) error,
) (Result[string], error) {
	for {
		input, err := p.line.PromptWithSuggestion(label+": ", def, -1)
		if isCancel(err) {
			return Cancelled[string](), nil
		}
		if err != nil {
			return Result[string]{}, fmt.Errorf("failed to read answer: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			input = def
		}

		if validate != nil {
			if err := validate(input); err != nil {
				styled.ErrorColor().Fprintf(p.out, "✖ %s\n", err)
				continue
			}
		}

		return Ok(input), nil
	}
}

// Confirm asks a yes/no question. An empty answer selects def.
func (p *Prompter) Confirm(label string, def bool) (Result[bool], error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		input, err := p.line.PromptWithSuggestion(fmt.Sprintf("%s (%s): ", label, hint), "", -1)
		if isCancel(err) {
			return Cancelled[bool](), nil
		}
		if err != nil {
			return Result[bool]{}, fmt.Errorf("failed to read answer: %w", err)
		}

		answer, err := parseConfirm(input, def)
		if err != nil {
			styled.ErrorColor().Fprintf(p.out, "✖ %s\n", err)
			continue
		}
		return Ok(answer), nil
	}
}

// Collect asks for every conversion setting, suggesting the values
// already present in cfg. The returned config is valid.
func (p *Prompter) Collect(cfg config.Config) (Result[config.Config], error) {
	styled.DimmedColor().Fprintln(p.out, "Press CTRL+C to cancel")

	source, err := p.Text("CSV file", cfg.Source, config.ValidateSourcePath)
	if err != nil || source.IsCancelled() {
		return Cancelled[config.Config](), err
	}
	cfg.Source, _ = source.Value()

	defDatabase := cfg.Database
	if defDatabase == "" {
		defDatabase = config.DefaultDatabasePath(cfg.Source)
	}
	database, err := p.Text("Database file", defDatabase, config.ValidateSinkPath)
	if err != nil || database.IsCancelled() {
		return Cancelled[config.Config](), err
	}
	cfg.Database, _ = database.Value()

	defTable := cfg.Table
	if defTable == "" {
		defTable = config.DefaultTableName(cfg.Source)
	}
	table, err := p.Text("Table name", defTable, config.ValidateTableName)
	if err != nil || table.IsCancelled() {
		return Cancelled[config.Config](), err
	}
	cfg.Table, _ = table.Value()

	header, err := p.Confirm("Does the CSV file have a header line?", !cfg.NoHeader)
	if err != nil || header.IsCancelled() {
		return Cancelled[config.Config](), err
	}
	hasHeader, _ := header.Value()
	cfg.NoHeader = !hasHeader

	return Ok(cfg), nil
}

func isCancel(err error) bool {
	return errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF)
}

// parseConfirm parses a yes/no answer.
func parseConfirm(input string, def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, errors.New("please answer yes or no")
}

// completePath suggests files and directories starting with line.
func completePath(line string) []string {
	matches, err := filepath.Glob(line + "*")
	if err != nil {
		return nil
	}

	suggestions := []string{}
	for _, match := range matches {
		if info, err := os.Stat(match); err == nil && info.IsDir() {
			match += string(filepath.Separator)
		}
		suggestions = append(suggestions, match)
	}
	return suggestions
}
