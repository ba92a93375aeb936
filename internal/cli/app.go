// Package cli implements the smartrate command line. Every invocation runs
// in a fresh rates session.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/smartrate/internal/entrypoint"
	"github.com/mrlokans/smartrate/internal/rates"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// App holds the state shared across commands.
type App struct {
	Core   *entrypoint.App
	Out    io.Writer
	Err    io.Writer
	Format string
}

// Close releases the core app opened for the current command. It is safe
// to call more than once.
func (a *App) Close() error {
	if a.Core == nil {
		return nil
	}
	err := a.Core.Close()
	a.Core = nil
	return err
}

func validateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
}

// render writes v in the selected format. text renders the human form.
func (a *App) render(v any, text func(w io.Writer)) error {
	switch a.Format {
	case FormatJSON:
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		return writeYAML(a.Out, v)
	default:
		text(a.Out)
		return nil
	}
}

// writeYAML goes through JSON so both formats share field names.
func writeYAML(w io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// warn reports a non-fatal fetch problem on the error stream.
func (a *App) warn(err error) {
	fmt.Fprintf(a.Err, "warning: %s: %v\n", rates.MessageKey(err), err)
}

// failure wraps err with its message key.
func failure(err error) error {
	return fmt.Errorf("%s: %w", rates.MessageKey(err), err)
}
