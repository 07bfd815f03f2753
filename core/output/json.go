package output

import (
	"encoding/json"
	"io"

	"translation-quote/core/diff"
	"translation-quote/core/engine"
)

type jsonFormatter struct{}

func (jsonFormatter) Format() Format { return FormatJSON }

func (jsonFormatter) RenderQuote(w io.Writer, q *engine.QuoteResult) error {
	return writeJSON(w, q)
}

func (jsonFormatter) RenderOptions(w io.Writer, o *engine.OptionsResult) error {
	return writeJSON(w, o)
}

func (jsonFormatter) RenderDiff(w io.Writer, d *diff.DiffResult) error {
	return writeJSON(w, d)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
