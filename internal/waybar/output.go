// Package waybar encodes the JSON object consumed by Waybar-style custom modules.
package waybar

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ErrorTooltip is shown when the tasks could not be fetched.
const ErrorTooltip = "  Error fetching tasks !"

// Output is one custom-module update. Text stays empty so the bar shows only
// the module icon; the task list lives in the tooltip.
type Output struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
}

// NewOutput wraps a rendered tooltip.
func NewOutput(tooltip string) Output {
	return Output{Text: "", Tooltip: tooltip}
}

// ErrorOutput is the degraded update used when fetching fails.
func ErrorOutput() Output {
	return NewOutput(ErrorTooltip)
}

// Marshal encodes o as a single JSON object with no trailing newline.
// Pango markup in the tooltip is kept verbatim rather than HTML-escaped.
func (o Output) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(o); err != nil {
		return nil, fmt.Errorf("encoding waybar output: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
