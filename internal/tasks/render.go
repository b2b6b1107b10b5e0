package tasks

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// Header is the Pango markup line shown above the task list.
	Header = "<big>Google To-Do Tasks:</big>\n"
	// NoPending is rendered when there is nothing left to do.
	NoPending = " No pending tasks :D"
)

// year is a calendar year; humanize.Year is twelve 30-day months.
const year = 365 * humanize.Day

// relMagnitudes mirrors the coarse wording of arrow's humanize:
// "just now", "a minute", "an hour", "3 days", "a week".
var relMagnitudes = []humanize.RelTimeMagnitude{
	{D: 10 * time.Second, Format: "just now", DivBy: time.Second},
	{D: 45 * time.Second, Format: "%d seconds %s", DivBy: time.Second},
	{D: 90 * time.Second, Format: "a minute %s", DivBy: 1},
	{D: 45 * time.Minute, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 90 * time.Minute, Format: "an hour %s", DivBy: 1},
	{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "a day %s", DivBy: 1},
	{D: humanize.Week, Format: "%d days %s", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "a week %s", DivBy: 1},
	{D: humanize.Month, Format: "%d weeks %s", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "a month %s", DivBy: 1},
	{D: year, Format: "%d months %s", DivBy: humanize.Month},
	{D: 2 * year, Format: "a year %s", DivBy: 1},
	{D: math.MaxInt64, Format: "%d years %s", DivBy: year},
}

// Humanize describes t relative to now, e.g. "in 3 days" or "2 hours ago".
func Humanize(t, now time.Time) string {
	s := humanize.CustomRelTime(t, now, "ago", "", relMagnitudes)
	if !t.After(now) || s == "just now" {
		return s
	}
	return "in " + strings.TrimSpace(s)
}

// Render formats tasks one per line for the widget tooltip. Tasks with a due
// date get a relative "(up in ...)" suffix.
func Render(ts []Task, now time.Time) string {
	if len(ts) == 0 {
		return NoPending
	}

	var b strings.Builder
	for _, t := range ts {
		b.WriteString("• ")
		b.WriteString(t.Title)
		if t.HasDue() {
			b.WriteString(" (up ")
			b.WriteString(Humanize(t.Due, now))
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

// Tooltip prefixes the rendered task block with Header.
func Tooltip(body string) string {
	return Header + body
}
