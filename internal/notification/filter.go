package notification

import "strings"

// Filter applies an ordered rule set to notifications. The first matching rule wins.
type Filter struct {
	rules []Rule
}

// NewFilter creates a Filter over rules. A nil slice means DefaultRules.
func NewFilter(rules []Rule) *Filter {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Filter{rules: rules}
}

var defaultFilter = NewFilter(nil)

// Process applies the built-in rules to nc and reports whether it should be
// suppressed. The built-in rules never suppress.
func Process(nc *Command) bool {
	return defaultFilter.Apply(nc)
}

// Apply rewrites nc according to the first matching rule and returns true when
// the notification should be hidden from display.
func (f *Filter) Apply(nc *Command) bool {
	for _, r := range f.rules {
		if !strings.HasPrefix(nc.Title, r.TitlePrefix) || !nc.hasTypes(r.Types) {
			continue
		}
		if r.BodyFromTitle {
			nc.Body = StripPrefix(nc.Title, r.TitlePrefix, r.Strip)
		}
		if r.Title != "" {
			nc.Title = r.Title
		}
		if r.ApplicationName != "" {
			nc.ApplicationName = r.ApplicationName
		}
		return r.Suppress
	}
	return false
}

// StripPrefix removes prefix from the left of s according to mode.
//
// In StripCharset mode every leading rune contained in prefix is dropped, so
// "Approval requested: update deps" loses "update deps" as well.
func StripPrefix(s, prefix string, mode StripMode) string {
	if mode == StripCharset {
		return strings.TrimLeft(s, prefix)
	}
	return strings.TrimPrefix(s, prefix)
}
