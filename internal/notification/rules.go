package notification

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StripMode controls how a matched title prefix is removed before the title
// is copied into the body.
type StripMode string

const (
	// StripExactPrefix removes the exact prefix once.
	StripExactPrefix StripMode = "prefix"
	// StripCharset removes every leading character that occurs anywhere in the
	// prefix, the way a left-strip over a character set does.
	StripCharset StripMode = "charset"
)

// Codex approval notifications.
const (
	CodexApprovalPrefix = "Approval requested: "
	CodexApprovalTitle  = "Codex: Approval requested"
	CodexAppName        = "openai-codex"
)

// Rule rewrites notifications whose title starts with TitlePrefix.
// Empty Title or ApplicationName leave the corresponding field untouched.
type Rule struct {
	Name            string    `yaml:"name"`
	TitlePrefix     string    `yaml:"title_prefix"`
	Types           []string  `yaml:"types,omitempty"`
	Strip           StripMode `yaml:"strip,omitempty"`
	BodyFromTitle   bool      `yaml:"body_from_title"`
	Title           string    `yaml:"title,omitempty"`
	ApplicationName string    `yaml:"application_name,omitempty"`
	Suppress        bool      `yaml:"suppress"`
}

// ruleFile is the on-disk YAML layout.
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// DefaultRules returns the built-in rule set: OpenAI Codex approval requests are
// retitled and attributed to the codex app, with the request text moved into the body.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:            "codex-approval",
			TitlePrefix:     CodexApprovalPrefix,
			Strip:           StripExactPrefix,
			BodyFromTitle:   true,
			Title:           CodexApprovalTitle,
			ApplicationName: CodexAppName,
		},
	}
}

// LoadRules reads rules from a YAML file. A missing file yields DefaultRules.
func LoadRules(path string) ([]Rule, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is user-configured
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultRules(), nil
		}
		return nil, fmt.Errorf("reading rules file %q: %w", path, err)
	}

	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rules file %q: %w", path, err)
	}

	for i, r := range f.Rules {
		if r.TitlePrefix == "" {
			return nil, fmt.Errorf("rule %d (%q): title_prefix is required", i, r.Name)
		}
		switch r.Strip {
		case "":
			f.Rules[i].Strip = StripExactPrefix
		case StripExactPrefix, StripCharset:
		default:
			return nil, fmt.Errorf("rule %d (%q): unknown strip mode %q", i, r.Name, r.Strip)
		}
	}
	return f.Rules, nil
}
