package parser

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	rePullPhrase    = regexp.MustCompile(`(?i)\bpull\s*\d+\b`)
	reParenthetical = regexp.MustCompile(`\([^)]*\)`)
	reSpaces        = regexp.MustCompile(`\s+`)
)

// Rules tune how the bare-time strategy cleans candidate pull names.
// They ship with sane defaults and can be replaced from a YAML file
// or over the API.
type Rules struct {
	// MaxNameLength bounds how much adjacent text may become a name.
	MaxNameLength int `yaml:"maxNameLength" json:"maxNameLength"`
	// NoiseWords are status tokens stripped from candidate names.
	NoiseWords []string `yaml:"noiseWords" json:"noiseWords"`
	// StripParentheticals removes "(...)" groups from names.
	StripParentheticals bool `yaml:"stripParentheticals" json:"stripParentheticals"`

	noiseRe *regexp.Regexp
}

// DefaultRules returns the built-in rule set.
func DefaultRules() *Rules {
	r := &Rules{
		MaxNameLength:       50,
		NoiseWords:          []string{"wipe", "kill", "attempt"},
		StripParentheticals: true,
	}
	r.compile()
	return r
}

// LoadRules parses a YAML rules file.
func LoadRules(path string) (*Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadRulesFromReader(f)
}

// LoadRulesFromReader parses rules from an io.Reader. Missing fields
// fall back to the defaults.
func LoadRulesFromReader(r io.Reader) (*Rules, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	rules := &Rules{}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, err
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return rules, nil
}

// Validate normalizes zero-value fields to defaults and rejects
// out-of-range settings. It must be called on rule sets built from
// external input before use.
func (r *Rules) Validate() error {
	if r.MaxNameLength == 0 {
		r.MaxNameLength = 50
	}
	if r.MaxNameLength < 1 || r.MaxNameLength > 500 {
		return fmt.Errorf("maxNameLength out of range: %d", r.MaxNameLength)
	}
	for _, w := range r.NoiseWords {
		if strings.TrimSpace(w) == "" {
			return fmt.Errorf("noiseWords must not contain blank entries")
		}
	}
	r.compile()
	return nil
}

func (r *Rules) compile() {
	if len(r.NoiseWords) == 0 {
		r.noiseRe = nil
		return
	}
	quoted := make([]string, len(r.NoiseWords))
	for i, w := range r.NoiseWords {
		quoted[i] = regexp.QuoteMeta(strings.TrimSpace(w))
	}
	r.noiseRe = regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// stripNoise removes pull-number phrases, parenthetical groups and
// configured status words from a candidate name, collapsing the
// leftover whitespace and trimming stray separators.
func (r *Rules) stripNoise(candidate string) string {
	s := rePullPhrase.ReplaceAllString(candidate, "")
	if r.StripParentheticals {
		s = reParenthetical.ReplaceAllString(s, "")
	}
	if r.noiseRe != nil {
		s = r.noiseRe.ReplaceAllString(s, "")
	}
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.Trim(s, " -–:,.")
}
