package patterns

import (
	"errors"
	"fmt"
	"regexp"
)

// Pattern is one compiled detection rule. HighConfidence marks rules with a
// structured, fixed-prefix format; their matches bypass entropy filtering.
type Pattern struct {
	Name           string
	HighConfidence bool

	re *regexp.Regexp
}

// FindAll returns every match of the pattern on a single line.
func (p Pattern) FindAll(line string) []string {
	return p.re.FindAllString(line, -1)
}

// UserPattern is a host-supplied rule before compilation.
type UserPattern struct {
	Name  string `yaml:"name" json:"name"`
	Regex string `yaml:"regex" json:"regex"`
}

// Built-in rules. Compiled once at package load; scanning never recompiles.
var builtins = []Pattern{
	{Name: "Amazon AWS Access Key ID", HighConfidence: true,
		re: regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{Name: "Amazon AWS Secret Access Key",
		re: regexp.MustCompile(`(?i)aws[_\-. ]?secret[_\-. ]?(?:access[_\-. ]?)?key["'\s]*[:=]\s*["']?[A-Za-z0-9/+=]{40}`)},
	{Name: "GitHub Personal Access Token", HighConfidence: true,
		re: regexp.MustCompile(`gh[pousr]_[0-9A-Za-z]{36,255}`)},
	{Name: "Slack Token", HighConfidence: true,
		re: regexp.MustCompile(`xox[baprs]-[0-9A-Za-z-]{10,48}`)},
	{Name: "Stripe API Key", HighConfidence: true,
		re: regexp.MustCompile(`(?:sk|rk)_live_[0-9a-zA-Z]{24,99}`)},
	{Name: "Google API Key", HighConfidence: true,
		re: regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`)},
	{Name: "SendGrid API Key", HighConfidence: true,
		re: regexp.MustCompile(`SG\.[A-Za-z0-9_\-]{22}\.[A-Za-z0-9_\-]{43}`)},
	{Name: "Private Key Block", HighConfidence: true,
		re: regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY(?: BLOCK)?-----`)},
	{Name: "JSON Web Token", HighConfidence: true,
		re: regexp.MustCompile(`eyJ[A-Za-z0-9_\-]{8,}\.[A-Za-z0-9_\-]{8,}\.[A-Za-z0-9_\-]*`)},
	{Name: "Generic API Key",
		re: regexp.MustCompile(`(?i)(?:api[_\-]?key|access[_\-]?key|client[_\-]?secret)["'\s]*[:=]\s*["']?[A-Za-z0-9_\-]{16,64}`)},
	{Name: "Generic Secret",
		re: regexp.MustCompile(`(?i)(?:secret|token|password|passwd|pwd)["'\s]*[:=]\s*["']?[^\s"']{8,}`)},
}

// Registry holds the full rule set for one scan session. It is immutable
// after Load and safe for concurrent readers.
type Registry struct {
	patterns []Pattern
	highConf map[string]bool
}

// Load builds a registry from the built-in rules plus optional user rules.
// A user rule whose regex fails to compile is excluded and reported in the
// joined error; the returned registry is still usable either way.
func Load(user []UserPattern) (*Registry, error) {
	r := &Registry{
		patterns: make([]Pattern, 0, len(builtins)+len(user)),
		highConf: make(map[string]bool, len(builtins)),
	}
	r.patterns = append(r.patterns, builtins...)

	var errs []error
	for _, up := range user {
		re, err := regexp.Compile(up.Regex)
		if err != nil {
			errs = append(errs, fmt.Errorf("custom pattern %q: %w", up.Name, err))
			continue
		}
		r.patterns = append(r.patterns, Pattern{Name: up.Name, re: re})
	}
	for _, p := range r.patterns {
		if p.HighConfidence {
			r.highConf[p.Name] = true
		}
	}
	return r, errors.Join(errs...)
}

// Patterns returns the rule set. Callers must not mutate the slice.
func (r *Registry) Patterns() []Pattern { return r.patterns }

// HighConfidence reports whether the named pattern is a structured,
// fixed-prefix rule whose matches skip the entropy gate.
func (r *Registry) HighConfidence(name string) bool { return r.highConf[name] }

// Names returns the names of all loaded patterns in registry order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.patterns))
	for i, p := range r.patterns {
		out[i] = p.Name
	}
	return out
}
