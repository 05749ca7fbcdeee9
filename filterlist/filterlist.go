// Package filterlist parses newline-delimited filter-list text into rule
// records and holds the combined filter set loaded by the engine.
package filterlist

import (
	"bufio"
	"strings"

	"github.com/webshield/webshield/rules"
)

// maxLineLen is the scanner buffer limit for one rule line.  Real lists carry
// long procedural selectors, so the default token size is not enough.
const maxLineLen = 1024 * 1024

// List is the parse result of one named filter list.
type List struct {
	// Scriptlets maps a domain to the scriptlet body of "#+js(...)" lines
	// anchored to it.
	Scriptlets map[string]string

	// Name is the identifier the list was loaded under.
	Name string

	// Networks and Cosmetics are the parsed rules in list order.
	Networks  []*rules.NetworkRule
	Cosmetics []*rules.CosmeticRule

	// RulesCount is the number of successfully parsed rules, and
	// SkippedCount is the number of malformed lines that were dropped.
	RulesCount   int
	SkippedCount int
}

// Parse reads the filter-list text and returns the parsed list.  Blank lines
// and "!" comments are skipped; a malformed line is counted in
// [List.SkippedCount] and never fails the parse.  The only returned errors
// are scanner-level ones, e.g. a line over the length limit.
func Parse(name, text string) (l *List, err error) {
	l = &List{
		Name:       name,
		Scriptlets: map[string]string{},
	}

	s := bufio.NewScanner(strings.NewReader(text))
	s.Buffer(nil, maxLineLen)
	for s.Scan() {
		l.parseLine(strings.TrimSpace(s.Text()))
	}

	return l, s.Err()
}

// parseLine parses one trimmed line and appends the result to the list.
func (l *List) parseLine(line string) {
	if line == "" || strings.HasPrefix(line, "!") {
		return
	}

	if strings.Contains(line, "#+js(") {
		l.parseScriptlet(line)

		return
	}

	if idx, _ := rules.FindCosmeticSeparator(line); idx != -1 {
		r, err := rules.NewCosmeticRule(line)
		if err != nil {
			l.SkippedCount++

			return
		}

		l.Cosmetics = append(l.Cosmetics, r)
		l.RulesCount++

		return
	}

	r, err := rules.NewNetworkRule(line)
	if err != nil {
		l.SkippedCount++

		return
	}

	l.Networks = append(l.Networks, r)
	l.RulesCount++
}

// parseScriptlet stores a "domain#+js(...)" line in the scriptlet table.
// Scriptlet handling is best-effort:  the body is kept verbatim.
func (l *List) parseScriptlet(line string) {
	domain, script, ok := strings.Cut(line, "#")
	if !ok || script == "" {
		l.SkippedCount++

		return
	}

	l.Scriptlets[strings.ToLower(domain)] = script
	l.RulesCount++
}
