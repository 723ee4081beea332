package flowchart

import "strings"

// scanner tracks whether a byte position sits inside a bracket pair, a
// double-quoted string or a |pipe label|. Both statement splitting and
// label masking only act at the top level.
type scanner struct {
	depth  int
	quoted bool
	piped  bool
}

// step advances the state past c and reports whether c was at top level
// before it was consumed.
func (s *scanner) step(c byte) bool {
	top := s.depth == 0 && !s.quoted && !s.piped
	switch {
	case c == '"' && !s.piped:
		s.quoted = !s.quoted
	case s.quoted:
	case c == '|' && s.depth == 0:
		s.piped = !s.piped
	case s.piped:
	case c == '[' || c == '(' || c == '{':
		s.depth++
	case (c == ']' || c == ')' || c == '}') && s.depth > 0:
		s.depth--
	}
	return top
}

// splitStatements splits a line on top-level semicolons.
func splitStatements(line string) []string {
	if !strings.Contains(line, ";") {
		return []string{line}
	}
	var (
		out   []string
		sc    scanner
		start int
	)
	for i := 0; i < len(line); i++ {
		if sc.step(line[i]) && line[i] == ';' {
			out = append(out, line[start:i])
			start = i + 1
		}
	}
	return append(out, line[start:])
}

// maskLabels blanks |pipe labels| so their text is not mistaken for node
// declarations. The result has the same length as s.
func maskLabels(s string) string {
	if !strings.Contains(s, "|") {
		return s
	}
	b := []byte(s)
	var sc scanner
	for i := range b {
		wasPiped := sc.piped
		sc.step(b[i])
		if wasPiped || sc.piped {
			b[i] = ' '
		}
	}
	return string(b)
}
