// Package minify strips comments and blank lines from source text using
// per-language-family rules keyed by a preset's language tag.
//
// Stripping tracks quoting state, so markers inside string literals are left
// alone. The tracking is approximate for exotic literal forms; when in doubt
// the scanner errs toward keeping content rather than removing it. Unknown
// language tags pass content through unchanged.
package minify

import (
	"strings"
)

// rules describes the comment and string syntax of one language family.
type rules struct {
	// line holds the line comment openers.
	line []string

	// block enables slash-star block comments.
	block bool

	// quotes are the plain string delimiters.
	quotes string

	// triple are quote characters that also form spanning triple-quoted
	// strings.
	triple string

	// multiline are quote characters whose plain strings may span lines.
	// All other plain strings are closed by the end of the line.
	multiline string

	// rawBacktick disables backslash escapes inside backtick strings.
	rawBacktick bool

	// keepShebang preserves a leading "#!" line.
	keepShebang bool
}

var families = map[string]rules{
	"python":     {line: []string{"#"}, quotes: `'"`, triple: `'"`, keepShebang: true},
	"ruby":       {line: []string{"#"}, quotes: `'"`, multiline: `'"`, keepShebang: true},
	"go":         {line: []string{"//"}, block: true, quotes: "'\"`", multiline: "`", rawBacktick: true},
	"javascript": {line: []string{"//"}, block: true, quotes: "'\"`", multiline: "`", keepShebang: true},
	"java":       {line: []string{"//"}, block: true, quotes: `'"`, triple: `"`},
	"csharp":     {line: []string{"//"}, block: true, quotes: `'"`, triple: `"`},
	"rust":       {line: []string{"//"}, block: true, quotes: `"`, multiline: `"`},
	"php":        {line: []string{"//", "#"}, block: true, quotes: `'"`, multiline: `'"`, keepShebang: true},
	"cpp":        {line: []string{"//"}, block: true, quotes: `'"`},
	"swift":      {line: []string{"//"}, block: true, quotes: `'"`, triple: `"`},
}

// Supported reports whether minification rules exist for a language tag.
func Supported(languageTag string) bool {
	_, ok := families[languageTag]
	return ok
}

// Minify removes comments and blank lines from content according to the
// language tag's family rules. Tags with no registered family return content
// unchanged, so this never fails a run.
func Minify(content, languageTag string) string {
	r, ok := families[languageTag]
	if !ok {
		return content
	}
	return strip(content, r)
}

const (
	stateCode = iota
	stateString
	stateTriple
	stateBlock
)

// strip scans content once, dropping comments and blank lines while leaving
// string literal interiors untouched.
func strip(content string, r rules) string {
	var lines []string
	var cur strings.Builder

	// flush ends the current line. Lines inside spanning strings are kept
	// verbatim; everything else is right-trimmed and dropped when blank.
	flush := func(insideString bool) {
		line := cur.String()
		cur.Reset()
		if insideString {
			lines = append(lines, line)
			return
		}
		line = strings.TrimRight(line, " \t\r")
		if line != "" {
			lines = append(lines, line)
		}
	}

	i := 0
	n := len(content)

	if r.keepShebang && strings.HasPrefix(content, "#!") {
		end := strings.IndexByte(content, '\n')
		if end < 0 {
			return content
		}
		lines = append(lines, strings.TrimRight(content[:end], " \t\r"))
		i = end + 1
	}

	state := stateCode
	var quote byte

	spansLines := func() bool {
		return state == stateTriple ||
			(state == stateString && strings.IndexByte(r.multiline, quote) >= 0)
	}

	for i < n {
		c := content[i]

		if c == '\n' {
			raw := spansLines()
			if state == stateString && !raw {
				// Unterminated plain literal; the line end closes it.
				state = stateCode
			}
			flush(raw)
			i++
			continue
		}

		switch state {
		case stateCode:
			if isLineComment(content, i, r.line) {
				for i < n && content[i] != '\n' {
					i++
				}
				continue
			}
			if r.block && c == '/' && i+1 < n && content[i+1] == '*' {
				state = stateBlock
				i += 2
				continue
			}
			if strings.IndexByte(r.triple, c) >= 0 &&
				i+2 < n && content[i+1] == c && content[i+2] == c {
				state = stateTriple
				quote = c
				cur.WriteString(content[i : i+3])
				i += 3
				continue
			}
			if strings.IndexByte(r.quotes, c) >= 0 {
				state = stateString
				quote = c
				cur.WriteByte(c)
				i++
				continue
			}
			cur.WriteByte(c)
			i++

		case stateString:
			escapes := !(quote == '`' && r.rawBacktick)
			if escapes && c == '\\' && i+1 < n {
				cur.WriteString(content[i : i+2])
				i += 2
				continue
			}
			cur.WriteByte(c)
			if c == quote {
				state = stateCode
			}
			i++

		case stateTriple:
			if c == quote && i+2 < n && content[i+1] == quote && content[i+2] == quote {
				cur.WriteString(content[i : i+3])
				i += 3
				state = stateCode
				continue
			}
			if c == '\\' && i+1 < n {
				cur.WriteString(content[i : i+2])
				i += 2
				continue
			}
			cur.WriteByte(c)
			i++

		case stateBlock:
			if c == '*' && i+1 < n && content[i+1] == '/' {
				state = stateCode
				i += 2
				continue
			}
			i++
		}
	}

	if cur.Len() > 0 {
		flush(spansLines())
	}

	return strings.Join(lines, "\n")
}

func isLineComment(s string, i int, markers []string) bool {
	for _, m := range markers {
		if strings.HasPrefix(s[i:], m) {
			return true
		}
	}
	return false
}
