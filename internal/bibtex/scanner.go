package bibtex

import "strings"

// scanner lexes BibTeX text into tokens. It tracks line and column
// for diagnostics and counts brace depth inside quoted strings so
// that braces in "..." never terminate the string early. On malformed
// input it emits one tokError carrying the position and stops; the
// parser decides whether that is fatal.
type scanner struct {
	input string
	pos   int
	line  int
	col   int
}

func newScanner(input string) *scanner {
	return &scanner{input: input, line: 1, col: 1}
}

// delimiters that terminate an identifier.
const identDelims = "@{}=,\"%"

func (s *scanner) peek() (byte, bool) {
	if s.pos >= len(s.input) {
		return 0, false
	}
	return s.input[s.pos], true
}

func (s *scanner) advance() byte {
	c := s.input[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

// skipInsignificant consumes whitespace and % line comments. Comments
// are discarded; whitespace only separates tokens.
func (s *scanner) skipInsignificant() {
	for {
		c, ok := s.peek()
		if !ok {
			return
		}
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.advance()
		case c == '%':
			for {
				c, ok := s.peek()
				if !ok || c == '\n' {
					break
				}
				s.advance()
			}
		default:
			return
		}
	}
}

// next returns the next significant token.
func (s *scanner) next() token {
	s.skipInsignificant()

	line, col := s.line, s.col
	c, ok := s.peek()
	if !ok {
		return token{Kind: tokEOF, Line: line, Col: col}
	}

	switch c {
	case '@':
		s.advance()
		return token{Kind: tokAt, Lexeme: "@", Line: line, Col: col}
	case '{':
		s.advance()
		return token{Kind: tokLBrace, Lexeme: "{", Line: line, Col: col}
	case '}':
		s.advance()
		return token{Kind: tokRBrace, Lexeme: "}", Line: line, Col: col}
	case ',':
		s.advance()
		return token{Kind: tokComma, Lexeme: ",", Line: line, Col: col}
	case '=':
		s.advance()
		return token{Kind: tokEquals, Lexeme: "=", Line: line, Col: col}
	case '"':
		return s.scanQuoted()
	default:
		return s.scanIdent()
	}
}

// scanQuoted reads a double-quoted string. Braces inside the string
// must balance; a closing quote inside an open brace group does not
// terminate the string (BibTeX uses this to protect quotes).
func (s *scanner) scanQuoted() token {
	line, col := s.line, s.col
	s.advance() // opening quote

	var (
		b     strings.Builder
		depth int
	)
	for {
		c, ok := s.peek()
		if !ok {
			return token{
				Kind:   tokError,
				Lexeme: "unterminated quoted string",
				Line:   line,
				Col:    col,
			}
		}
		switch {
		case c == '"' && depth == 0:
			s.advance()
			return token{Kind: tokQuoted, Lexeme: b.String(), Line: line, Col: col}
		case c == '{':
			depth++
		case c == '}':
			if depth == 0 {
				return token{
					Kind:   tokError,
					Lexeme: "unbalanced braces in quoted string",
					Line:   s.line,
					Col:    s.col,
				}
			}
			depth--
		}
		b.WriteByte(s.advance())
	}
}

// scanIdent reads a run of characters up to the next delimiter or
// whitespace. Identifiers are deliberately liberal: citation keys may
// contain colons, dots, slashes and other punctuation.
func (s *scanner) scanIdent() token {
	line, col := s.line, s.col
	var b strings.Builder
	for {
		c, ok := s.peek()
		if !ok || c == ' ' || c == '\t' || c == '\r' || c == '\n' ||
			strings.IndexByte(identDelims, c) >= 0 {
			break
		}
		b.WriteByte(s.advance())
	}
	if b.Len() == 0 {
		// The caller saw a byte that is neither a delimiter nor an
		// identifier start; report and consume it so scanning makes
		// progress.
		c := s.advance()
		return token{
			Kind:   tokError,
			Lexeme: "unexpected character " + string(c),
			Line:   line,
			Col:    col,
		}
	}
	return token{Kind: tokIdent, Lexeme: b.String(), Line: line, Col: col}
}

// scanGroup reads a brace-delimited group body after the opening
// brace has been consumed. Inner braces are kept verbatim; the body
// ends when depth returns to zero at the matching close brace. ok is
// false when the input ends before the group closes.
func (s *scanner) scanGroup() (body string, ok bool) {
	var (
		b     strings.Builder
		depth int
	)
	for {
		c, haveByte := s.peek()
		if !haveByte {
			return b.String(), false
		}
		switch c {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				s.advance()
				return b.String(), true
			}
			depth--
		}
		b.WriteByte(s.advance())
	}
}

// skipToEntry discards input until the next top-level @ so parsing
// can resume after a syntax error. Quoted strings and brace groups
// are skipped opaquely so an @ inside a value is not mistaken for an
// entry start.
func (s *scanner) skipToEntry() {
	depth := 0
	inQuote := false
	for {
		c, ok := s.peek()
		if !ok {
			return
		}
		switch c {
		case '@':
			if depth == 0 && !inQuote {
				return
			}
		case '"':
			if depth == 0 {
				inQuote = !inQuote
			}
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
		s.advance()
	}
}
