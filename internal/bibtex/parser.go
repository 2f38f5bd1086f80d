package bibtex

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bibkit/bibkit/internal/bib"
)

// SyntaxError reports malformed BibTeX with its source position.
type SyntaxError struct {
	Line    int
	Col     int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Col, e.Message)
}

// Parse reads BibTeX text and returns the entry collection in
// document order, plus diagnostics. A syntax error in one entry is
// reported and parsing resumes at the next @, so one bad entry never
// discards the rest of the file. The returned error is non-nil only
// for read failures.
func Parse(r io.Reader) (*bib.Library, []bib.Diagnostic, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading input: %w", err)
	}
	lib, diags := ParseString(string(data))
	return lib, diags, nil
}

// ParseString parses BibTeX text held in memory.
func ParseString(input string) (*bib.Library, []bib.Diagnostic) {
	p := &parser{s: newScanner(input), lib: bib.NewLibrary()}
	p.parseFile()
	return p.lib, p.diags
}

type parser struct {
	s     *scanner
	lib   *bib.Library
	diags []bib.Diagnostic
}

func (p *parser) errorf(line, col int, format string, args ...any) {
	p.diags = append(p.diags, bib.Diagnostic{
		Severity: bib.SeverityError,
		Line:     line,
		Col:      col,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (p *parser) warnf(line, col int, format string, args ...any) {
	p.diags = append(p.diags, bib.Diagnostic{
		Severity: bib.SeverityWarning,
		Line:     line,
		Col:      col,
		Message:  fmt.Sprintf(format, args...),
	})
}

// parseFile is the top-level loop: skip junk, dispatch each @ to
// parseEntry, and resynchronize at the next @ after an error.
func (p *parser) parseFile() {
	for {
		tok := p.s.next()
		switch tok.Kind {
		case tokEOF:
			return
		case tokAt:
			entry, err := p.parseEntry()
			if err != nil {
				var syn *SyntaxError
				if errors.As(err, &syn) {
					p.errorf(syn.Line, syn.Col, "%s", syn.Message)
				} else {
					p.errorf(tok.Line, tok.Col, "%v", err)
				}
				p.s.skipToEntry()
				continue
			}
			if entry != nil {
				p.lib.Append(entry)
			}
		case tokError:
			p.warnf(tok.Line, tok.Col, "%s", tok.Lexeme)
		default:
			p.warnf(tok.Line, tok.Col, "ignored %s outside entry", tok.Kind)
		}
	}
}

// parseEntry parses one @type{key, ...} block. The @ has been
// consumed. @comment, @preamble and @string blocks are consumed and
// skipped, returning a nil entry.
func (p *parser) parseEntry() (*bib.Entry, error) {
	typeTok := p.s.next()
	if typeTok.Kind != tokIdent {
		return nil, &SyntaxError{typeTok.Line, typeTok.Col,
			fmt.Sprintf("expected entry type after @, got %s", typeTok.Kind)}
	}
	entryType := strings.ToLower(typeTok.Lexeme)

	open := p.s.next()
	if open.Kind != tokLBrace {
		return nil, &SyntaxError{open.Line, open.Col,
			fmt.Sprintf("expected { after @%s, got %s", entryType, open.Kind)}
	}

	switch entryType {
	case "comment", "preamble", "string":
		if _, ok := p.s.scanGroup(); !ok {
			return nil, &SyntaxError{open.Line, open.Col,
				"unterminated @" + entryType + " block"}
		}
		return nil, nil
	}

	keyTok := p.s.next()
	if keyTok.Kind != tokIdent {
		return nil, &SyntaxError{keyTok.Line, keyTok.Col,
			fmt.Sprintf("expected citation key, got %s", keyTok.Kind)}
	}
	// Keys are case-sensitive, unlike field names and type tags.
	entry := bib.NewEntry(entryType, keyTok.Lexeme)

	sep := p.s.next()
	switch sep.Kind {
	case tokRBrace:
		return entry, nil // key-only entry
	case tokComma:
	default:
		return nil, &SyntaxError{sep.Line, sep.Col,
			fmt.Sprintf("expected , after citation key, got %s", sep.Kind)}
	}

	if err := p.parseFieldList(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// parseFieldList parses "name = value" pairs up to the closing brace.
// A trailing comma before } is permitted and dropped.
func (p *parser) parseFieldList(entry *bib.Entry) error {
	for {
		tok := p.s.next()
		switch tok.Kind {
		case tokRBrace:
			return nil
		case tokIdent:
			if err := p.parseField(entry, tok); err != nil {
				return err
			}
			sep := p.s.next()
			switch sep.Kind {
			case tokComma:
				// next iteration; a } right after is the tolerated
				// trailing comma
			case tokRBrace:
				return nil
			default:
				return &SyntaxError{sep.Line, sep.Col,
					fmt.Sprintf("expected , or } after field, got %s", sep.Kind)}
			}
		case tokEOF:
			return &SyntaxError{tok.Line, tok.Col, "unexpected end of input inside entry"}
		default:
			return &SyntaxError{tok.Line, tok.Col,
				fmt.Sprintf("expected field name, got %s", tok.Kind)}
		}
	}
}

// parseField parses one "name = value" pair, nameTok being the
// already-consumed field name.
func (p *parser) parseField(entry *bib.Entry, nameTok token) error {
	eq := p.s.next()
	if eq.Kind != tokEquals {
		return &SyntaxError{eq.Line, eq.Col,
			fmt.Sprintf("expected = after field name %q, got %s", nameTok.Lexeme, eq.Kind)}
	}

	value, err := p.parseValue()
	if err != nil {
		return err
	}

	if err := entry.Set(nameTok.Lexeme, value); err != nil {
		// Validator rejections are advisory at parse time: report
		// which field and why, drop the value, keep the entry.
		p.warnf(nameTok.Line, nameTok.Col, "%v", err)
	}
	return nil
}

// parseValue parses a quoted string, a brace group, or a bare word
// (numbers and month macros appear unquoted in the wild).
func (p *parser) parseValue() (string, error) {
	tok := p.s.next()
	switch tok.Kind {
	case tokQuoted:
		return tok.Lexeme, nil
	case tokLBrace:
		body, ok := p.s.scanGroup()
		if !ok {
			return "", &SyntaxError{tok.Line, tok.Col, "unbalanced braces in value"}
		}
		return body, nil
	case tokIdent:
		return tok.Lexeme, nil
	case tokError:
		return "", &SyntaxError{tok.Line, tok.Col, tok.Lexeme}
	default:
		return "", &SyntaxError{tok.Line, tok.Col,
			fmt.Sprintf("expected field value, got %s", tok.Kind)}
	}
}
