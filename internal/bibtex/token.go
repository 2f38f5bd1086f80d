// Package bibtex implements the BibTeX codec: a tokenizer, a
// recursive-descent parser producing bib.Library collections, and a
// canonical serializer. Parsing is a pure function of the input text;
// syntax problems are reported as diagnostics and isolated to the
// offending entry.
package bibtex

// tokenKind identifies a lexical token class.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokError
	tokAt     // @
	tokIdent  // entry type, field name, or citation key
	tokLBrace // {
	tokRBrace // }
	tokComma  // ,
	tokEquals // =
	tokQuoted // "..." with balanced inner braces, quotes stripped
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokError:
		return "error"
	case tokAt:
		return "@"
	case tokIdent:
		return "identifier"
	case tokLBrace:
		return "{"
	case tokRBrace:
		return "}"
	case tokComma:
		return ","
	case tokEquals:
		return "="
	case tokQuoted:
		return "quoted string"
	default:
		return "unknown token"
	}
}

// token is one lexical unit with its source position.
type token struct {
	Kind   tokenKind
	Lexeme string // token text; for tokQuoted the content without quotes
	Line   int    // 1-based
	Col    int    // 1-based
}
