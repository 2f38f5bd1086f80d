package bib

import (
	"reflect"
	"testing"
)

func TestParseAuthors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  AuthorList
	}{
		{
			name:  "comma form single author",
			input: "Doe, J.",
			want:  AuthorList{{Last: "Doe", First: "J."}},
		},
		{
			name:  "two authors comma form",
			input: "Doe, J. and Smith, A. B.",
			want: AuthorList{
				{Last: "Doe", First: "J."},
				{Last: "Smith", First: "A. B."},
			},
		},
		{
			name:  "space form",
			input: "John Doe",
			want:  AuthorList{{First: "John", Last: "Doe"}},
		},
		{
			name:  "space form with middle name",
			input: "Johannes Diderik van der Waals",
			want: AuthorList{{
				First:    "Johannes Diderik",
				Particle: "van der",
				Last:     "Waals",
			}},
		},
		{
			name:  "comma form with particle",
			input: "van Beethoven, Ludwig",
			want: AuthorList{{
				Particle: "van",
				Last:     "Beethoven",
				First:    "Ludwig",
			}},
		},
		{
			name:  "comma form with suffix",
			input: "Davis, Jr., Sammy",
			want: AuthorList{{
				Last:   "Davis",
				Suffix: "Jr.",
				First:  "Sammy",
			}},
		},
		{
			name:  "single name",
			input: "Madonna",
			want:  AuthorList{{Last: "Madonna"}},
		},
		{
			name:  "and inside brace group is not a separator",
			input: "{Sturm and Drang Society} and Doe, J.",
			want: AuthorList{
				{Last: "{Sturm and Drang Society}"},
				{Last: "Doe", First: "J."},
			},
		},
		{
			name:  "case-insensitive connective",
			input: "Doe, J. AND Smith, A.",
			want: AuthorList{
				{Last: "Doe", First: "J."},
				{Last: "Smith", First: "A."},
			},
		},
		{
			name:  "Anderson is not a connective",
			input: "Anderson, P. W.",
			want:  AuthorList{{Last: "Anderson", First: "P. W."}},
		},
		{
			name:  "mixed forms",
			input: "Pascal Combes and Malrait, F.",
			want: AuthorList{
				{First: "Pascal", Last: "Combes"},
				{Last: "Malrait", First: "F."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAuthors(tt.input)
			if err != nil {
				t.Fatalf("ParseAuthors(%q) unexpected error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAuthors(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAuthorsInvalid(t *testing.T) {
	if _, err := ParseAuthors("Doe, J., Jr., extra, parts"); err == nil {
		t.Error("ParseAuthors() with four comma parts should fail")
	}
}

func TestAuthorListRoundTrip(t *testing.T) {
	// Serialization is the canonical comma form; parsing it back must
	// yield the same author identities.
	inputs := []string{
		"Doe, J. and Smith, A. B.",
		"John Doe and Jane Roe",
		"van der Waals, Johannes Diderik",
		"Davis, Jr., Sammy",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := ParseAuthors(input)
			if err != nil {
				t.Fatalf("ParseAuthors(%q) unexpected error: %v", input, err)
			}
			second, err := ParseAuthors(first.String())
			if err != nil {
				t.Fatalf("reparse of %q failed: %v", first.String(), err)
			}
			if !reflect.DeepEqual(first, second) {
				t.Errorf("round trip changed authors: %+v != %+v", first, second)
			}
		})
	}
}

func TestAuthorString(t *testing.T) {
	tests := []struct {
		author Author
		want   string
	}{
		{Author{Last: "Doe", First: "J."}, "Doe, J."},
		{Author{Particle: "van", Last: "Beethoven", First: "Ludwig"}, "van Beethoven, Ludwig"},
		{Author{Last: "Davis", Suffix: "Jr.", First: "Sammy"}, "Davis, Jr., Sammy"},
		{Author{Last: "Madonna"}, "Madonna"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.author.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
