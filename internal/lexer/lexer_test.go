package lexer

import "testing"

func collectNonEOF(l *Lexer) []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

// spec.md §8 "For every token kind, lex(text(tok)) yields a singleton
// sequence containing an equal token."
func TestSingleTokenRoundTrip(t *testing.T) {
	cases := []struct {
		text string
		want TokenType
	}{
		{"foo", IDENT},
		{"123", NUMBER},
		{"3.14", NUMBER},
		{`"hi"`, STRING},
		{"'hi'", STRING},
		{"function", FUNCTION},
		{"var", VAR},
		{"return", RETURN},
		{"{", LBRACE}, {"}", RBRACE},
		{"(", LPAREN}, {")", RPAREN},
		{"===", SEQ}, {"!==", SNEQ},
		{">>>", SAR}, {">>>=", SAR_ASSIGN},
		{"+=", PLUS_ASSIGN},
		{"&&", ANDAND}, {"||", OROR},
	}
	for _, c := range cases {
		l := New(c.text, WithVersion(ES5))
		toks := collectNonEOF(l)
		if len(toks) != 1 {
			t.Fatalf("lex(%q): want 1 token, got %d (%v)", c.text, len(toks), toks)
		}
		if toks[0].Type != c.want {
			t.Fatalf("lex(%q): want type %v, got %v", c.text, c.want, toks[0].Type)
		}
		want := c.text
		if c.want == STRING {
			want = c.text[1 : len(c.text)-1] // STRING literals carry the decoded content, quotes removed
		}
		if toks[0].Literal != want {
			t.Fatalf("lex(%q): want literal %q, got %q", c.text, want, toks[0].Literal)
		}
	}
}

// spec.md §8 "Reserved-word classification matches the (version, word)
// class table."
func TestReservedWordClassificationByVersion(t *testing.T) {
	cases := []struct {
		word    string
		version Version
		strict  bool
		want    TokenType
	}{
		{"switch", ES1, false, SWITCH}, // reserved at every version; gating is the parser's job
		{"switch", ES5, false, SWITCH},
		{"debugger", ES1, false, DEBUGGER},
		{"let", ES5, false, IDENT},
		{"let", ES5, true, LET},
		{"yield", ES3, false, IDENT},
		{"class", ES1, false, CLASS},
	}
	for _, c := range cases {
		got := LookupIdent(c.word, c.strict)
		if got != c.want {
			t.Fatalf("LookupIdent(%q, strict=%v): want %v, got %v", c.word, c.strict, c.want, got)
		}
	}
}

func TestIntroducedAt(t *testing.T) {
	if IntroducedAt(SWITCH) != ES3 {
		t.Fatalf("want SWITCH introduced at ES3, got %v", IntroducedAt(SWITCH))
	}
	if IntroducedAt(DEBUGGER) != ES5 {
		t.Fatalf("want DEBUGGER introduced at ES5, got %v", IntroducedAt(DEBUGGER))
	}
	if IntroducedAt(VAR) != ES1 {
		t.Fatalf("want VAR introduced at ES1, got %v", IntroducedAt(VAR))
	}
}

// spec.md §8 "lex rejects '\n' inside a non-continued string literal;
// accepts '\v' only from ES3."
func TestUnterminatedStringLiteral(t *testing.T) {
	l := New("\"abc\ndef\"", WithVersion(ES5))
	collectNonEOF(l)
	if len(l.Errors()) == 0 {
		t.Fatal("want a lex error for a raw newline inside a string literal")
	}
}

func TestVerticalTabEscapeAccepted(t *testing.T) {
	l := New(`"a\vb"`, WithVersion(ES3))
	toks := collectNonEOF(l)
	if len(toks) != 1 || toks[0].Type != STRING {
		t.Fatalf("want a single STRING token, got %v", toks)
	}
	if toks[0].Literal != "a\vb" {
		t.Fatalf("want decoded %q, got %q", "a\vb", toks[0].Literal)
	}
}

// spec.md §8 "ES3 strips Cf characters: lex(\"te\\u00ADst\") ==
// [ident \"test\"]."
func TestES3StripsFormatControlCharacters(t *testing.T) {
	l := New("te­st", WithVersion(ES3))
	toks := collectNonEOF(l)
	if len(toks) != 1 || toks[0].Type != IDENT || toks[0].Literal != "test" {
		t.Fatalf("want single IDENT %q, got %v", "test", toks)
	}
}

func TestES1DoesNotStripFormatControlCharacters(t *testing.T) {
	l := New("te­st", WithVersion(ES1))
	toks := collectNonEOF(l)
	if len(toks) != 3 || toks[0].Literal != "te" || toks[1].Type != ILLEGAL || toks[2].Literal != "st" {
		t.Fatalf("want the soft hyphen preserved outside ES3, got %v", toks)
	}
}

// ASI hint: a LineTerminator between tokens is surfaced on the following
// token so the parser can apply automatic semicolon insertion.
func TestNewlineBeforeFlag(t *testing.T) {
	l := New("a\nb", WithVersion(ES5))
	first := l.NextToken()
	if first.NewlineBefore {
		t.Fatal("first token should not report a preceding newline")
	}
	second := l.NextToken()
	if !second.NewlineBefore {
		t.Fatal("second token should report the preceding newline")
	}
}

func TestRegexVsDivideDisambiguation(t *testing.T) {
	l := New("/abc/g", WithVersion(ES5))
	tok := l.NextRegexToken()
	if tok.Type != REGEX || tok.Literal != "/abc/g" {
		t.Fatalf("want regex literal, got %v %q", tok.Type, tok.Literal)
	}
}

func TestDivideLexedAsPunctuatorByDefault(t *testing.T) {
	l := New("a/b", WithVersion(ES5))
	toks := collectNonEOF(l)
	if len(toks) != 3 || toks[1].Type != SLASH {
		t.Fatalf("want IDENT SLASH IDENT, got %v", toks)
	}
}

func TestLegacyOctalNumericLiteral(t *testing.T) {
	l := New("010", WithVersion(ES3))
	tok := l.NextToken()
	if tok.Type != NUMBER || !tok.LegacyOctalInt {
		t.Fatalf("want a legacy-octal NUMBER token, got %+v", tok)
	}
}

func TestHexNumericLiteral(t *testing.T) {
	l := New("0xFF", WithVersion(ES5))
	tok := l.NextToken()
	if tok.Type != NUMBER || tok.Literal != "0xFF" {
		t.Fatalf("want NUMBER 0xFF, got %+v", tok)
	}
}

func TestIsStrictReservedWord(t *testing.T) {
	for _, w := range []string{"let", "yield", "static", "implements"} {
		if !IsStrictReservedWord(w) {
			t.Fatalf("want %q to be a strict-reserved word", w)
		}
	}
	for _, w := range []string{"foo", "switch", "var"} {
		if IsStrictReservedWord(w) {
			t.Fatalf("want %q to not be a strict-reserved word", w)
		}
	}
}
