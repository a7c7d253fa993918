// Package lexer tokenizes ECMAScript source text into the Token stream
// consumed by internal/parser. It implements the version-gated grammar of
// spec.md §2 (ES1/ES3/ES5 share one token set; version gating of which
// punctuators/literals are legal is left to the parser) plus automatic
// semicolon insertion's line-terminator tracking.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Version selects which edition's lexical grammar nuances apply.
type Version int

const (
	ES1 Version = iota
	ES3
	ES5
)

// Lexer scans ECMAScript source text into Tokens.
//
// Column positions are rune counts, not byte offsets, matching the
// teacher lexer's Unicode handling: multi-byte code points each count as
// one column regardless of display width.
type Lexer struct {
	input        string
	version      Version
	errors       []LexerError
	tokenBuffer  []Token
	position     int
	readPosition int
	line         int
	column       int
	ch           rune
	tracing      bool

	newlineSeen bool // line terminator seen since the last token was emitted
}

// LexerError describes a lexical error accumulated during scanning; the
// parser surfaces these as host SyntaxErrors once scanning completes.
type LexerError struct {
	Message string
	Pos     Position
}

func (e *LexerError) Error() string { return e.Message }

// LexerOption configures a Lexer at construction time.
type LexerOption func(*Lexer)

// WithVersion selects the ECMAScript edition whose lexical rules apply.
func WithVersion(v Version) LexerOption {
	return func(l *Lexer) { l.version = v }
}

// WithTracing enables debug tracing of token production.
func WithTracing(trace bool) LexerOption {
	return func(l *Lexer) { l.tracing = trace }
}

// New creates a Lexer over input, stripping a leading UTF-8 BOM if
// present (ES5 §7.3 treats <BOM> as whitespace; stripping it up front
// keeps column 0 honest for the common case of a BOM-prefixed file).
func New(input string, opts ...LexerOption) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}
	l := &Lexer{input: input, version: ES5, line: 1, column: 0}
	for _, opt := range opts {
		opt(l)
	}
	if l.version == ES3 {
		l.input = stripFormatControls(l.input)
	}
	l.readChar()
	return l
}

// formatControlRemover strips Unicode format-control characters (general
// category Cf - zero-width joiners, bidi marks, and the like) from ES3
// source before scanning begins (spec.md §4.2); ES1 and ES5 source is left
// untouched.
var formatControlRemover = runes.Remove(runes.In(unicode.Cf))

func stripFormatControls(s string) string {
	out, _, err := transform.String(formatControlRemover, s)
	if err != nil {
		return s
	}
	return out
}

func (l *Lexer) Version() Version { return l.version }

// Errors returns accumulated lexical errors.
func (l *Lexer) Errors() []LexerError { return l.errors }

func (l *Lexer) addError(msg string, pos Position) {
	l.errors = append(l.errors, LexerError{Message: msg, Pos: pos})
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
	if r == utf8.RuneError && size == 1 {
		l.addError("invalid UTF-8 encoding", l.currentPos())
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) peekCharN(n int) rune {
	pos := l.readPosition
	for i := 0; i < n-1 && pos < len(l.input); i++ {
		_, size := utf8.DecodeRuneInString(l.input[pos:])
		pos += size
	}
	if pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[pos:])
	return r
}

func (l *Lexer) matchAndConsume(expected rune) bool {
	if l.peekChar() != expected {
		return false
	}
	l.readChar()
	return true
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}

// LexerState is a saved scanning position, for parser backtracking.
type LexerState struct {
	tokenBuffer  []Token
	position     int
	readPosition int
	line         int
	column       int
	ch           rune
	newlineSeen  bool
}

func (l *Lexer) SaveState() LexerState {
	buf := make([]Token, len(l.tokenBuffer))
	copy(buf, l.tokenBuffer)
	return LexerState{
		tokenBuffer: buf, position: l.position, readPosition: l.readPosition,
		line: l.line, column: l.column, ch: l.ch, newlineSeen: l.newlineSeen,
	}
}

func (l *Lexer) RestoreState(s LexerState) {
	l.tokenBuffer = s.tokenBuffer
	l.position = s.position
	l.readPosition = s.readPosition
	l.line = s.line
	l.column = s.column
	l.ch = s.ch
	l.newlineSeen = s.newlineSeen
}

// Peek returns the token n positions ahead without consuming it, buffering
// tokens as needed. Peek(0) is the next token NextToken() would return.
func (l *Lexer) Peek(n int) Token {
	for len(l.tokenBuffer) <= n {
		l.tokenBuffer = append(l.tokenBuffer, l.scan(false))
	}
	return l.tokenBuffer[n]
}

// NextToken consumes and returns the next token, preferring buffered
// lookahead tokens produced by Peek.
func (l *Lexer) NextToken() Token {
	if len(l.tokenBuffer) > 0 {
		tok := l.tokenBuffer[0]
		l.tokenBuffer = l.tokenBuffer[1:]
		return tok
	}
	return l.scan(false)
}

// NextRegexToken scans the next token with a leading '/' read as a
// RegularExpressionLiteral (ES5 §7.8.5) rather than a division or '/='
// operator. The parser calls this instead of NextToken whenever grammar
// position makes a regex legal; a next token that does not start with '/'
// scans as usual. Tokens already buffered by Peek are discarded and
// scanning restarts from the first buffered token's start position.
func (l *Lexer) NextRegexToken() Token {
	newline := false
	if len(l.tokenBuffer) > 0 {
		first := l.tokenBuffer[0]
		l.tokenBuffer = nil
		l.readPosition = first.Pos.Offset
		l.line = first.Pos.Line
		l.column = first.Pos.Column - 1
		l.readChar()
		newline = first.NewlineBefore
	}
	tok := l.scan(true)
	tok.NewlineBefore = tok.NewlineBefore || newline
	return tok
}

func isLineTerminator(ch rune) bool {
	return ch == '\n' || ch == '\r' || ch == ' ' || ch == ' '
}

func isWhitespace(ch rune) bool {
	if ch == ' ' || ch == '\t' || ch == '\v' || ch == '\f' || ch == 0xA0 || ch == 0xFEFF {
		return true
	}
	return unicode.Is(unicode.Zs, ch)
}

// skipWhitespaceAndComments advances over whitespace and comments, setting
// newlineSeen when any LineTerminator is crossed - the raw signal ASI
// needs (spec.md §2.4's "preceded by at least one LineTerminator").
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case isLineTerminator(l.ch):
			l.newlineSeen = true
			l.line++
			l.column = 0
			l.readChar()
		case isWhitespace(l.ch):
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != 0 && !isLineTerminator(l.ch) {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			terminated := false
			for l.ch != 0 {
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					terminated = true
					break
				}
				if isLineTerminator(l.ch) {
					l.newlineSeen = true
					l.line++
					l.column = 0
				}
				l.readChar()
			}
			if !terminated {
				l.addError("unterminated comment", l.currentPos())
			}
		default:
			return
		}
	}
}

func isIdentStart(ch rune) bool {
	return ch == '_' || ch == '$' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch) || ch == '‌' || ch == '‍'
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }
func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
func isOctalDigit(ch rune) bool { return ch >= '0' && ch <= '7' }

// readNumber reads a NumericLiteral (ES5 §7.8.3): decimal, optionally with
// fraction/exponent, plus hex (0x) and, at ES3 and below / in sloppy ES5
// code, legacy octal (a leading 0 followed by octal digits).
func (l *Lexer) readNumber() (string, bool) {
	start := l.position
	legacyOctal := false

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		digitStart := l.position
		for isHexDigit(l.ch) {
			l.readChar()
		}
		if l.position == digitStart {
			l.addError("hexadecimal literal requires at least one digit after '0x'", l.currentPos())
		}
		return l.input[start:l.position], false
	}

	if l.ch == '0' && isOctalDigit(l.peekChar()) {
		legacyOctal = true
		l.readChar()
		for isOctalDigit(l.ch) {
			l.readChar()
		}
		return l.input[start:l.position], legacyOctal
	}

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.position], false
}

// readString reads a StringLiteral (ES5 §7.8.4), processing escape
// sequences and reporting whether a legacy octal escape (ES3-only,
// invalid under a use-strict directive) was used.
func (l *Lexer) readString(quote rune) (string, bool) {
	startPos := l.currentPos()
	l.readChar() // consume opening quote
	var b strings.Builder
	octalEscape := false

	for {
		if l.ch == 0 || isLineTerminator(l.ch) {
			l.addError("unterminated string literal", startPos)
			break
		}
		if l.ch == quote {
			l.readChar()
			break
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				b.WriteRune('\n')
				l.readChar()
			case 't':
				b.WriteRune('\t')
				l.readChar()
			case 'r':
				b.WriteRune('\r')
				l.readChar()
			case 'b':
				b.WriteRune('\b')
				l.readChar()
			case 'f':
				b.WriteRune('\f')
				l.readChar()
			case 'v':
				if l.version == ES1 {
					b.WriteRune('v')
				} else {
					b.WriteRune('\v')
				}
				l.readChar()
			case '0':
				if !isDigit(l.peekChar()) {
					b.WriteRune(0)
					l.readChar()
				} else {
					octalEscape = true
					b.WriteRune(l.readLegacyOctalEscape())
				}
			case '1', '2', '3', '4', '5', '6', '7':
				octalEscape = true
				b.WriteRune(l.readLegacyOctalEscape())
			case 'x':
				l.readChar()
				b.WriteRune(l.readHexEscape(2))
			case 'u':
				l.readChar()
				b.WriteRune(l.readHexEscape(4))
			case '\n', ' ', ' ':
				l.line++
				l.column = 0
				l.readChar()
			case '\r':
				l.readChar()
				if l.ch == '\n' {
					l.readChar()
				}
				l.line++
				l.column = 0
			default:
				b.WriteRune(l.ch)
				l.readChar()
			}
			continue
		}
		b.WriteRune(l.ch)
		l.readChar()
	}
	return b.String(), octalEscape
}

func (l *Lexer) readLegacyOctalEscape() rune {
	val := 0
	for i := 0; i < 3 && isOctalDigit(l.ch) && val*8+int(l.ch-'0') <= 0xFF; i++ {
		val = val*8 + int(l.ch-'0')
		l.readChar()
	}
	return rune(val)
}

func (l *Lexer) readHexEscape(n int) rune {
	val := 0
	for i := 0; i < n; i++ {
		if !isHexDigit(l.ch) {
			l.addError("invalid hex escape sequence", l.currentPos())
			return rune(val)
		}
		val = val*16 + hexValue(l.ch)
		l.readChar()
	}
	return rune(val)
}

func hexValue(ch rune) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	default:
		return int(ch-'A') + 10
	}
}

// readRegex reads a RegularExpressionLiteral body and flags (ES5 §7.8.5),
// assuming l.ch == '/' at entry.
func (l *Lexer) readRegex() string {
	start := l.position
	l.readChar() // consume opening /
	inClass := false
	for l.ch != 0 && !isLineTerminator(l.ch) {
		if l.ch == '\\' {
			l.readChar()
			if l.ch != 0 {
				l.readChar()
			}
			continue
		}
		if l.ch == '[' {
			inClass = true
		} else if l.ch == ']' {
			inClass = false
		} else if l.ch == '/' && !inClass {
			l.readChar()
			break
		}
		l.readChar()
	}
	for isIdentPart(l.ch) { // flags
		l.readChar()
	}
	return l.input[start:l.position]
}

var punctuators = []struct {
	s  string
	tt TokenType
}{
	{">>>=", SAR_ASSIGN},
	{"===", SEQ}, {"!==", SNEQ}, {">>>", SAR}, {"<<=", SHL_ASSIGN}, {">>=", SHR_ASSIGN},
	{"==", EQ}, {"!=", NEQ}, {"<=", LE}, {">=", GE}, {"&&", ANDAND}, {"||", OROR},
	{"++", PLUSPLUS}, {"--", MINUSMINUS}, {"<<", SHL}, {">>", SHR},
	{"+=", PLUS_ASSIGN}, {"-=", MINUS_ASSIGN}, {"*=", STAR_ASSIGN}, {"%=", PERCENT_ASSIGN},
	{"&=", AMP_ASSIGN}, {"|=", PIPE_ASSIGN}, {"^=", CARET_ASSIGN}, {"/=", SLASH_ASSIGN},
	{"{", LBRACE}, {"}", RBRACE}, {"(", LPAREN}, {")", RPAREN}, {"[", LBRACK}, {"]", RBRACK},
	{".", DOT}, {";", SEMICOLON}, {",", COMMA}, {"<", LT}, {">", GT},
	{"+", PLUS}, {"-", MINUS}, {"*", STAR}, {"%", PERCENT}, {"&", AMP}, {"|", PIPE},
	{"^", CARET}, {"!", NOT}, {"~", TILDE}, {"?", QUESTION}, {":", COLON}, {"=", ASSIGN},
	{"/", SLASH},
}

// scan produces the next token. regexContext is true when the caller
// (the parser, via NextRegexToken) has determined a RegularExpressionLiteral
// is grammatically legal at this position, so an initial '/' is scanned as
// regex rather than division/assignment.
func (l *Lexer) scan(regexContext bool) Token {
	l.newlineSeen = false
	l.skipWhitespaceAndComments()
	pos := l.currentPos()
	newline := l.newlineSeen

	if l.ch == 0 {
		return NewToken(EOF, "", pos, newline)
	}

	if regexContext && l.ch == '/' {
		lit := l.readRegex()
		return NewToken(REGEX, lit, pos, newline)
	}

	if isIdentStart(l.ch) {
		lit := l.readIdentifier()
		tt := LookupIdent(lit, false)
		return NewToken(tt, lit, pos, newline)
	}

	if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
		lit, legacyOctal := l.readNumber()
		tok := NewToken(NUMBER, lit, pos, newline)
		tok.LegacyOctalInt = legacyOctal
		return tok
	}

	if l.ch == '\'' || l.ch == '"' {
		lit, octalEscape := l.readString(l.ch)
		tok := NewToken(STRING, lit, pos, newline)
		tok.OctalEscape = octalEscape
		return tok
	}

	for _, p := range punctuators {
		if l.matches(p.s) {
			for range p.s {
				l.readChar()
			}
			return NewToken(p.tt, p.s, pos, newline)
		}
	}

	bad := string(l.ch)
	l.addError("unexpected character: "+bad, pos)
	l.readChar()
	return NewToken(ILLEGAL, bad, pos, newline)
}

func (l *Lexer) matches(s string) bool {
	if l.position+len(s) > len(l.input) {
		// allow matching when the remaining input is exactly the rune at l.ch
		if len(s) == utf8.RuneLen(l.ch) && l.input[l.position:] == s {
			return true
		}
		return false
	}
	return l.input[l.position:l.position+len(s)] == s
}
