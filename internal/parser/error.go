package parser

import (
	"fmt"

	"github.com/cwbudde/go-mjs/internal/lexer"
)

// ParseError is a structured parsing error with position information.
type ParseError struct {
	Message string
	Code    string
	Pos     lexer.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Pos.Line, e.Pos.Column)
}

func NewParseError(pos lexer.Position, code, message string) *ParseError {
	return &ParseError{Message: message, Code: code, Pos: pos}
}

const (
	ErrUnexpectedToken  = "E_UNEXPECTED_TOKEN"
	ErrMissingSemicolon = "E_MISSING_SEMICOLON"
	ErrMissingRParen    = "E_MISSING_RPAREN"
	ErrMissingRBracket  = "E_MISSING_RBRACKET"
	ErrMissingRBrace    = "E_MISSING_RBRACE"
	ErrInvalidLHS       = "E_INVALID_LHS"
	ErrNoPrefixParse    = "E_NO_PREFIX_PARSE"
	ErrStrictMode       = "E_STRICT_MODE"
	ErrVersionGated     = "E_VERSION_GATED"
)
