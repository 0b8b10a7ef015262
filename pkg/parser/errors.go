package parser

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/pseudomuto/shardkeeper/pkg/lexer"
)

var (
	// ErrSyntax is matched by every malformed-clause failure, including
	// tokenization errors.
	ErrSyntax = errors.New("syntax error")

	// ErrUnsupported is matched by constructs the active dialect rejects,
	// such as top-level set operators.
	ErrUnsupported = errors.New("unsupported SQL construct")

	// ErrSubqueryUnsupported is returned when a parenthesized expression is
	// found where a table reference is expected.
	ErrSubqueryUnsupported = errors.New("cannot support subquery")

	// ErrParserReused is returned when Parse is called more than once on the
	// same SelectParser.
	ErrParserReused = errors.New("select parser can only parse one statement")
)

type (
	// SyntaxError reports a token that does not fit the grammar.
	SyntaxError struct {
		Expected string
		Actual   lexer.Token
		// Cause is set when the input could not be tokenized at all.
		Cause error
	}

	// UnsupportedError reports a construct the dialect does not support.
	UnsupportedError struct {
		Token lexer.Token
	}
)

func (e *SyntaxError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", ErrSyntax, e.Cause)
	}
	return fmt.Sprintf("%s: expected %s, got %s", ErrSyntax, e.Expected, e.Actual)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }
func (e *SyntaxError) Unwrap() error        { return e.Cause }

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s: %s at offset %d", ErrUnsupported, e.Token.Literal, e.Token.Offset)
}

func (e *UnsupportedError) Is(target error) bool { return target == ErrUnsupported }

func syntaxError(expected string, actual lexer.Token) error {
	return &SyntaxError{Expected: expected, Actual: actual}
}
