package parser

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/shardkeeper/pkg/consts"
	"github.com/pseudomuto/shardkeeper/pkg/lexer"
	"github.com/pseudomuto/shardkeeper/pkg/query"
)

type (
	// Dialect customizes the SELECT parser for one SQL dialect. The common
	// grammar covers everything up to ORDER BY; the hooks handle what only
	// some dialects support.
	//
	// Embed BaseDialect to get the default behavior and override selectively:
	//
	//	type unionDialect struct{ parser.BaseDialect }
	//
	//	func (unionDialect) QueryRest(p *parser.SelectParser) error {
	//		// accept UNION ALL of a second SELECT here
	//		return nil
	//	}
	Dialect interface {
		// Name is the identifier used in configuration files.
		Name() string

		// Keywords are reserved on top of the common keyword set, so they
		// are never taken for implicit aliases.
		Keywords() []string

		// HasDistinctOn reports whether DISTINCT may be followed by ON (...).
		HasDistinctOn() bool

		// QueryRest runs after GROUP BY / HAVING and before ORDER BY.
		QueryRest(p *SelectParser) error

		// CustomizedSelect runs last, after ORDER BY, for clauses such as
		// LIMIT, OFFSET, FETCH or locking reads.
		CustomizedSelect(p *SelectParser) error
	}

	// BaseDialect implements the default hooks: no extra keywords, no
	// DISTINCT ON, set operators rejected and nothing after ORDER BY.
	BaseDialect struct{}
)

func (BaseDialect) Name() string        { return "sql92" }
func (BaseDialect) Keywords() []string  { return nil }
func (BaseDialect) HasDistinctOn() bool { return false }

// QueryRest rejects top-level set operators.
func (BaseDialect) QueryRest(p *SelectParser) error {
	if tok := p.Lexer().Current(); tok.Is("UNION", "EXCEPT", "INTERSECT", "MINUS") {
		return &UnsupportedError{Token: tok}
	}
	return nil
}

func (BaseDialect) CustomizedSelect(*SelectParser) error { return nil }

var dialects = map[string]Dialect{
	"mysql":      MySQL{},
	"postgresql": PostgreSQL{},
	"postgres":   PostgreSQL{},
	"oracle":     Oracle{},
	"sql92":      BaseDialect{},
}

// LookupDialect returns the dialect registered under name, ignoring case.
func LookupDialect(name string) (Dialect, error) {
	d, ok := dialects[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown dialect %q (supported: %s)", name, strings.Join(Dialects(), ", "))
	}
	return d, nil
}

// Dialects returns the registered dialect names in sorted order.
func Dialects() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultDialect returns the dialect used when none is configured.
func DefaultDialect() Dialect {
	d, _ := LookupDialect(consts.DefaultDialect)
	return d
}

// parseLimitValue reads a row count or offset, either a literal or a bind
// parameter. It returns the literal value and the parameter index, one of
// which is -1.
func parseLimitValue(p *SelectParser) (int, int, error) {
	tok := p.Lexer().Current()
	switch tok.Kind {
	case lexer.Number:
		value, err := strconv.Atoi(tok.Literal)
		if err != nil {
			return -1, -1, syntaxError("integer", tok)
		}
		p.Lexer().Next()
		return value, query.NoParameter, nil
	case lexer.Placeholder:
		p.Lexer().Next()
		return -1, p.Expressions().NextParameter(), nil
	default:
		return -1, -1, syntaxError("row count", tok)
	}
}

// limit returns the limit of the statement, creating it on first use.
func limit(p *SelectParser) *query.Limit {
	ctx := p.Context()
	if ctx.Limit == nil {
		ctx.Limit = query.NewLimit()
	}
	return ctx.Limit
}

// setOffset stores an offset read by parseLimitValue.
func setOffset(p *SelectParser, value, param int) {
	l := limit(p)
	l.OffsetParameterIndex = param
	if param == query.NoParameter {
		l.Offset = value
	}
}

func setRowCount(p *SelectParser, value, param int) {
	l := limit(p)
	l.RowCountParameterIndex = param
	if param == query.NoParameter {
		l.RowCount = value
	}
}
