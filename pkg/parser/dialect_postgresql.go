package parser

import "github.com/pseudomuto/shardkeeper/pkg/query"

// PostgreSQL supports DISTINCT ON, LIMIT / OFFSET in either order, the
// standard OFFSET ... FETCH form and row locking clauses.
type PostgreSQL struct{ BaseDialect }

func (PostgreSQL) Name() string        { return "postgresql" }
func (PostgreSQL) HasDistinctOn() bool { return true }

func (PostgreSQL) Keywords() []string {
	return []string{"FETCH"}
}

func (PostgreSQL) CustomizedSelect(p *SelectParser) error {
	exprs := p.Expressions()

	for {
		switch {
		case exprs.SkipIfEqual("LIMIT"):
			if exprs.SkipIfEqual("ALL") {
				continue
			}

			value, param, err := parseLimitValue(p)
			if err != nil {
				return err
			}
			setRowCount(p, value, param)
		case exprs.EqualAny("OFFSET", "FETCH"):
			if err := parseOffsetFetch(p); err != nil {
				return err
			}
		case exprs.SkipIfEqual("FOR"):
			return parseLockingClause(p)
		default:
			return nil
		}
	}
}

// parseLockingClause parses the rest of FOR UPDATE | NO KEY UPDATE | SHARE |
// KEY SHARE [OF table, ...] [NOWAIT | SKIP LOCKED].
func parseLockingClause(p *SelectParser) error {
	exprs := p.Expressions()

	switch {
	case exprs.SkipIfEqual("UPDATE", "SHARE"):
	case exprs.SkipIfEqual("NO"):
		if err := exprs.Accept("KEY"); err != nil {
			return err
		}
		if err := exprs.Accept("UPDATE"); err != nil {
			return err
		}
	case exprs.SkipIfEqual("KEY"):
		if err := exprs.Accept("SHARE"); err != nil {
			return err
		}
	default:
		return syntaxError("UPDATE", p.Lexer().Current())
	}

	if exprs.SkipIfEqual("OF") {
		for {
			if tok := p.Lexer().Current(); !tok.IsIdentifier() {
				return syntaxError("table name", tok)
			}
			p.Lexer().Next()

			if !exprs.SkipIfEqual(",") {
				break
			}
		}
	}

	if exprs.SkipIfEqual("SKIP") {
		return exprs.Accept("LOCKED")
	}
	exprs.SkipIfEqual("NOWAIT")
	return nil
}

// parseOffsetFetch parses OFFSET n [ROW|ROWS] and
// FETCH FIRST|NEXT [n] ROW|ROWS ONLY, in that order, each optional.
func parseOffsetFetch(p *SelectParser) error {
	exprs := p.Expressions()

	if exprs.SkipIfEqual("OFFSET") {
		value, param, err := parseLimitValue(p)
		if err != nil {
			return err
		}
		setOffset(p, value, param)
		exprs.SkipIfEqual("ROW", "ROWS")
	}

	if !exprs.SkipIfEqual("FETCH") {
		return nil
	}

	if !exprs.SkipIfEqual("FIRST", "NEXT") {
		return syntaxError("FIRST", p.Lexer().Current())
	}

	// FETCH FIRST ROW ONLY means one row
	if exprs.EqualAny("ROW", "ROWS") {
		setRowCount(p, 1, query.NoParameter)
	} else {
		value, param, err := parseLimitValue(p)
		if err != nil {
			return err
		}
		setRowCount(p, value, param)
	}

	if !exprs.SkipIfEqual("ROW", "ROWS") {
		return syntaxError("ROWS", p.Lexer().Current())
	}
	return exprs.Accept("ONLY")
}
