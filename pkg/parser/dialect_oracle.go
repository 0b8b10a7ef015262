package parser

// Oracle supports OFFSET ... FETCH and FOR UPDATE [OF ...] with NOWAIT,
// WAIT n or SKIP LOCKED.
type Oracle struct{ BaseDialect }

func (Oracle) Name() string { return "oracle" }

func (Oracle) Keywords() []string {
	return []string{"FETCH", "CONNECT", "START"}
}

func (Oracle) CustomizedSelect(p *SelectParser) error {
	exprs := p.Expressions()

	if err := parseOffsetFetch(p); err != nil {
		return err
	}

	if !exprs.SkipIfEqual("FOR") {
		return nil
	}

	if err := exprs.Accept("UPDATE"); err != nil {
		return err
	}

	if exprs.SkipIfEqual("OF") {
		for {
			if _, err := exprs.ParseExpression(); err != nil {
				return err
			}
			if !exprs.SkipIfEqual(",") {
				break
			}
		}
	}

	switch {
	case exprs.SkipIfEqual("WAIT"):
		_, _, err := parseLimitValue(p)
		return err
	case exprs.SkipIfEqual("SKIP"):
		return exprs.Accept("LOCKED")
	default:
		exprs.SkipIfEqual("NOWAIT")
		return nil
	}
}
