package parser

// MySQL supports LIMIT [offset,] count, LIMIT count OFFSET offset and the
// FOR UPDATE and LOCK IN SHARE MODE locking reads.
type MySQL struct{ BaseDialect }

func (MySQL) Name() string { return "mysql" }

func (MySQL) Keywords() []string {
	return []string{"STRAIGHT_JOIN", "LOCK"}
}

func (MySQL) CustomizedSelect(p *SelectParser) error {
	exprs := p.Expressions()

	if exprs.SkipIfEqual("LIMIT") {
		value, param, err := parseLimitValue(p)
		if err != nil {
			return err
		}

		switch {
		case exprs.SkipIfEqual(","):
			setOffset(p, value, param)
			value, param, err = parseLimitValue(p)
			if err != nil {
				return err
			}
			setRowCount(p, value, param)
		case exprs.SkipIfEqual("OFFSET"):
			setRowCount(p, value, param)
			value, param, err = parseLimitValue(p)
			if err != nil {
				return err
			}
			setOffset(p, value, param)
		default:
			setRowCount(p, value, param)
		}
	}

	switch {
	case exprs.SkipIfEqual("FOR"):
		return exprs.Accept("UPDATE")
	case exprs.SkipIfEqual("LOCK"):
		for _, kw := range []string{"IN", "SHARE", "MODE"} {
			if err := exprs.Accept(kw); err != nil {
				return err
			}
		}
	}

	return nil
}
