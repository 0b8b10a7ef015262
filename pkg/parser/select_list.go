package parser

import "github.com/pseudomuto/shardkeeper/pkg/query"

// parseSelectList parses the comma separated projections, records where the
// list ends and decomposes every AVG into derived COUNT and SUM columns.
func (p *SelectParser) parseSelectList() error {
	for index := 1; ; index++ {
		item, err := p.exprs.ParseSelectItem(index)
		if err != nil {
			return err
		}

		if common, ok := item.(*query.CommonSelectItem); ok && common.Star {
			p.ctx.ContainStar = true
		}
		p.ctx.Items = append(p.ctx.Items, item)

		if !p.exprs.SkipIfEqual(",") {
			break
		}
	}

	p.ctx.SelectListEnd = p.lexer.LastEnd()

	// all client aliases are known now, so generated ones can avoid them
	for _, agg := range p.ctx.AggregationItems() {
		if agg.Type == query.Avg {
			p.deriveAvg(agg)
		}
	}

	return nil
}

// deriveAvg adds the COUNT and SUM columns the merge layer needs to compute
// an average across shards.
func (p *SelectParser) deriveAvg(avg *query.AggregationSelectItem) {
	for _, typ := range []query.AggregationType{query.Count, query.Sum} {
		alias := p.generateDerivedColumnAlias()
		derived := &query.AggregationSelectItem{
			Type:            typ,
			InnerExpression: avg.InnerExpression,
			As:              &alias,
			Position:        -1,
		}

		avg.Derived = append(avg.Derived, derived)
		p.addDerivedItem(derived.Fragment())
	}
}
