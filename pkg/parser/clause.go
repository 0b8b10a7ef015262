package parser

import (
	"strings"

	"github.com/pseudomuto/shardkeeper/pkg/query"
	"github.com/pseudomuto/shardkeeper/pkg/utils"
)

// parseOrderBy parses ORDER [SIBLINGS] BY items into ctx.OrderBy.
func (p *SelectParser) parseOrderBy() error {
	if !p.exprs.SkipIfEqual("ORDER") {
		return nil
	}

	p.exprs.SkipIfEqual("SIBLINGS")
	if err := p.exprs.Accept("BY"); err != nil {
		return err
	}

	items, err := p.parseOrderItems()
	if err != nil {
		return err
	}

	p.ctx.OrderBy = append(p.ctx.OrderBy, items...)
	return nil
}

// parseGroupBy parses GROUP BY items [WITH ROLLUP] followed by an optional
// HAVING clause. HAVING without GROUP BY is accepted as well.
func (p *SelectParser) parseGroupBy() error {
	if p.exprs.SkipIfEqual("GROUP") {
		if err := p.exprs.Accept("BY"); err != nil {
			return err
		}

		items, err := p.parseOrderItems()
		if err != nil {
			return err
		}
		p.ctx.GroupBy = append(p.ctx.GroupBy, items...)

		for p.exprs.SkipIfEqual("WITH", "ROLLUP") {
		}
	}

	if p.exprs.SkipIfEqual("HAVING") {
		if _, err := p.exprs.ParseCondition(); err != nil {
			return err
		}
	}

	return nil
}

func (p *SelectParser) parseOrderItems() ([]*query.OrderItem, error) {
	var items []*query.OrderItem
	for {
		item, err := p.parseOrderItem()
		if err != nil {
			return nil, err
		}

		// expressions that are neither positions nor columns are dropped
		if item != nil {
			items = append(items, item)
		}

		if !p.exprs.SkipIfEqual(",") {
			return items, nil
		}
	}
}

// parseOrderItem parses one item and resolves it against the select list.
// It returns nil for items that cannot be represented.
func (p *SelectParser) parseOrderItem() (*query.OrderItem, error) {
	expr, err := p.exprs.ParseExpression()
	if err != nil {
		return nil, err
	}

	direction := p.parseDirection()

	var item *query.OrderItem
	switch e := expr.(type) {
	case *NumberExpr:
		index, ok := e.Int()
		if !ok {
			return nil, nil
		}
		return query.NewOrdinalItem(index, direction), nil
	case *IdentifierExpr:
		item = query.NewNamedItem(nil, utils.ExactlyValue(e.Name), direction)
	case *PropertyExpr:
		owner := utils.ExactlyValue(e.Owner.Name)
		item = query.NewNamedItem(&owner, utils.ExactlyValue(e.Name), direction)
	default:
		return nil, nil
	}

	p.resolveAlias(item, expr.Text())
	return item, nil
}

// parseDirection consumes ASC or DESC (default ASC) and a trailing
// NULLS FIRST|LAST, which does not affect merging.
func (p *SelectParser) parseDirection() query.OrderDirection {
	direction := query.Asc
	if p.exprs.SkipIfEqual("DESC") {
		direction = query.Desc
	} else {
		p.exprs.SkipIfEqual("ASC")
	}

	if p.exprs.SkipIfEqual("NULLS") {
		p.exprs.SkipIfEqual("FIRST", "LAST")
	}

	return direction
}

// resolveAlias finds the select list column an item reads from. Under
// SELECT * every column is already projected. A column that is not projected
// is added to the items token under a generated alias; source is the item as
// written so quoted names stay valid in the rewritten statement.
func (p *SelectParser) resolveAlias(item *query.OrderItem, source string) {
	if p.ctx.ContainStar {
		return
	}

	name := item.QualifiedName()
	if found := p.ctx.FindItem(name); found != nil {
		item.Alias = found.Alias()
		return
	}

	key := strings.ToLower(name)
	if alias, ok := p.derivedColumns[key]; ok {
		item.Alias = utils.Ptr(alias)
		return
	}

	alias := p.generateDerivedColumnAlias()
	p.derivedColumns[key] = alias
	item.Alias = utils.Ptr(alias)
	p.addDerivedItem(source + " AS " + alias)
}
