package query

import "github.com/pseudomuto/shardkeeper/pkg/utils"

// SelectContext is the parse result of one SELECT statement: what the query
// projects, reads, sorts and groups by, plus the rewrite tokens needed to run
// it against sharded tables.
//
// A SelectContext is filled in during a single parse and must be treated as
// read-only once the parser returns it.
type SelectContext struct {
	// SQL is the original statement text that all token offsets refer to.
	SQL string `json:"sql" yaml:"sql"`

	Distinct    bool `json:"distinct" yaml:"distinct"`
	ContainStar bool `json:"contain_star" yaml:"contain_star"`

	Items   []SelectItem `json:"items" yaml:"items"`
	Tables  []*Table     `json:"tables" yaml:"tables"`
	OrderBy []*OrderItem `json:"order_by,omitempty" yaml:"order_by,omitempty"`
	GroupBy []*OrderItem `json:"group_by,omitempty" yaml:"group_by,omitempty"`
	Limit   *Limit       `json:"limit,omitempty" yaml:"limit,omitempty"`

	// SelectListEnd is the offset just past the last select item.
	SelectListEnd int `json:"select_list_end" yaml:"select_list_end"`

	Tokens []Token `json:"tokens" yaml:"tokens"`

	// ParametersIndex counts the bind parameters consumed so far.
	ParametersIndex int `json:"parameters_index" yaml:"parameters_index"`
}

// NewSelectContext creates an empty context for the given statement.
func NewSelectContext(sql string) *SelectContext {
	return &SelectContext{
		SQL:    sql,
		Items:  []SelectItem{},
		Tables: []*Table{},
		Tokens: []Token{},
	}
}

// AddToken appends a rewrite token.
func (c *SelectContext) AddToken(token Token) {
	c.Tokens = append(c.Tokens, token)
}

// ItemsToken returns the items token, or nil when no derived column is
// needed.
func (c *SelectContext) ItemsToken() *ItemsToken {
	for _, tok := range c.Tokens {
		if it, ok := tok.(*ItemsToken); ok {
			return it
		}
	}
	return nil
}

// TableTokens returns every table token in the order they were produced.
func (c *SelectContext) TableTokens() []*TableToken {
	var tokens []*TableToken
	for _, tok := range c.Tokens {
		if tt, ok := tok.(*TableToken); ok {
			tokens = append(tokens, tt)
		}
	}
	return tokens
}

// FindTable returns the table whose name matches, ignoring quotes and case.
func (c *SelectContext) FindTable(name string) *Table {
	for _, table := range c.Tables {
		if utils.EqualIdentifiers(table.Name, name) {
			return table
		}
	}
	return nil
}

// TableNames returns the logical table names in source order.
func (c *SelectContext) TableNames() []string {
	names := make([]string, len(c.Tables))
	for i, table := range c.Tables {
		names[i] = table.Name
	}
	return names
}

// FindItem returns the first select item whose expression or alias matches
// name, ignoring quotes and case.
func (c *SelectContext) FindItem(name string) SelectItem {
	for _, item := range c.Items {
		if utils.EqualIdentifiers(item.Expression(), name) {
			return item
		}
		if alias := item.Alias(); alias != nil && utils.EqualIdentifiers(*alias, name) {
			return item
		}
	}
	return nil
}

// AggregationItems returns the aggregation projections of the select list.
func (c *SelectContext) AggregationItems() []*AggregationSelectItem {
	var items []*AggregationSelectItem
	for _, item := range c.Items {
		if agg, ok := item.(*AggregationSelectItem); ok {
			items = append(items, agg)
		}
	}
	return items
}
