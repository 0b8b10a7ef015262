package query

import "strings"

type (
	// SelectItem is one projection of the select list.
	SelectItem interface {
		// Expression returns the source text of the projection, without alias.
		Expression() string
		// Alias returns the alias of the projection, or nil when it has none.
		Alias() *string
		// Index returns the 1-based position in the select list. Derived items
		// that do not appear in the client's select list return -1.
		Index() int
	}

	// CommonSelectItem is any projection that is not a bare aggregation.
	CommonSelectItem struct {
		Expr     string  `json:"expression" yaml:"expression"`
		As       *string `json:"alias,omitempty" yaml:"alias,omitempty"`
		Position int     `json:"index" yaml:"index"`
		// Star is set for * and owner.* projections.
		Star bool `json:"star,omitempty" yaml:"star,omitempty"`
	}

	// AggregationSelectItem is a projection that consists of one aggregate
	// function call, e.g. AVG(price).
	AggregationSelectItem struct {
		Type AggregationType `json:"type" yaml:"type"`
		// InnerExpression is the parenthesized argument list, e.g. "(price)".
		InnerExpression string  `json:"inner_expression" yaml:"inner_expression"`
		As              *string `json:"alias,omitempty" yaml:"alias,omitempty"`
		Position        int     `json:"index" yaml:"index"`
		// Derived holds the COUNT and SUM columns that replace an AVG when
		// results from several shards are merged. Empty for other types.
		Derived []*AggregationSelectItem `json:"derived,omitempty" yaml:"derived,omitempty"`
	}

	// AggregationType enumerates the aggregate functions the merge layer
	// knows how to combine.
	AggregationType string
)

const (
	Count AggregationType = "COUNT"
	Sum   AggregationType = "SUM"
	Avg   AggregationType = "AVG"
	Min   AggregationType = "MIN"
	Max   AggregationType = "MAX"
)

// ParseAggregationType maps a function name onto an aggregation type.
func ParseAggregationType(name string) (AggregationType, bool) {
	switch t := AggregationType(strings.ToUpper(name)); t {
	case Count, Sum, Avg, Min, Max:
		return t, true
	default:
		return "", false
	}
}

func (i *CommonSelectItem) Expression() string { return i.Expr }
func (i *CommonSelectItem) Alias() *string     { return i.As }
func (i *CommonSelectItem) Index() int         { return i.Position }

// Expression returns the full call, e.g. "AVG(price)".
func (i *AggregationSelectItem) Expression() string {
	return string(i.Type) + i.InnerExpression
}

func (i *AggregationSelectItem) Alias() *string { return i.As }
func (i *AggregationSelectItem) Index() int     { return i.Position }

// Fragment renders the item as it is spliced into the select list of a
// rewritten statement, e.g. "COUNT(price) AS sharding_gen_1".
func (i *AggregationSelectItem) Fragment() string {
	if i.As == nil {
		return i.Expression()
	}
	return i.Expression() + " AS " + *i.As
}
