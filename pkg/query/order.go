package query

type (
	// OrderDirection is the sort direction of an ORDER BY or GROUP BY item.
	OrderDirection string

	// OrderItem is one ORDER BY or GROUP BY item. Exactly one of Index and
	// Name is set: an item either references a select list position or names
	// a (possibly qualified) column.
	OrderItem struct {
		Index     *int           `json:"index,omitempty" yaml:"index,omitempty"`
		Owner     *string        `json:"owner,omitempty" yaml:"owner,omitempty"`
		Name      *string        `json:"name,omitempty" yaml:"name,omitempty"`
		Direction OrderDirection `json:"direction" yaml:"direction"`
		// Alias is the select list alias the merge layer reads the value
		// from. It is nil for ordinals, under SELECT * and when the matching
		// projection has no alias.
		Alias *string `json:"alias,omitempty" yaml:"alias,omitempty"`
	}
)

const (
	Asc  OrderDirection = "ASC"
	Desc OrderDirection = "DESC"
)

// NewOrdinalItem creates an item referencing a 1-based select list position.
func NewOrdinalItem(index int, direction OrderDirection) *OrderItem {
	return &OrderItem{Index: &index, Direction: direction}
}

// NewNamedItem creates an item referencing a column, optionally qualified by
// a table name or alias.
func NewNamedItem(owner *string, name string, direction OrderDirection) *OrderItem {
	return &OrderItem{Owner: owner, Name: &name, Direction: direction}
}

// IsOrdinal reports whether the item references a select list position.
func (o *OrderItem) IsOrdinal() bool {
	return o.Index != nil
}

// QualifiedName returns "owner.name", "name", or "" for ordinals.
func (o *OrderItem) QualifiedName() string {
	switch {
	case o.Name == nil:
		return ""
	case o.Owner != nil:
		return *o.Owner + "." + *o.Name
	default:
		return *o.Name
	}
}
