package query

type (
	// Token is a text edit anchored at a byte offset of the original SQL.
	// Tokens are produced once and never modified; the rewriter applies them
	// against the original text in offset order.
	Token interface {
		Position() int
	}

	// ItemsToken lists select items to append to the select list. There is at
	// most one per statement, anchored at the end of the select list.
	ItemsToken struct {
		BeginPosition int      `json:"begin_position" yaml:"begin_position"`
		Items         []string `json:"items" yaml:"items"`
	}

	// TableToken marks one lexical occurrence of a table name so the rewriter
	// can substitute the physical table at that exact offset.
	TableToken struct {
		BeginPosition int `json:"begin_position" yaml:"begin_position"`
		// Original is the literal as written; the rewriter replaces
		// len(Original) bytes.
		Original string `json:"original" yaml:"original"`
		// TableName is the quote-stripped logical table name.
		TableName string `json:"table_name" yaml:"table_name"`
	}
)

// NewItemsToken creates an empty items token anchored at position.
func NewItemsToken(position int) *ItemsToken {
	return &ItemsToken{BeginPosition: position, Items: []string{}}
}

func (t *ItemsToken) Position() int { return t.BeginPosition }
func (t *TableToken) Position() int { return t.BeginPosition }

// End returns the offset just past the table name being replaced.
func (t *TableToken) End() int {
	return t.BeginPosition + len(t.Original)
}
