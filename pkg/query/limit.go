package query

// NoParameter marks a limit value written as a literal rather than a bind
// parameter.
const NoParameter = -1

// Limit is the row window requested by a dialect specific LIMIT, OFFSET or
// FETCH clause. A value bound through a parameter keeps its default (0 for
// the offset, -1 for the row count) and records the parameter index instead.
type Limit struct {
	Offset                 int `json:"offset" yaml:"offset"`
	RowCount               int `json:"row_count" yaml:"row_count"`
	OffsetParameterIndex   int `json:"offset_parameter_index" yaml:"offset_parameter_index"`
	RowCountParameterIndex int `json:"row_count_parameter_index" yaml:"row_count_parameter_index"`
}

// NewLimit returns a limit with no parameters bound.
func NewLimit() *Limit {
	return &Limit{
		RowCount:               -1,
		OffsetParameterIndex:   NoParameter,
		RowCountParameterIndex: NoParameter,
	}
}

// HasRowCount reports whether the statement limits the number of rows.
func (l *Limit) HasRowCount() bool {
	return l.RowCount >= 0 || l.RowCountParameterIndex != NoParameter
}
