package query

// Table is one table referenced by the FROM clause or a JOIN.
type Table struct {
	// Original is the name exactly as written, quotes included.
	Original string `json:"original" yaml:"original"`
	// Name is Original with identifier quotes removed.
	Name  string  `json:"name" yaml:"name"`
	Alias *string `json:"alias,omitempty" yaml:"alias,omitempty"`
}
