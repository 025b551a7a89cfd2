package search

// Query is a SQL translation of a free-form question: a fixed template with
// named bindings and a human-readable explanation of what was understood.
type Query struct {
	SQL      string         `json:"sql"`
	Bindings map[string]any `json:"bindings"`
	Explain  string         `json:"explain"`
}

// ISearchUsecase translates a free-form question into one of a handful of
// fixed SQL templates. Never fails; unknown questions map to a fallback.
type ISearchUsecase interface {
	ToSQL(q string) Query
}
