package core

// QueryGenerator defines the interface for producing a SQL statement
// from a declarative set of query properties.
type QueryGenerator interface {
	// Generate creates the SQL text for the given table and query
	// properties. Pass NoLimit to omit the LIMIT clause.
	Generate(table string, props *QueryProperties, rowLimit int) (string, error)
}

// Builder implements QueryGenerator on top of the package-level
// builder functions.
type Builder struct{}

// NewBuilder creates a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Generate implements the QueryGenerator interface.
func (b *Builder) Generate(table string, props *QueryProperties, rowLimit int) (string, error) {
	return BuildQuery(table, props, rowLimit)
}
