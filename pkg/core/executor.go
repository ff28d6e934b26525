package core

import "context"

// Row represents a single record retrieved from the database, keyed
// by column name or alias.
type Row map[string]any

// QueryResult holds the rows produced by one executed query.
type QueryResult struct {
	Rows []Row `json:"rows"`
}

// QueryExecutor defines the interface for running a query described
// by QueryProperties against a backing database.
type QueryExecutor interface {
	// Query generates the SQL for props and executes it against
	// table, returning the materialized rows. Pass NoLimit to omit
	// the LIMIT clause.
	Query(ctx context.Context, table string, props *QueryProperties, rowLimit int) (*QueryResult, error)
}
