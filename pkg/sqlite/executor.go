package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/explorekit/sqlgen/pkg/core"
)

// Executor implements the core.QueryExecutor interface for SQLite
// databases.
type Executor struct {
	db        *sql.DB
	generator core.QueryGenerator
	logger    *zap.Logger
}

// NewExecutor creates an Executor. A nil generator falls back to the
// core query builder; a nil logger discards output.
func NewExecutor(db *sql.DB, generator core.QueryGenerator, logger *zap.Logger) *Executor {
	if generator == nil {
		generator = core.NewBuilder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		db:        db,
		generator: generator,
		logger:    logger,
	}
}

// Query generates the SQL for props and executes it against table.
func (e *Executor) Query(ctx context.Context, table string, props *core.QueryProperties, rowLimit int) (*core.QueryResult, error) {
	query, err := e.generator.Generate(table, props, rowLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query: %w", err)
	}
	e.logger.Debug("executing query", zap.String("table", table), zap.String("sql", query))

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	results, err := readRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	e.logger.Debug("query complete", zap.Int("rows", len(results)))

	return &core.QueryResult{Rows: results}, nil
}

// readRows reads all rows from a sql.Rows result and converts them
// into a slice of Row maps keyed by column name.
func readRows(rows *sql.Rows) ([]core.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var results []core.Row
	for rows.Next() {
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(core.Row, len(columns))
		for i, col := range columns {
			val := values[i]
			// database/sql returns []byte for TEXT columns by default.
			if byteVal, ok := val.([]byte); ok {
				row[col] = string(byteVal)
			} else {
				row[col] = val
			}
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
