package sqlite

import (
	"database/sql"
	"regexp"
	"sync"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver registered by this package.
// It is a stock SQLite driver with the REGEXP_EXTRACT function
// installed on every connection, which the metadata extraction
// expressions produced by the query builder rely on.
const DriverName = "sqlite3_sqlgen"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("REGEXP_EXTRACT", regexpExtract, true)
		},
	})
}

var (
	patternMu    sync.RWMutex
	patternCache = map[string]*regexp.Regexp{}
)

// regexpExtract backs the REGEXP_EXTRACT SQL function. It returns the
// first capture group of the first match of pattern in s, or the
// empty string when there is no match. Compiled patterns are cached
// since queries repeat the same expression per row.
func regexpExtract(s, pattern string) (string, error) {
	patternMu.RLock()
	re, ok := patternCache[pattern]
	patternMu.RUnlock()
	if !ok {
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			return "", err
		}
		patternMu.Lock()
		patternCache[pattern] = re
		patternMu.Unlock()
	}

	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return "", nil
	}
	return m[1], nil
}

// Open opens a SQLite database through DriverName.
func Open(dsn string) (*sql.DB, error) {
	return sql.Open(DriverName, dsn)
}
