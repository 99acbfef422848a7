package library

import (
	"database/sql"
	"regexp"
	"sync"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// sqliteDriverName is the database/sql driver used by the LocalLibrary. It is
// the go-sqlite3 driver with a REGEXP function installed for every connection.
const sqliteDriverName = "sqlite3_following"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("regexp", sqlRegexp, true)
		},
	})
}

const maxCachedPatterns = 128

var (
	patternsLock sync.Mutex
	patterns     = make(map[string]*regexp.Regexp)
)

// sqlRegexp implements `value REGEXP pattern` for SQLite. SQLite calls the
// function with the pattern as the first argument.
func sqlRegexp(pattern, value string) (bool, error) {
	patternsLock.Lock()
	re, ok := patterns[pattern]
	patternsLock.Unlock()

	if !ok {
		var err error
		re, err = regexp.Compile(pattern)
		if err != nil {
			return false, err
		}

		patternsLock.Lock()
		if len(patterns) >= maxCachedPatterns {
			patterns = make(map[string]*regexp.Regexp)
		}
		patterns[pattern] = re
		patternsLock.Unlock()
	}

	return re.MatchString(value), nil
}
