package testsupport

import (
	"database/sql"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a private in-memory SQLite database. Each call gets
// its own named database so tests do not see each other's rows.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file:lnkmx-"+uuid.NewString()+"?mode=memory&cache=shared")
}
