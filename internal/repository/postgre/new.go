package postgre

import (
	"database/sql"
	"fmt"

	"gig-copilot/internal/repository"
	"gig-copilot/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a PostgreSQL-backed Repository. The schema lives in migrations/.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("repository/postgre.%s", method)
}
