package postgre

import (
	"fmt"

	"github.com/uptrace/bun"

	"github.com/DarshanCode2005/gitmesh/internal/issue/repository"
	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

type implRepository struct {
	db *bun.DB
	l  log.Logger
}

// New creates a bun-backed Repository for issues, links, pull requests and activity.
func New(db *bun.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("issue/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("issue/repository/postgre.%s", method)
}
