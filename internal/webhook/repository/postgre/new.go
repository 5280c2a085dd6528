package postgre

import (
	"fmt"

	"github.com/uptrace/bun"

	"github.com/DarshanCode2005/gitmesh/internal/webhook/repository"
	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

type implRepository struct {
	db *bun.DB
	l  log.Logger
}

// New creates a bun-backed webhook log Repository.
func New(db *bun.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("webhook/repository/postgre: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("webhook/repository/postgre.%s", method)
}
