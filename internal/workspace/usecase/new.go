package usecase

import (
	"github.com/DarshanCode2005/gitmesh/internal/workspace/repository"
	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

// implUseCase is the private implementation of workspace.UseCase.
type implUseCase struct {
	repo repository.Repository
	l    log.Logger
}

// New creates a new workspace UseCase implementation.
func New(repo repository.Repository, l log.Logger) *implUseCase {
	return &implUseCase{
		repo: repo,
		l:    l,
	}
}
