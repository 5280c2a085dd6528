package usecase

import (
	"context"
	"time"

	issueRepo "github.com/DarshanCode2005/gitmesh/internal/issue/repository"
	"github.com/DarshanCode2005/gitmesh/internal/model"
	"github.com/DarshanCode2005/gitmesh/internal/webhook"
	"github.com/DarshanCode2005/gitmesh/internal/webhook/repository"
	"github.com/DarshanCode2005/gitmesh/internal/workspace"
	"github.com/DarshanCode2005/gitmesh/pkg/log"
)

const defaultFinalizeTimeout = 5 * time.Second

// handlerFunc applies one event type to domain state.
type handlerFunc func(ctx context.Context, res model.Resolution, d model.Delivery) (webhook.Outcome, error)

// implUseCase is the private implementation of webhook.UseCase.
type implUseCase struct {
	l           log.Logger
	resolver    workspace.UseCase
	logRepo     repository.Repository
	issueRepo   issueRepo.Repository
	publisher   webhook.Publisher
	broadcaster webhook.Broadcaster
	signatures  webhook.SignaturePolicy
	dedupe      *webhook.DedupeCache
	opts        webhook.Options
	handlers    map[model.EventType]handlerFunc
}

// New creates a new webhook UseCase. publisher and broadcaster may be nil.
func New(
	l log.Logger,
	resolver workspace.UseCase,
	logRepo repository.Repository,
	issues issueRepo.Repository,
	publisher webhook.Publisher,
	broadcaster webhook.Broadcaster,
	opts webhook.Options,
) *implUseCase {
	if opts.FinalizeTimeout <= 0 {
		opts.FinalizeTimeout = defaultFinalizeTimeout
	}

	uc := &implUseCase{
		l:           l,
		resolver:    resolver,
		logRepo:     logRepo,
		issueRepo:   issues,
		publisher:   publisher,
		broadcaster: broadcaster,
		signatures:  webhook.SignaturePolicy{Require: opts.RequireSignature},
		dedupe:      webhook.NewDedupeCache(opts.Dedupe),
		opts:        opts,
	}
	uc.handlers = map[model.EventType]handlerFunc{
		model.EventIssues:      uc.handleIssues,
		model.EventPullRequest: uc.handlePullRequest,
		model.EventPush:        uc.handlePush,
		model.EventPing:        uc.handlePing,
	}
	return uc
}
