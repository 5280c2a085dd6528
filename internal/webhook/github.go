package webhook

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GitHub issue actions.
const (
	ActionOpened   = "opened"
	ActionClosed   = "closed"
	ActionReopened = "reopened"
	ActionMerged   = "merged"
)

type GitHubUser struct {
	Login string `json:"login"`
}

type GitHubRepository struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
}

type GitHubIssue struct {
	ID      int64      `json:"id"`
	Number  int        `json:"number"`
	Title   string     `json:"title"`
	Body    string     `json:"body"`
	HTMLURL string     `json:"html_url"`
	State   string     `json:"state"`
	User    GitHubUser `json:"user"`
}

// ExternalID is the provider-stable id used for links.
func (i GitHubIssue) ExternalID() string {
	return strconv.FormatInt(i.ID, 10)
}

// IssuesEvent is the payload of X-GitHub-Event: issues.
type IssuesEvent struct {
	Action     string            `json:"action"`
	Issue      *GitHubIssue      `json:"issue"`
	Repository *GitHubRepository `json:"repository"`
	Sender     GitHubUser        `json:"sender"`
}

// Validate checks the shape every issues delivery carries, whatever the action.
func (e IssuesEvent) Validate() error {
	if e.Action == "" {
		return errors.New("action is required")
	}
	if e.Issue == nil {
		return errors.New("issue is required")
	}
	if e.Issue.ID == 0 {
		return errors.New("issue.id is required")
	}
	if e.Issue.Number <= 0 {
		return errors.New("issue.number is required")
	}
	if err := validateRepository(e.Repository); err != nil {
		return err
	}
	if e.Action == ActionOpened && strings.TrimSpace(e.Issue.Title) == "" {
		return errors.New("issue.title is required")
	}
	return nil
}

type GitHubBranch struct {
	Ref string `json:"ref"`
	SHA string `json:"sha"`
}

type GitHubPullRequest struct {
	ID      int64        `json:"id"`
	Number  int          `json:"number"`
	Title   string       `json:"title"`
	Body    string       `json:"body"`
	HTMLURL string       `json:"html_url"`
	State   string       `json:"state"`
	Merged  bool         `json:"merged"`
	Head    GitHubBranch `json:"head"`
	User    GitHubUser   `json:"user"`
}

// PullRequestEvent is the payload of X-GitHub-Event: pull_request.
type PullRequestEvent struct {
	Action      string             `json:"action"`
	Number      int                `json:"number"`
	PullRequest *GitHubPullRequest `json:"pull_request"`
	Repository  *GitHubRepository  `json:"repository"`
}

// EffectiveAction folds "closed" with merged=true into "merged".
func (e PullRequestEvent) EffectiveAction() string {
	if e.Action == ActionClosed && e.PullRequest != nil && e.PullRequest.Merged {
		return ActionMerged
	}
	return e.Action
}

// PRNumber prefers the top-level number GitHub always sends.
func (e PullRequestEvent) PRNumber() int {
	if e.Number > 0 || e.PullRequest == nil {
		return e.Number
	}
	return e.PullRequest.Number
}

func (e PullRequestEvent) Validate() error {
	if e.Action == "" {
		return errors.New("action is required")
	}
	if e.PullRequest == nil {
		return errors.New("pull_request is required")
	}
	if e.PRNumber() <= 0 {
		return errors.New("pull request number is required")
	}
	if err := validateRepository(e.Repository); err != nil {
		return err
	}
	switch e.EffectiveAction() {
	case ActionOpened, ActionClosed, ActionMerged:
		if e.PullRequest.HTMLURL == "" {
			return errors.New("pull_request.html_url is required")
		}
	}
	return nil
}

type GitHubCommitAuthor struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type GitHubCommit struct {
	ID        string             `json:"id"`
	Message   string             `json:"message"`
	Timestamp string             `json:"timestamp"`
	URL       string             `json:"url"`
	Author    GitHubCommitAuthor `json:"author"`
}

// Time parses the commit timestamp, falling back to fallback when absent or malformed.
func (c GitHubCommit) Time(fallback time.Time) time.Time {
	if t, err := time.Parse(time.RFC3339, c.Timestamp); err == nil {
		return t
	}
	return fallback
}

// PushEvent is the payload of X-GitHub-Event: push.
type PushEvent struct {
	Ref        string            `json:"ref"`
	Before     string            `json:"before"`
	After      string            `json:"after"`
	Commits    []GitHubCommit    `json:"commits"`
	Repository *GitHubRepository `json:"repository"`
	Pusher     GitHubUser        `json:"pusher"`
}

// Branch strips refs/heads/ from Ref.
func (e PushEvent) Branch() string {
	return strings.TrimPrefix(e.Ref, "refs/heads/")
}

func (e PushEvent) Validate() error {
	if err := validateRepository(e.Repository); err != nil {
		return err
	}
	for i, c := range e.Commits {
		if c.ID == "" {
			return fmt.Errorf("commits[%d].id is required", i)
		}
	}
	return nil
}

func validateRepository(r *GitHubRepository) error {
	if r == nil {
		return errors.New("repository is required")
	}
	if strings.TrimSpace(r.FullName) == "" {
		return errors.New("repository.full_name is required")
	}
	return nil
}

type validator interface {
	Validate() error
}

// decodeEvent unmarshals and validates a payload into T.
func decodeEvent[T validator](payload []byte) (T, error) {
	var event T
	if err := json.Unmarshal(payload, &event); err != nil {
		return event, fmt.Errorf("decode payload: %w", err)
	}
	if err := event.Validate(); err != nil {
		return event, fmt.Errorf("invalid payload: %w", err)
	}
	return event, nil
}

func ParseIssuesEvent(payload []byte) (IssuesEvent, error) {
	return decodeEvent[IssuesEvent](payload)
}

func ParsePullRequestEvent(payload []byte) (PullRequestEvent, error) {
	return decodeEvent[PullRequestEvent](payload)
}

func ParsePushEvent(payload []byte) (PushEvent, error) {
	return decodeEvent[PushEvent](payload)
}
