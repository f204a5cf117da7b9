package vcs

import (
	"strings"

	"github.com/Cyclone1070/devrelay/internal/config"
)

func defaultDir(dir string, cfg *config.Config) string {
	if dir == "" {
		return cfg.Actions.DefaultDir
	}
	return dir
}

// StatusRequest represents the parameters for a vcs-status operation.
type StatusRequest struct {
	Dir string `json:"dir"`
}

func (r *StatusRequest) Validate(cfg *config.Config) error {
	r.Dir = defaultDir(r.Dir, cfg)
	return nil
}

// Snapshot is the working tree status split into three buckets.
type Snapshot struct {
	Staged    []string `json:"staged"`
	Changed   []string `json:"changed"`
	Untracked []string `json:"untracked"`
	Raw       string   `json:"raw"`
}

// StageAllRequest represents the parameters for a vcs-stage-all operation.
type StageAllRequest struct {
	Dir string `json:"dir"`
}

func (r *StageAllRequest) Validate(cfg *config.Config) error {
	r.Dir = defaultDir(r.Dir, cfg)
	return nil
}

// StageAllResponse lists what is staged after staging everything.
type StageAllResponse struct {
	StagedCount int      `json:"staged_count"`
	Staged      []string `json:"staged"`
}

// CommitRequest represents the parameters for a vcs-commit operation.
type CommitRequest struct {
	Message string `json:"message"`
	Dir     string `json:"dir"`
}

func (r *CommitRequest) Validate(cfg *config.Config) error {
	if strings.TrimSpace(r.Message) == "" {
		return ErrMessageRequired
	}
	r.Dir = defaultDir(r.Dir, cfg)
	return nil
}

// CommitResponse carries the short hash of the new commit.
type CommitResponse struct {
	Commit string `json:"commit"`
}

// PushRequest represents the parameters for a vcs-push operation.
// An empty Branch pushes the current branch to its configured upstream.
type PushRequest struct {
	Remote string `json:"remote"`
	Branch string `json:"branch"`
	Dir    string `json:"dir"`
}

func (r *PushRequest) Validate(cfg *config.Config) error {
	if r.Remote == "" {
		r.Remote = cfg.VCS.DefaultRemote
	}
	r.Dir = defaultDir(r.Dir, cfg)
	return nil
}

// PushResponse carries the push output.
type PushResponse struct {
	Result string `json:"result"`
}

// OpenPRRequest represents the parameters for a vcs-open-pr operation.
type OpenPRRequest struct {
	Base  string `json:"base"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Dir   string `json:"dir"`
}

func (r *OpenPRRequest) Validate(cfg *config.Config) error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrTitleRequired
	}
	if r.Base == "" {
		r.Base = cfg.VCS.DefaultBase
	}
	r.Dir = defaultDir(r.Dir, cfg)
	return nil
}

// OpenPRResponse carries the hosting CLI output, normally the new PR URL.
type OpenPRResponse struct {
	PR string `json:"pr"`
}
