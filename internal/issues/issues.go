// Package issues mirrors open gap notes as GitHub issues.
package issues

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/go-github/v68/github"
	"github.com/zulandar/portfolio/internal/portfolio"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const maxTitleLen = 120

// issueCreator is the subset of the GitHub issues API the syncer needs.
type issueCreator interface {
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

// NewClient returns a GitHub client. An empty token gives an anonymous
// client, which can read but not open issues.
func NewClient(ctx context.Context, token string) *github.Client {
	var hc *http.Client
	if token != "" {
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	return github.NewClient(hc)
}

// Opts configures a Syncer.
type Opts struct {
	Owner  string
	Repo   string
	Labels []string
	Logger *zap.Logger
	// Issues overrides the API client, for tests.
	Issues issueCreator
}

// Syncer opens one issue per unlinked gap note.
type Syncer struct {
	svc    *portfolio.Service
	issues issueCreator
	owner  string
	repo   string
	labels []string
	log    *zap.Logger
}

// NewSyncer creates a Syncer. client is used unless opts.Issues is set.
func NewSyncer(svc *portfolio.Service, client *github.Client, opts Opts) (*Syncer, error) {
	if svc == nil {
		return nil, fmt.Errorf("issues: service is required")
	}
	if opts.Owner == "" || opts.Repo == "" {
		return nil, fmt.Errorf("issues: owner and repo are required")
	}
	creator := opts.Issues
	if creator == nil {
		if client == nil {
			return nil, fmt.Errorf("issues: github client is required")
		}
		creator = client.Issues
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Syncer{
		svc:    svc,
		issues: creator,
		owner:  opts.Owner,
		repo:   opts.Repo,
		labels: opts.Labels,
		log:    log,
	}, nil
}

// Created records one opened issue.
type Created struct {
	NoteID  uint   `json:"note_id"`
	Project string `json:"project"`
	URL     string `json:"url"`
}

// Result summarizes a sync run.
type Result struct {
	Created []Created `json:"created"`
	Skipped int       `json:"skipped"`
}

// Sync opens an issue for every open gap whose note has no link yet and
// stores the issue URL on the note, so a second run creates nothing. One
// failing gap does not stop the others; failures are returned joined.
func (s *Syncer) Sync(ctx context.Context) (Result, error) {
	var res Result
	var errs []error

	for _, g := range s.svc.Gaps(ctx) {
		if g.Note.LinkURL != "" {
			res.Skipped++
			continue
		}

		req := &github.IssueRequest{
			Title: github.Ptr(issueTitle(g)),
			Body:  github.Ptr(issueBody(g)),
		}
		if len(s.labels) > 0 {
			labels := append([]string(nil), s.labels...)
			req.Labels = &labels
		}

		issue, _, err := s.issues.Create(ctx, s.owner, s.repo, req)
		if err != nil {
			s.log.Warn("gap issue not created", zap.Uint("note_id", g.Note.ID), zap.Error(err))
			errs = append(errs, fmt.Errorf("note %d: %w", g.Note.ID, err))
			continue
		}

		url := issue.GetHTMLURL()
		if _, err := s.svc.SetNoteLink(ctx, g.Note, url); err != nil {
			errs = append(errs, fmt.Errorf("note %d: %w", g.Note.ID, err))
			continue
		}
		s.log.Info("gap issue created",
			zap.Uint("note_id", g.Note.ID),
			zap.String("project", g.ProjectName),
			zap.String("url", url))
		res.Created = append(res.Created, Created{NoteID: g.Note.ID, Project: g.ProjectName, URL: url})
	}

	if err := errors.Join(errs...); err != nil {
		return res, fmt.Errorf("issues: sync: %w", err)
	}
	return res, nil
}

// issueTitle is "[Gap] <project>: <first line of the description>".
func issueTitle(g portfolio.GapAlert) string {
	line, _, _ := strings.Cut(strings.TrimSpace(g.Note.Description), "\n")
	title := fmt.Sprintf("[Gap] %s: %s", g.ProjectName, strings.TrimSpace(line))
	if utf8.RuneCountInString(title) > maxTitleLen {
		runes := []rune(title)
		title = string(runes[:maxTitleLen-1]) + "…"
	}
	return title
}

func issueBody(g portfolio.GapAlert) string {
	var b strings.Builder
	b.WriteString(g.Note.Description)
	b.WriteString("\n\n---\n")
	fmt.Fprintf(&b, "Projeto: %s (#%d)\n", g.ProjectName, g.ProjectID)
	fmt.Fprintf(&b, "Categoria: %s\n", g.Note.Category)
	fmt.Fprintf(&b, "Nota: #%d, registrada em %s\n", g.Note.ID, g.Note.CreatedAt.Format("02/01/2006"))
	return b.String()
}
