package usecase

import (
	"github.com/markclong/slack-archiver/pkg/domain/interfaces"
	"github.com/markclong/slack-archiver/pkg/service/fetch"
	"github.com/markclong/slack-archiver/pkg/service/slack"
	"github.com/markclong/slack-archiver/pkg/service/storage"
)

// DefaultExcludedSubTypes lists administrative message subtypes that
// are dropped from the archive.
var DefaultExcludedSubTypes = []string{"channel_join", "channel_leave"}

// UseCases drives one archive pass over a single channel.
type UseCases struct {
	repo    interfaces.Repository
	slack   slack.Service
	fetcher fetch.Fetcher
	dir     storage.Dir
	channel string

	fileToken string
	pageLimit int
	excluded  map[string]bool
}

type Option func(*UseCases)

// WithFetcher replaces the asset downloader.
func WithFetcher(f fetch.Fetcher) Option {
	return func(uc *UseCases) {
		uc.fetcher = f
	}
}

// WithFileToken sets the bearer token for private file downloads.
func WithFileToken(token string) Option {
	return func(uc *UseCases) {
		uc.fileToken = token
	}
}

// WithPageLimit overrides the page size for history and reply pagination.
func WithPageLimit(limit int) Option {
	return func(uc *UseCases) {
		uc.pageLimit = limit
	}
}

// WithExcludedSubTypes replaces the set of message subtypes dropped
// from the archive.
func WithExcludedSubTypes(subtypes []string) Option {
	return func(uc *UseCases) {
		uc.excluded = make(map[string]bool, len(subtypes))
		for _, st := range subtypes {
			uc.excluded[st] = true
		}
	}
}

func New(repo interfaces.Repository, slackSvc slack.Service, dir storage.Dir, channel string, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:      repo,
		slack:     slackSvc,
		fetcher:   fetch.New(),
		dir:       dir,
		channel:   channel,
		pageLimit: slack.DefaultPageLimit,
	}
	WithExcludedSubTypes(DefaultExcludedSubTypes)(uc)

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
