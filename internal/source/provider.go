package source

import (
	"context"
	"errors"
)

// Sentinel errors returned by search providers.
var (
	// ErrSourceUnavailable indicates the content source could not be queried.
	ErrSourceUnavailable = errors.New("content source unavailable")

	// ErrRateLimited indicates the content source rejected the request quota.
	ErrRateLimited = errors.New("content source rate limit exceeded")

	// ErrAuthFailed indicates the content source rejected our credentials.
	ErrAuthFailed = errors.New("content source authentication failed")
)

// SearchProvider queries the external content source for posts.
type SearchProvider interface {
	Search(ctx context.Context, keyword string, limit int, sort SortStrategy) ([]RawResult, error)
}

// SortStrategy is the ordering requested from the content source.
type SortStrategy string

const (
	SortRelevance SortStrategy = "relevance"
	SortHot       SortStrategy = "hot"
	SortTop       SortStrategy = "top"
	SortNew       SortStrategy = "new"
)

// SortStrategies lists every strategy a search may pick from.
var SortStrategies = []SortStrategy{SortRelevance, SortHot, SortTop, SortNew}

// RandomSort picks a strategy uniformly using intn, which must return a value
// in [0, n).
func RandomSort(intn func(n int) int) SortStrategy {
	return SortStrategies[intn(len(SortStrategies))]
}

// RawResult is one post as returned by the content source. It is read-only.
type RawResult struct {
	Title string    `json:"title"`
	URL   *string   `json:"url"`
	Media *RawMedia `json:"media"`
}

// RawMedia holds the embedded media block of a post.
type RawMedia struct {
	OEmbed *RawEmbed `json:"oembed"`
}

// RawEmbed holds oEmbed metadata for a post's media.
type RawEmbed struct {
	ThumbnailURL string `json:"thumbnail_url"`
}

// ThumbnailURL returns media.oembed.thumbnail_url, or "" when any level is absent.
func (r RawResult) ThumbnailURL() string {
	if r.Media == nil || r.Media.OEmbed == nil {
		return ""
	}
	return r.Media.OEmbed.ThumbnailURL
}
