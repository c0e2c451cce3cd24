package testutil

import (
	"github.com/windoze95/lookforrecipes/internal/config"
	"github.com/windoze95/lookforrecipes/internal/models"
	"github.com/windoze95/lookforrecipes/internal/source"
)

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}

// TestConfig returns a config with the defaults used in production.
func TestConfig() *config.Config {
	return &config.Config{
		EnvVars: config.EnvVars{
			AppEnv:        "test",
			Port:          "3001",
			URL:           "http://localhost:3001",
			TelegramToken: "123:test-token",
			MaxCandidates: 5,
			SearchLimit:   50,
		},
		Messages: config.DefaultMessages(),
	}
}

// TestRawResult creates a post with a URL and no media.
func TestRawResult(title, url string) source.RawResult {
	return source.RawResult{Title: title, URL: StrPtr(url)}
}

// TestRawResultWithThumbnail creates a post with an oEmbed thumbnail.
func TestRawResultWithThumbnail(title, url, thumbnail string) source.RawResult {
	return source.RawResult{
		Title: title,
		URL:   StrPtr(url),
		Media: &source.RawMedia{OEmbed: &source.RawEmbed{ThumbnailURL: thumbnail}},
	}
}

// TestPastaResults returns three posts of which only the second is usable.
func TestPastaResults() []source.RawResult {
	return []source.RawResult{
		TestRawResult("Pasta Photo", "http://x/a.png"),
		TestRawResult("Pasta Gif", "http://x/b.gif"),
		{Title: "Deleted Pasta", URL: nil},
	}
}

// TestCandidate creates a candidate whose clip is its source URL.
func TestCandidate(title, url string) models.Candidate {
	return models.Candidate{Title: title, SourceURL: url, ClipURL: url}
}
