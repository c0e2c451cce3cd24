package service

import (
	"regexp"

	"github.com/windoze95/lookforrecipes/internal/models"
	"github.com/windoze95/lookforrecipes/internal/source"
)

var clipURLPattern = regexp.MustCompile(`\.(gif|gifv)$`)

// IsClipURL reports whether u ends in a playable clip extension.
func IsClipURL(u string) bool {
	return clipURLPattern.MatchString(u)
}

// ExtractCandidate turns a raw result into a Candidate. The post URL is used
// as the clip when it is one; otherwise the oEmbed thumbnail is tried. The
// candidate always links back to the post URL.
func ExtractCandidate(raw source.RawResult) (models.Candidate, bool) {
	if raw.URL == nil {
		return models.Candidate{}, false
	}

	clip := *raw.URL
	if !IsClipURL(clip) {
		clip = raw.ThumbnailURL()
		if !IsClipURL(clip) {
			return models.Candidate{}, false
		}
	}

	return models.Candidate{
		Title:     raw.Title,
		SourceURL: *raw.URL,
		ClipURL:   clip,
	}, true
}
