package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/windoze95/lookforrecipes/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	redditTokenURL = "https://www.reddit.com/api/v1/access_token"
	redditAPIBase  = "https://oauth.reddit.com"
)

// RedditConfig holds the credentials of a Reddit "script" app.
type RedditConfig struct {
	UserAgent         string
	ClientID          string
	ClientSecret      string
	Username          string
	Password          string
	Subreddit         string
	RequestsPerMinute int
}

// RedditProvider implements SearchProvider by searching a single subreddit
// through the Reddit OAuth API.
type RedditProvider struct {
	subreddit  string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewRedditProvider creates a provider authenticated with the password grant.
// Tokens are fetched lazily on the first search and renewed when they expire.
func NewRedditProvider(cfg RedditConfig, log *zap.Logger) *RedditProvider {
	client := newOAuthClient(cfg, redditTokenURL)
	return newRedditProvider(redditAPIBase, client, cfg.Subreddit, cfg.RequestsPerMinute, log)
}

func newOAuthClient(cfg RedditConfig, tokenURL string) *http.Client {
	ua := &userAgentTransport{
		userAgent: fmt.Sprintf("%s (by u/%s)", cfg.UserAgent, cfg.Username),
		base:      http.DefaultTransport,
	}

	src := &passwordTokenSource{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		username: cfg.Username,
		password: cfg.Password,
		client:   &http.Client{Transport: ua, Timeout: 10 * time.Second},
	}

	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, src),
			Base:   ua,
		},
		Timeout: 10 * time.Second,
	}
}

func newRedditProvider(baseURL string, client *http.Client, subreddit string, requestsPerMinute int, log *zap.Logger) *RedditProvider {
	limit := rate.Inf
	burst := 1
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
		burst = requestsPerMinute
	}
	return &RedditProvider{
		subreddit:  subreddit,
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger.OrNop(log),
	}
}

type redditListing struct {
	Data struct {
		Children []struct {
			Kind string    `json:"kind"`
			Data RawResult `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Search runs one subreddit search. limit is passed through unchanged;
// callers are responsible for bounding it.
func (p *RedditProvider) Search(ctx context.Context, keyword string, limit int, sort SortStrategy) ([]RawResult, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	params := url.Values{}
	params.Set("q", keyword)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("sort", string(sort))
	params.Set("restrict_sr", "true")
	params.Set("type", "link")
	params.Set("raw_json", "1")

	reqURL := fmt.Sprintf("%s/r/%s/search?%s", p.baseURL, url.PathEscape(p.subreddit), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create reddit request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
		}
		return nil, fmt.Errorf("%w: reddit search request failed: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read reddit response: %v", ErrSourceUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w (status %d)", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w (status %d)", ErrAuthFailed, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: reddit API returned status %d: %s", ErrSourceUnavailable, resp.StatusCode, string(body))
	}

	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("%w: failed to parse reddit response: %v", ErrSourceUnavailable, err)
	}

	results := make([]RawResult, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		results = append(results, child.Data)
	}

	p.logger.Debug("reddit search completed",
		zap.String("subreddit", p.subreddit),
		zap.String("sort", string(sort)),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// passwordTokenSource fetches a fresh token with the resource owner password
// grant. Reddit issues no refresh token for script apps, so every renewal
// repeats the grant.
type passwordTokenSource struct {
	conf     *oauth2.Config
	username string
	password string
	client   *http.Client
}

func (s *passwordTokenSource) Token() (*oauth2.Token, error) {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, s.client)
	return s.conf.PasswordCredentialsToken(ctx, s.username, s.password)
}

// userAgentTransport sets the User-Agent Reddit requires on every request.
type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}
