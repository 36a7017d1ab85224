package swgohgg

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/config"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/constants"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/logging"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/ratelimiting"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/reporting"
)

const maxAttempts = 3

const retryBackoff = 500 * time.Millisecond

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// API performs raw GET requests against swgoh.gg. The path is relative to the base url.
type API interface {
	Get(ctx context.Context, path string) ([]byte, int, error)
}

// Token is the value of the basic Authorization header
func Token(user, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(user + ":" + password))
}

type apiImpl struct {
	httpClient HttpClient
	limiter    ratelimiting.RateLimiter
	afterFunc  func(time.Duration) <-chan time.Time

	baseURL string
	host    string
	token   string
}

func (api apiImpl) Get(ctx context.Context, path string) ([]byte, int, error) {
	logger := logging.FromContext(ctx)
	requestURL := api.baseURL + path

	for attempt := 1; ; attempt++ {
		data, statusCode, err := api.do(ctx, requestURL)
		if err != nil {
			return []byte{}, -1, err
		}

		if statusCode < 500 || attempt >= maxAttempts {
			return data, statusCode, nil
		}

		logger.WarnContext(ctx, "swgoh.gg server error, retrying", "url", requestURL, "status", statusCode, "attempt", attempt)
		select {
		case <-ctx.Done():
			return []byte{}, -1, fmt.Errorf("failed to retry request: %w", ctx.Err())
		case <-api.afterFunc(time.Duration(attempt) * retryBackoff):
		}
	}
}

func (api apiImpl) do(ctx context.Context, requestURL string) ([]byte, int, error) {
	logger := logging.FromContext(ctx)

	if err := api.limiter.Wait(ctx, api.host); err != nil {
		return []byte{}, -1, fmt.Errorf("failed to wait for rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		err := fmt.Errorf("failed to create request: %w", err)
		logger.ErrorContext(ctx, err.Error())
		reporting.Report(ctx, err)
		return []byte{}, -1, err
	}

	req.Header.Set("User-Agent", constants.USER_AGENT)
	req.Header.Set("Content-Type", "application/json")
	if api.token != "" {
		req.Header.Set("Authorization", "Basic "+api.token)
	}

	start := time.Now()
	resp, err := api.httpClient.Do(req)
	if err != nil {
		err := fmt.Errorf("failed to send request: %w", err)
		logger.ErrorContext(ctx, err.Error())
		reporting.Report(ctx, err)
		return []byte{}, -1, err
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err := fmt.Errorf("failed to read response body: %w", err)
		logger.ErrorContext(ctx, err.Error())
		reporting.Report(ctx, err)
		return []byte{}, -1, err
	}
	logger.InfoContext(ctx, "swgoh.gg request completed", "url", requestURL, "status", resp.StatusCode, "duration", time.Since(start).String())

	return data, resp.StatusCode, nil
}

func NewAPI(httpClient HttpClient, limiter ratelimiting.RateLimiter, afterFunc func(time.Duration) <-chan time.Time, baseURL, user, password string) (API, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", baseURL)
	}

	token := ""
	if user != "" || password != "" {
		token = Token(user, password)
	}

	return apiImpl{
		httpClient: httpClient,
		limiter:    limiter,
		afterFunc:  afterFunc,

		baseURL: parsed.Scheme + "://" + parsed.Host,
		host:    parsed.Host,
		token:   token,
	}, nil
}

func NewAPIOrMock(config config.Config, httpClient HttpClient, limiter ratelimiting.RateLimiter) (API, error) {
	if config.HasSwgohggCredentials() {
		return NewAPI(httpClient, limiter, time.After, config.SwgohggBaseURL(), config.SwgohggUser(), config.SwgohggPassword())
	}
	if config.IsDevelopment() {
		return NewFixtureAPI(), nil
	}
	return nil, fmt.Errorf("Missing swgoh.gg credentials in non-development environment")
}
