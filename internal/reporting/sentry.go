package reporting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/config"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/logging"
	"github.com/getsentry/sentry-go"
)

var allyCodeRx = regexp.MustCompile(`/players?/\d{3}-?\d{3}-?\d{3}/`)
var guildRx = regexp.MustCompile(`/guild/[A-Za-z0-9_-]+/`)
var hostRx = regexp.MustCompile(`\[:{0,2}([0-9a-f]{0,4}:?){1,8}\]:\d+`)

func sanitizeError(err string) string {
	err = allyCodeRx.ReplaceAllStringFunc(err, func(match string) string {
		if match[:9] == "/players/" {
			return "/players/<allycode>/"
		}
		return "/player/<allycode>/"
	})
	err = guildRx.ReplaceAllString(err, "/guild/<guildid>/")
	err = hostRx.ReplaceAllString(err, "<host>")
	return err
}

func Report(ctx context.Context, err error, extras ...map[string]string) {
	hub := sentry.GetHubFromContext(ctx)
	logger := logging.FromContext(ctx)
	if hub == nil {
		logger.WarnContext(ctx, "Failed to get Sentry hub from context", "error", err, "extras", extras)
		return
	}

	logger.ErrorContext(
		ctx,
		"Reporting error to Sentry",
		slog.Any("error", err),
		slog.Any("extras", extras),
	)

	hub.WithScope(func(scope *sentry.Scope) {
		meta := MetaFromContext(ctx)
		scope.SetTags(meta.tags)
		for key, value := range meta.extras {
			scope.SetExtra(key, value)
		}
		if meta.userID != "" {
			scope.SetUser(sentry.User{
				ID: meta.userID,
			})
		}
		if !meta.startedAt.IsZero() {
			scope.SetExtra("secondsSinceStart", time.Since(meta.startedAt).Seconds())
		}

		for _, extra := range extras {
			for key, value := range extra {
				scope.SetExtra(key, value)
			}
		}

		if err == nil {
			err = errors.New("No error provided")
		}

		scope.SetFingerprint([]string{"{{ default }}", sanitizeError(err.Error())})
		hub.CaptureException(err)
	})
}

// StartCommand tags the context with the command being run and attaches a Sentry hub
func StartCommand(ctx context.Context, command string) context.Context {
	ctx = AddTagsToContext(ctx, map[string]string{
		"command": command,
	})
	ctx = setStartedAtInContext(ctx, time.Now())

	if sentry.GetHubFromContext(ctx) == nil {
		ctx = sentry.SetHubOnContext(ctx, sentry.CurrentHub().Clone())
	}
	return ctx
}

func InitSentry(sentryDSN string, environment string) (func(), error) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              sentryDSN,
		Environment:      environment,
		EnableTracing:    true,
		TracesSampleRate: 1.0 / 100.0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sentry: %w", err)
	}

	flush := func() {
		sentry.Flush(5 * time.Second)
	}

	return flush, nil
}

func NewSentryOrMock(config config.Config) (func(), error) {
	if config.SentryDSN() != "" {
		environment := "production"
		switch {
		case config.IsStaging():
			environment = "staging"
		case config.IsDevelopment():
			environment = "development"
		}
		return InitSentry(config.SentryDSN(), environment)
	}

	if config.IsDevelopment() || config.IsStaging() {
		return func() {}, nil
	}

	return nil, fmt.Errorf("Missing Sentry DSN in non-development environment")
}
