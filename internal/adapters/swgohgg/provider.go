package swgohgg

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domain"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/logging"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/reporting"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/strutils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	charactersPath = "/api/characters/"
	shipsPath      = "/api/ships/"
	abilitiesPath  = "/api/abilities/"
	gearPath       = "/api/gear/"
)

var errNotFound = errors.New("not found")

func playerPath(allyCode string) string {
	return fmt.Sprintf("/api/player/%s/", allyCode)
}

func guildPath(guildID string) string {
	return fmt.Sprintf("/api/guild/%s/", guildID)
}

func playerModsPath(allyCode string) string {
	return fmt.Sprintf("/api/players/%s/mods/", allyCode)
}

// Provider reads reference data, players, guilds and mods from swgoh.gg
type Provider struct {
	api API

	metrics providerMetricsCollection
}

func NewProvider(api API) (*Provider, error) {
	meter := otel.Meter("swgohgg/provider")
	metrics, err := setupProviderMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	return &Provider{
		api:     api,
		metrics: metrics,
	}, nil
}

// checkStatus returns notFound for 404 responses
func checkStatus(statusCode int, notFound error) error {
	switch statusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return notFound
	case http.StatusTooManyRequests:
		return fmt.Errorf("swgoh.gg ratelimit exceeded (%w)", domain.ErrTemporarilyUnavailable)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("swgoh.gg returned status code %d (%s) (%w)", statusCode, http.StatusText(statusCode), domain.ErrTemporarilyUnavailable)
	}
	return fmt.Errorf("swgoh.gg returned unexpected status code %d (%s)", statusCode, http.StatusText(statusCode))
}

func get[W any, D any](ctx context.Context, p *Provider, endpoint, path string, notFound error, convert func(W) (D, error)) (D, error) {
	var zero D
	logger := logging.FromContext(ctx).With("endpoint", endpoint)

	data, statusCode, err := p.api.Get(ctx, path)
	if err != nil {
		// NOTE: API implementations handle their own error reporting
		p.metrics.requestCount.Add(ctx, 1, metric.WithAttributes(attribute.String("endpoint", endpoint), attribute.String("outcome", "request_error")))
		return zero, fmt.Errorf("failed to get %s: %w", endpoint, err)
	}

	if err := checkStatus(statusCode, notFound); err != nil {
		p.metrics.requestCount.Add(ctx, 1, metric.WithAttributes(attribute.String("endpoint", endpoint), attribute.Int("status", statusCode)))
		if errors.Is(err, notFound) {
			logger.InfoContext(ctx, "swgoh.gg resource not found", "path", path)
			return zero, err
		}
		logger.ErrorContext(ctx, "Got error response from swgoh.gg", "error", err.Error(), "statusCode", statusCode, "contentLength", len(data))
		if !errors.Is(err, domain.ErrTemporarilyUnavailable) {
			reporting.Report(ctx, err, map[string]string{
				"path":       path,
				"statusCode": fmt.Sprint(statusCode),
				"data":       string(data),
			})
		}
		return zero, err
	}

	parsed, err := parse[W](data)
	if err != nil {
		err = fmt.Errorf("failed to parse %s: %w", endpoint, err)
		reporting.Report(ctx, err, map[string]string{
			"path":       path,
			"statusCode": fmt.Sprint(statusCode),
		})
		return zero, err
	}

	result, err := convert(parsed)
	if err != nil {
		err = fmt.Errorf("failed to convert %s: %w", endpoint, err)
		reporting.Report(ctx, err, map[string]string{
			"path": path,
		})
		return zero, err
	}

	p.metrics.requestCount.Add(ctx, 1, metric.WithAttributes(attribute.String("endpoint", endpoint), attribute.Int("status", statusCode)))

	return result, nil
}

func convertAll[W any, D any](convert func(W) D) func([]W) ([]D, error) {
	return func(records []W) ([]D, error) {
		result := make([]D, 0, len(records))
		for _, record := range records {
			result = append(result, convert(record))
		}
		return result, nil
	}
}

func (p *Provider) FetchCharacters(ctx context.Context) ([]domain.Character, error) {
	return get(ctx, p, "characters", charactersPath, errNotFound, convertAll(toCharacter))
}

func (p *Provider) FetchShips(ctx context.Context) ([]domain.Ship, error) {
	return get(ctx, p, "ships", shipsPath, errNotFound, convertAll(toShip))
}

func (p *Provider) FetchAbilities(ctx context.Context) ([]domain.Ability, error) {
	return get(ctx, p, "abilities", abilitiesPath, errNotFound, convertAll(toAbility))
}

func (p *Provider) FetchGear(ctx context.Context) ([]domain.Gear, error) {
	return get(ctx, p, "gear", gearPath, errNotFound, convertAll(toGear))
}

func (p *Provider) GetPlayer(ctx context.Context, allyCode string) (domain.Player, error) {
	if !strutils.AllyCodeIsNormalized(allyCode) {
		logging.FromContext(ctx).ErrorContext(ctx, "Ally code is not normalized", "allyCode", allyCode)
		err := fmt.Errorf("ally code is not normalized")
		reporting.Report(ctx, err, map[string]string{
			"allyCode": allyCode,
		})
		return domain.Player{}, err
	}

	return get(ctx, p, "player", playerPath(allyCode), domain.ErrPlayerNotFound, toPlayer)
}

func (p *Provider) GetGuild(ctx context.Context, guildID string) (domain.Guild, error) {
	if !strutils.GuildIDIsValid(guildID) {
		logging.FromContext(ctx).ErrorContext(ctx, "Invalid guild id", "guildID", guildID)
		return domain.Guild{}, fmt.Errorf("invalid guild id: '%s'", guildID)
	}

	return get(ctx, p, "guild", guildPath(guildID), domain.ErrGuildNotFound, toGuild)
}

func (p *Provider) GetPlayerMods(ctx context.Context, allyCode string) (domain.PlayerMods, error) {
	if !strutils.AllyCodeIsNormalized(allyCode) {
		logging.FromContext(ctx).ErrorContext(ctx, "Ally code is not normalized", "allyCode", allyCode)
		err := fmt.Errorf("ally code is not normalized")
		reporting.Report(ctx, err, map[string]string{
			"allyCode": allyCode,
		})
		return domain.PlayerMods{}, err
	}

	return get(ctx, p, "player_mods", playerModsPath(allyCode), domain.ErrPlayerNotFound, func(m apiPlayerMods) (domain.PlayerMods, error) {
		return toPlayerMods(m), nil
	})
}

type providerMetricsCollection struct {
	requestCount metric.Int64Counter
}

func setupProviderMetrics(meter metric.Meter) (providerMetricsCollection, error) {
	requestCount, err := meter.Int64Counter("swgohgg/provider/requests")
	if err != nil {
		return providerMetricsCollection{}, fmt.Errorf("failed to create metric: %w", err)
	}

	return providerMetricsCollection{
		requestCount: requestCount,
	}, nil
}
