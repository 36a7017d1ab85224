package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/acronyms"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/adapters/cache"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/adapters/swgohgg"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/app"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/config"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/logging"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/ratelimiting"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/reference"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/reporting"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/telemetry"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "swgoh"

// Only commands with this annotation load config and build services
const annotationServices = "services"

const (
	flagTelemetry = "telemetry"
	flagVerbose   = "verbose"
)

// Responses for players, guilds and mods are reused for a minute
const responseTTL = 1 * time.Minute

type services struct {
	findCharacter  app.FindCharacter
	findShip       app.FindShip
	getAbility     app.GetAbility
	getGear        app.GetGear
	getPlayer      app.GetPlayer
	getPlayerStats app.GetPlayerStats
	getPlayerUnit  app.GetPlayerUnit
	getGuild       app.GetGuild
	getPlayerMods  app.GetPlayerMods
}

type state struct {
	services services
	cleanup  []func()
}

// close runs the cleanup functions in reverse order of registration
func (s *state) close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
	s.cleanup = nil
}

func loadAcronyms(conf config.Config) (*acronyms.Table, error) {
	if conf.AcronymsFile() != "" {
		return acronyms.LoadFile(conf.AcronymsFile())
	}
	return acronyms.Default()
}

func (s *state) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	conf, err := config.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool(flagVerbose); verbose {
		level = slog.LevelDebug
	}
	logger := logging.NewLogger(cmd.ErrOrStderr(), level, slog.String("instanceID", uuid.New().String()))
	ctx := logging.AddToContext(cmd.Context(), logger)
	logger.DebugContext(ctx, "Loaded config", "config", conf.NonSensitiveString())

	flush, err := reporting.NewSentryOrMock(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize sentry: %w", err)
	}
	s.cleanup = append(s.cleanup, flush)

	if enabled, _ := cmd.Flags().GetBool(flagTelemetry); enabled {
		shutdown, err := telemetry.SetupOTelSDK(ctx, serviceName)
		if err != nil {
			return fmt.Errorf("failed to set up telemetry: %w", err)
		}
		s.cleanup = append(s.cleanup, func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Warn("Failed to shut down telemetry", "error", err.Error())
			}
		})
	}

	ctx = reporting.StartCommand(ctx, cmd.Name())
	if conf.HasSwgohggCredentials() {
		ctx = reporting.SetUserIDInContext(ctx, conf.SwgohggUser())
	}

	table, err := loadAcronyms(conf)
	if err != nil {
		return fmt.Errorf("failed to load acronyms: %w", err)
	}

	httpClient := &http.Client{
		Timeout:   30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	limiter, stopLimiter := ratelimiting.NewTokenBucketRateLimiter(
		ratelimiting.RefillPerSecond(conf.RequestsPerSecond()),
		ratelimiting.BurstSize(1),
	)
	s.cleanup = append(s.cleanup, stopLimiter)

	api, err := swgohgg.NewAPIOrMock(conf, httpClient, limiter)
	if err != nil {
		return fmt.Errorf("failed to initialize swgoh.gg api: %w", err)
	}
	if conf.RedisURL() != "" {
		store, closeStore, err := swgohgg.NewRedisStore(ctx, conf.RedisURL())
		if err != nil {
			return fmt.Errorf("failed to initialize response store: %w", err)
		}
		s.cleanup = append(s.cleanup, func() {
			if err := closeStore(); err != nil {
				logger.Warn("Failed to close response store", "error", err.Error())
			}
		})
		api, err = swgohgg.NewCachedAPI(api, store, conf.ReferenceTTL(), responseTTL)
		if err != nil {
			return fmt.Errorf("failed to initialize cached swgoh.gg api: %w", err)
		}
	}
	provider, err := swgohgg.NewProvider(api)
	if err != nil {
		return fmt.Errorf("failed to initialize swgoh.gg provider: %w", err)
	}

	referenceCache, err := reference.New(provider, reference.WithTTL(conf.ReferenceTTL()))
	if err != nil {
		return fmt.Errorf("failed to initialize reference cache: %w", err)
	}

	findCharacter := app.BuildFindCharacter(referenceCache, table.Characters())
	findShip := app.BuildFindShip(referenceCache, table.Ships())
	getPlayer := app.BuildGetPlayerWithCache(cache.NewPlayerCache(responseTTL), provider)

	s.services = services{
		findCharacter:  findCharacter,
		findShip:       findShip,
		getAbility:     app.BuildGetAbility(referenceCache),
		getGear:        app.BuildGetGear(referenceCache),
		getPlayer:      getPlayer,
		getPlayerStats: app.BuildGetPlayerStats(getPlayer),
		getPlayerUnit:  app.BuildGetPlayerUnit(findCharacter, findShip, getPlayer),
		getGuild:       app.BuildGetGuildWithCache(cache.NewGuildCache(responseTTL), provider),
		getPlayerMods:  app.BuildGetPlayerModsWithCache(cache.NewPlayerModsCache(responseTTL), provider),
	}

	cmd.SetContext(ctx)
	return nil
}

func newRootCmd() (*cobra.Command, *state) {
	s := &state{}

	rootCmd := &cobra.Command{
		Use:   "swgoh",
		Short: "Query swgoh.gg for units, players, guilds and mods",
		Long: `Query swgoh.gg for units, players, guilds and mods.

Unit names are matched case insensitively. Known acronyms such as CLS are expanded,
then an exact name match is tried before the first name containing the query.
Results are written to stdout as JSON, logs go to stderr.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationServices] == "" {
				return nil
			}
			return s.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetContext(context.Background())

	rootCmd.PersistentFlags().Bool(flagTelemetry, false, "export traces and metrics over OTLP/gRPC")
	rootCmd.PersistentFlags().BoolP(flagVerbose, "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newCharacterCmd(s),
		newShipCmd(s),
		newAbilityCmd(s),
		newGearCmd(s),
		newPlayerCmd(s),
		newPlayerStatsCmd(s),
		newPlayerUnitCmd(s),
		newGuildCmd(s),
		newModsCmd(s),
	)

	return rootCmd, s
}
