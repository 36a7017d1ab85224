package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/adapters/cache"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domain"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/strutils"
)

var ErrInvalidAllyCode = errors.New("invalid ally code")
var ErrInvalidGuildID = errors.New("invalid guild id")

type GetPlayer func(ctx context.Context, allyCode string) (domain.Player, error)

type playerProvider interface {
	GetPlayer(ctx context.Context, allyCode string) (domain.Player, error)
}

func normalizeAllyCode(allyCode string) (string, error) {
	normalized, err := strutils.NormalizeAllyCode(allyCode)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAllyCode, err)
	}
	return normalized, nil
}

func BuildGetPlayerWithCache(playerCache cache.PlayerCache, provider playerProvider) GetPlayer {
	return func(ctx context.Context, allyCode string) (domain.Player, error) {
		normalized, err := normalizeAllyCode(allyCode)
		if err != nil {
			return domain.Player{}, err
		}

		player, _, err := cache.GetOrCreate(ctx, playerCache, normalized, func() (domain.Player, error) {
			return provider.GetPlayer(ctx, normalized)
		})
		if err != nil {
			// NOTE: GetOrCreate only returns an error if create() fails.
			// The provider handles its own error reporting
			return domain.Player{}, fmt.Errorf("failed to cache.GetOrCreate player: %w", err)
		}

		return player, nil
	}
}
