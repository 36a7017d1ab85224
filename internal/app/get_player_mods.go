package app

import (
	"context"
	"fmt"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/adapters/cache"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domain"
)

type GetPlayerMods func(ctx context.Context, allyCode string) (domain.PlayerMods, error)

type playerModsProvider interface {
	GetPlayerMods(ctx context.Context, allyCode string) (domain.PlayerMods, error)
}

func BuildGetPlayerModsWithCache(modsCache cache.PlayerModsCache, provider playerModsProvider) GetPlayerMods {
	return func(ctx context.Context, allyCode string) (domain.PlayerMods, error) {
		normalized, err := normalizeAllyCode(allyCode)
		if err != nil {
			return domain.PlayerMods{}, err
		}

		mods, _, err := cache.GetOrCreate(ctx, modsCache, normalized, func() (domain.PlayerMods, error) {
			return provider.GetPlayerMods(ctx, normalized)
		})
		if err != nil {
			return domain.PlayerMods{}, fmt.Errorf("failed to cache.GetOrCreate player mods: %w", err)
		}

		return mods, nil
	}
}
