package app

import (
	"context"
	"fmt"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/adapters/cache"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domain"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/strutils"
)

type GetGuild func(ctx context.Context, guildID string) (domain.Guild, error)

type guildProvider interface {
	GetGuild(ctx context.Context, guildID string) (domain.Guild, error)
}

func BuildGetGuildWithCache(guildCache cache.GuildCache, provider guildProvider) GetGuild {
	return func(ctx context.Context, guildID string) (domain.Guild, error) {
		if !strutils.GuildIDIsValid(guildID) {
			return domain.Guild{}, fmt.Errorf("%w: '%s'", ErrInvalidGuildID, guildID)
		}

		guild, _, err := cache.GetOrCreate(ctx, guildCache, guildID, func() (domain.Guild, error) {
			return provider.GetGuild(ctx, guildID)
		})
		if err != nil {
			return domain.Guild{}, fmt.Errorf("failed to cache.GetOrCreate guild: %w", err)
		}

		return guild, nil
	}
}
