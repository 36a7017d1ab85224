package app

import (
	"context"
	"fmt"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/logging"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/reporting"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/roster"
)

type GetPlayerStats func(ctx context.Context, allyCode string) (roster.PlayerStatsSummary, error)

// Units with out of range values are reported and left out of the summary
func BuildGetPlayerStats(getPlayer GetPlayer) GetPlayerStats {
	return func(ctx context.Context, allyCode string) (roster.PlayerStatsSummary, error) {
		player, err := getPlayer(ctx, allyCode)
		if err != nil {
			return roster.PlayerStatsSummary{}, fmt.Errorf("failed to get player: %w", err)
		}

		summary, err := roster.Summarize(player)
		if err != nil {
			logging.FromContext(ctx).WarnContext(ctx, "Skipped units when summarizing roster", "error", err.Error())
			reporting.Report(ctx, err, map[string]string{
				"allyCode": player.Details.AllyCode,
			})
		}

		return summary, nil
	}
}
