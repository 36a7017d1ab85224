package app

import (
	"context"
	"fmt"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domain"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/roster"
)

type GetPlayerUnit func(ctx context.Context, allyCode string, name string) (domain.PlayerUnit, bool, error)

// BuildGetPlayerUnit resolves the name as a character first and as a ship second.
// The player is only fetched when the name resolves.
func BuildGetPlayerUnit(findCharacter FindCharacter, findShip FindShip, getPlayer GetPlayer) GetPlayerUnit {
	return func(ctx context.Context, allyCode string, name string) (domain.PlayerUnit, bool, error) {
		character, found, err := findCharacter(ctx, name)
		if err != nil {
			return domain.PlayerUnit{}, false, fmt.Errorf("failed to find character: %w", err)
		}

		canonicalName := character.Name
		if !found {
			ship, found, err := findShip(ctx, name)
			if err != nil {
				return domain.PlayerUnit{}, false, fmt.Errorf("failed to find ship: %w", err)
			}
			if !found {
				return domain.PlayerUnit{}, false, nil
			}
			canonicalName = ship.Name
		}

		player, err := getPlayer(ctx, allyCode)
		if err != nil {
			return domain.PlayerUnit{}, false, fmt.Errorf("failed to get player: %w", err)
		}

		unit, owned := roster.FindUnitByName(player, canonicalName)
		return unit, owned, nil
	}
}
