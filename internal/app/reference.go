package app

import (
	"context"
	"fmt"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domain"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/logging"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/reference"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/resolve"
)

type FindCharacter func(ctx context.Context, query string) (domain.Character, bool, error)
type FindShip func(ctx context.Context, query string) (domain.Ship, bool, error)
type GetAbility func(ctx context.Context, baseID string) (domain.Ability, bool, error)
type GetGear func(ctx context.Context, baseID string) (domain.Gear, bool, error)

type snapshotSource interface {
	EnsureFresh(ctx context.Context) (*reference.Snapshot, error)
}

// Stale data is good enough for lookups. Only fail when there is no data at all.
func currentSnapshot(ctx context.Context, source snapshotSource) (*reference.Snapshot, error) {
	snapshot, err := source.EnsureFresh(ctx)
	if snapshot == nil {
		// NOTE: The reference cache handles its own error reporting
		return nil, fmt.Errorf("failed to get reference data: %w", err)
	}
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "Using stale reference data", "error", err.Error(), "refreshedAt", snapshot.RefreshedAt)
	}
	return snapshot, nil
}

func BuildFindCharacter(source snapshotSource, acronyms resolve.Expander) FindCharacter {
	return func(ctx context.Context, query string) (domain.Character, bool, error) {
		snapshot, err := currentSnapshot(ctx, source)
		if err != nil {
			return domain.Character{}, false, err
		}

		character, ok := resolve.Resolve(snapshot.Characters.All(), acronyms, query)
		return character, ok, nil
	}
}

func BuildFindShip(source snapshotSource, acronyms resolve.Expander) FindShip {
	return func(ctx context.Context, query string) (domain.Ship, bool, error) {
		snapshot, err := currentSnapshot(ctx, source)
		if err != nil {
			return domain.Ship{}, false, err
		}

		ship, ok := resolve.Resolve(snapshot.Ships.All(), acronyms, query)
		return ship, ok, nil
	}
}

func BuildGetAbility(source snapshotSource) GetAbility {
	return func(ctx context.Context, baseID string) (domain.Ability, bool, error) {
		snapshot, err := currentSnapshot(ctx, source)
		if err != nil {
			return domain.Ability{}, false, err
		}

		ability, ok := snapshot.Abilities.Get(baseID)
		return ability, ok, nil
	}
}

func BuildGetGear(source snapshotSource) GetGear {
	return func(ctx context.Context, baseID string) (domain.Gear, bool, error) {
		snapshot, err := currentSnapshot(ctx, source)
		if err != nil {
			return domain.Gear{}, false, err
		}

		gear, ok := snapshot.Gear.Get(baseID)
		return gear, ok, nil
	}
}
