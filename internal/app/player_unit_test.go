package app_test

import (
	"context"
	"testing"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/app"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domain"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domaintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlayerUnit(t *testing.T) {
	t.Parallel()

	player := domaintest.NewPlayerBuilder("123456789", now).
		WithUnits(
			domaintest.NewCharacterBuilder("COMMANDERLUKESKYWALKER", "Commander Luke Skywalker").Build(),
			domaintest.NewShipBuilder("HOUNDSTOOTH", "Hound's Tooth").Build(),
		).
		Build()

	source := &fakeSnapshotSource{snapshot: newSnapshot()}
	findCharacter := app.BuildFindCharacter(source, testAcronyms)
	findShip := app.BuildFindShip(source, testAcronyms)

	newGetPlayer := func(t *testing.T) (app.GetPlayer, *int) {
		calls := 0
		return func(ctx context.Context, allyCode string) (domain.Player, error) {
			require.Equal(t, "123456789", allyCode)
			calls++
			return player, nil
		}, &calls
	}

	t.Run("character by acronym", func(t *testing.T) {
		t.Parallel()

		getPlayer, _ := newGetPlayer(t)
		getPlayerUnit := app.BuildGetPlayerUnit(findCharacter, findShip, getPlayer)

		unit, found, err := getPlayerUnit(t.Context(), "123456789", "cls")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "COMMANDERLUKESKYWALKER", unit.BaseID)
	})

	t.Run("ship", func(t *testing.T) {
		t.Parallel()

		getPlayer, _ := newGetPlayer(t)
		getPlayerUnit := app.BuildGetPlayerUnit(findCharacter, findShip, getPlayer)

		unit, found, err := getPlayerUnit(t.Context(), "123456789", "hound")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "HOUNDSTOOTH", unit.BaseID)
	})

	t.Run("character wins over ship", func(t *testing.T) {
		t.Parallel()

		getPlayer, _ := newGetPlayer(t)
		getPlayerUnit := app.BuildGetPlayerUnit(findCharacter, findShip, getPlayer)

		// "vader" matches both Darth Vader and his TIE, the player owns neither
		_, found, err := getPlayerUnit(t.Context(), "123456789", "vader")
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("unknown name does not fetch the player", func(t *testing.T) {
		t.Parallel()

		getPlayer, calls := newGetPlayer(t)
		getPlayerUnit := app.BuildGetPlayerUnit(findCharacter, findShip, getPlayer)

		_, found, err := getPlayerUnit(t.Context(), "123456789", "Jar Jar Binks")
		require.NoError(t, err)
		require.False(t, found)
		require.Equal(t, 0, *calls)
	})

	t.Run("player error", func(t *testing.T) {
		t.Parallel()

		getPlayer := func(ctx context.Context, allyCode string) (domain.Player, error) {
			return domain.Player{}, domain.ErrPlayerNotFound
		}
		getPlayerUnit := app.BuildGetPlayerUnit(findCharacter, findShip, getPlayer)

		_, _, err := getPlayerUnit(t.Context(), "123456789", "cls")
		require.ErrorIs(t, err, domain.ErrPlayerNotFound)
	})

	t.Run("reference error", func(t *testing.T) {
		t.Parallel()

		broken := &fakeSnapshotSource{err: assert.AnError}
		getPlayer, calls := newGetPlayer(t)
		getPlayerUnit := app.BuildGetPlayerUnit(app.BuildFindCharacter(broken, nil), app.BuildFindShip(broken, nil), getPlayer)

		_, _, err := getPlayerUnit(t.Context(), "123456789", "cls")
		require.ErrorIs(t, err, assert.AnError)
		require.Equal(t, 0, *calls)
	})
}
