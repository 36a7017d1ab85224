package roster_test

import (
	"testing"
	"time"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domain"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domaintest"
	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/roster"
	"github.com/stretchr/testify/require"
)

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func requireIdentities(t *testing.T, summary roster.PlayerStatsSummary) {
	t.Helper()

	chars := summary.Characters
	require.Equal(t, chars.Count, sum(chars.Levels[:]))
	require.Equal(t, chars.Count, sum(chars.Rarities[:]))
	require.Equal(t, chars.Count, sum(chars.Gear[:]))
	require.LessOrEqual(t, chars.GalacticLegendCount, chars.Count)

	ships := summary.Ships
	require.Equal(t, ships.Count, sum(ships.Levels[:]))
	require.Equal(t, ships.Count, sum(ships.Rarities[:]))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	t.Run("single maxed character", func(t *testing.T) {
		t.Parallel()

		player := domaintest.NewPlayerBuilder("123456789", now).
			WithUnits(domaintest.NewCharacterBuilder("DARTHVADER", "Darth Vader").Build()).
			Build()

		summary, err := roster.Summarize(player)
		require.NoError(t, err)
		requireIdentities(t, summary)

		require.Equal(t, 1, summary.Characters.Count)
		require.Equal(t, 1, summary.Characters.Levels[84])
		require.Equal(t, 1, summary.Characters.Rarities[6])
		require.Equal(t, 1, summary.Characters.Gear[12])
		require.Equal(t, 0, summary.Characters.Zetas)
		require.Equal(t, 0, summary.Characters.GalacticLegendCount)
		require.Equal(t, roster.ShipSummary{}, summary.Ships)
	})

	t.Run("galactic legend", func(t *testing.T) {
		t.Parallel()

		player := domaintest.NewPlayerBuilder("123456789", now).
			WithUnits(
				domaintest.NewCharacterBuilder("GLREY", "Rey").
					WithZetas("uniqueskill_GALACTICLEGEND01", "leaderskill_GLREY").
					Build(),
				domaintest.NewCharacterBuilder("DARTHVADER", "Darth Vader").
					WithZetas("uniqueskill_DARTHVADER01").
					Build(),
			).
			Build()

		summary, err := roster.Summarize(player)
		require.NoError(t, err)
		requireIdentities(t, summary)

		require.Equal(t, 2, summary.Characters.Count)
		require.Equal(t, 1, summary.Characters.GalacticLegendCount)
		require.Equal(t, 3, summary.Characters.Zetas)
	})

	t.Run("mixed roster", func(t *testing.T) {
		t.Parallel()

		player := domaintest.NewPlayerBuilder("123456789", now).
			WithUnits(
				domaintest.NewCharacterBuilder("REY", "Rey (Scavenger)").WithLevel(1).WithRarity(1).WithGearLevel(1).Build(),
				domaintest.NewCharacterBuilder("DARTHVADER", "Darth Vader").WithLevel(50).WithRarity(4).WithGearLevel(7).Build(),
				domaintest.NewCharacterBuilder("BOSSK", "Bossk").WithLevel(50).WithRarity(7).WithGearLevel(7).Build(),
				domaintest.NewShipBuilder("HOUNDSTOOTH", "Hound's Tooth").WithLevel(60).WithRarity(5).Build(),
				domaintest.NewShipBuilder("MILLENNIUMFALCON", "Han's Millennium Falcon").Build(),
			).
			Build()

		summary, err := roster.Summarize(player)
		require.NoError(t, err)
		requireIdentities(t, summary)

		require.Equal(t, 3, summary.Characters.Count)
		require.Equal(t, 1, summary.Characters.Levels[0])
		require.Equal(t, 2, summary.Characters.Levels[49])
		require.Equal(t, 1, summary.Characters.Rarities[0])
		require.Equal(t, 1, summary.Characters.Rarities[3])
		require.Equal(t, 1, summary.Characters.Rarities[6])
		require.Equal(t, 1, summary.Characters.Gear[0])
		require.Equal(t, 2, summary.Characters.Gear[6])

		require.Equal(t, 2, summary.Ships.Count)
		require.Equal(t, 1, summary.Ships.Levels[59])
		require.Equal(t, 1, summary.Ships.Levels[84])
		require.Equal(t, 1, summary.Ships.Rarities[4])
		require.Equal(t, 1, summary.Ships.Rarities[6])
	})

	t.Run("ships do not need gear", func(t *testing.T) {
		t.Parallel()

		player := domaintest.NewPlayerBuilder("123456789", now).
			WithUnits(domaintest.NewShipBuilder("HOUNDSTOOTH", "Hound's Tooth").WithGearLevel(0).Build()).
			Build()

		summary, err := roster.Summarize(player)
		require.NoError(t, err)
		require.Equal(t, 1, summary.Ships.Count)
	})

	t.Run("unknown combat type is ignored", func(t *testing.T) {
		t.Parallel()

		player := domaintest.NewPlayerBuilder("123456789", now).
			WithUnits(
				domaintest.NewCharacterBuilder("MYSTERY", "Mystery").WithCombatType(domain.CombatType(3)).WithLevel(500).Build(),
				domaintest.NewCharacterBuilder("DARTHVADER", "Darth Vader").Build(),
			).
			Build()

		summary, err := roster.Summarize(player)
		require.NoError(t, err)
		requireIdentities(t, summary)
		require.Equal(t, 1, summary.Characters.Count)
		require.Equal(t, 0, summary.Ships.Count)
	})

	t.Run("empty roster", func(t *testing.T) {
		t.Parallel()

		summary, err := roster.Summarize(domaintest.NewPlayerBuilder("123456789", now).Build())
		require.NoError(t, err)
		require.Equal(t, roster.PlayerStatsSummary{}, summary)
	})

	violationCases := []struct {
		name  string
		unit  domain.PlayerUnit
		field string
	}{
		{
			name:  "level too high",
			unit:  domaintest.NewCharacterBuilder("BAD", "Bad").WithLevel(86).Build(),
			field: "level",
		},
		{
			name:  "level zero",
			unit:  domaintest.NewShipBuilder("BAD", "Bad").WithLevel(0).Build(),
			field: "level",
		},
		{
			name:  "rarity too high",
			unit:  domaintest.NewCharacterBuilder("BAD", "Bad").WithRarity(8).Build(),
			field: "rarity",
		},
		{
			name:  "ship rarity zero",
			unit:  domaintest.NewShipBuilder("BAD", "Bad").WithRarity(0).Build(),
			field: "rarity",
		},
		{
			name:  "gear too high",
			unit:  domaintest.NewCharacterBuilder("BAD", "Bad").WithGearLevel(14).Build(),
			field: "gear level",
		},
		{
			name:  "gear missing",
			unit:  domaintest.NewCharacterBuilder("BAD", "Bad").WithGearLevel(0).Build(),
			field: "gear level",
		},
	}
	for _, c := range violationCases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			player := domaintest.NewPlayerBuilder("123456789", now).
				WithUnits(
					c.unit,
					domaintest.NewCharacterBuilder("DARTHVADER", "Darth Vader").Build(),
					domaintest.NewShipBuilder("HOUNDSTOOTH", "Hound's Tooth").Build(),
				).
				Build()

			summary, err := roster.Summarize(player)
			require.ErrorIs(t, err, domain.ErrInvariantViolation)

			var violation *roster.InvariantViolationError
			require.ErrorAs(t, err, &violation)
			require.Equal(t, "BAD", violation.BaseID)
			require.Equal(t, c.field, violation.Field)

			// The valid units are still counted
			requireIdentities(t, summary)
			require.Equal(t, 1, summary.Characters.Count)
			require.Equal(t, 1, summary.Ships.Count)
		})
	}

	t.Run("every violation is reported", func(t *testing.T) {
		t.Parallel()

		player := domaintest.NewPlayerBuilder("123456789", now).
			WithUnits(
				domaintest.NewCharacterBuilder("FIRST", "First").WithLevel(90).Build(),
				domaintest.NewCharacterBuilder("SECOND", "Second").WithRarity(0).Build(),
			).
			Build()

		summary, err := roster.Summarize(player)
		require.ErrorIs(t, err, domain.ErrInvariantViolation)
		require.ErrorContains(t, err, "FIRST")
		require.ErrorContains(t, err, "SECOND")
		require.Equal(t, 0, summary.Characters.Count)
	})
}

func TestHelpers(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	player := domaintest.NewPlayerBuilder("123456789", now).
		WithUnits(
			domaintest.NewCharacterBuilder("DARTHVADER", "Darth Vader").Build(),
			domaintest.NewCharacterBuilder("REY", "Rey").WithZetas("ultimateability_GALACTICLEGEND_REY").Build(),
			domaintest.NewShipBuilder("HOUNDSTOOTH", "Hound's Tooth").Build(),
		).
		Build()

	t.Run("counts", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, 2, roster.CharacterCount(player))
		require.Equal(t, 1, roster.ShipCount(player))
		require.Equal(t, 0, roster.CountByCombatType(player, domain.CombatType(9)))
	})

	t.Run("galactic legend", func(t *testing.T) {
		t.Parallel()

		rey, ok := roster.FindUnitByName(player, "rey")
		require.True(t, ok)
		require.True(t, roster.IsGalacticLegend(rey))

		vader, ok := roster.FindUnitByName(player, "Darth Vader")
		require.True(t, ok)
		require.False(t, roster.IsGalacticLegend(vader))
	})

	t.Run("find unit", func(t *testing.T) {
		t.Parallel()

		unit, ok := roster.FindUnitByName(player, "HOUND'S TOOTH")
		require.True(t, ok)
		require.Equal(t, "HOUNDSTOOTH", unit.BaseID)

		_, ok = roster.FindUnitByName(player, "Hound")
		require.False(t, ok)
	})
}
