package domaintest

import (
	"slices"
	"time"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domain"
)

type playerBuilder struct {
	player *domain.Player
}

func (pb *playerBuilder) WithName(name string) *playerBuilder {
	pb.player.Details.Name = name
	return pb
}

func (pb *playerBuilder) WithGuild(guildID, guildName string) *playerBuilder {
	pb.player.Details.GuildID = guildID
	pb.player.Details.GuildName = guildName
	return pb
}

func (pb *playerBuilder) WithGalacticPower(characterGP, shipGP int) *playerBuilder {
	pb.player.Details.CharacterGalacticPower = characterGP
	pb.player.Details.ShipGalacticPower = shipGP
	pb.player.Details.GalacticPower = characterGP + shipGP
	return pb
}

func (pb *playerBuilder) WithUnits(units ...domain.PlayerUnit) *playerBuilder {
	pb.player.Units = append(pb.player.Units, units...)
	return pb
}

func (pb *playerBuilder) Build() domain.Player {
	player := *pb.player
	player.Units = slices.Clone(pb.player.Units)
	return player
}

func (pb *playerBuilder) BuildPtr() *domain.Player {
	// Make a copy, so further mutations to the builder don't affect the returned player
	player := pb.Build()
	return &player
}

func NewPlayerBuilder(allyCode string, lastUpdated time.Time) *playerBuilder {
	player := &domain.Player{
		Details: domain.PlayerDetails{
			AllyCode:    allyCode,
			Name:        "Player " + allyCode,
			Level:       85,
			LastUpdated: lastUpdated,
		},
	}
	return &playerBuilder{
		player: player,
	}
}

type unitBuilder struct {
	unit domain.PlayerUnit
}

func (ub *unitBuilder) WithLevel(level int) *unitBuilder {
	ub.unit.Level = level
	return ub
}

func (ub *unitBuilder) WithRarity(rarity int) *unitBuilder {
	ub.unit.Rarity = rarity
	return ub
}

func (ub *unitBuilder) WithGearLevel(gearLevel int) *unitBuilder {
	ub.unit.GearLevel = gearLevel
	return ub
}

func (ub *unitBuilder) WithCombatType(combatType domain.CombatType) *unitBuilder {
	ub.unit.CombatType = combatType
	return ub
}

func (ub *unitBuilder) WithZetas(abilityIDs ...string) *unitBuilder {
	ub.unit.ZetaAbilities = append(ub.unit.ZetaAbilities, abilityIDs...)
	return ub
}

func (ub *unitBuilder) Build() domain.PlayerUnit {
	unit := ub.unit
	unit.ZetaAbilities = slices.Clone(ub.unit.ZetaAbilities)
	return unit
}

// A maxed out character: level 85, 7 stars, gear 13
func NewCharacterBuilder(baseID, name string) *unitBuilder {
	return &unitBuilder{
		unit: domain.PlayerUnit{
			BaseID:     baseID,
			Name:       name,
			CombatType: domain.CombatTypeCharacter,
			Level:      domain.MaxUnitLevel,
			Rarity:     domain.MaxUnitRarity,
			GearLevel:  domain.MaxCharacterGearLevel,
		},
	}
}

// A maxed out ship: level 85, 7 stars
func NewShipBuilder(baseID, name string) *unitBuilder {
	return &unitBuilder{
		unit: domain.PlayerUnit{
			BaseID:     baseID,
			Name:       name,
			CombatType: domain.CombatTypeShip,
			Level:      domain.MaxUnitLevel,
			Rarity:     domain.MaxUnitRarity,
		},
	}
}
