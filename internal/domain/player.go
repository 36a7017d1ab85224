package domain

import (
	"time"
)

type Player struct {
	Details PlayerDetails
	Units   []PlayerUnit
}

type PlayerDetails struct {
	AllyCode string
	Name     string
	Level    int
	URL      string

	GalacticPower          int
	CharacterGalacticPower int
	ShipGalacticPower      int

	GuildID                string
	GuildName              string
	GuildContribution      int
	GuildExchangeDonations int

	ArenaRank         *int
	ArenaLeaderBaseID string
	FleetArenaRank    *int

	PVEBattlesWon  int
	PVEHardWon     int
	PVPBattlesWon  int
	ShipBattlesWon int
	GalacticWarWon int
	GuildRaidWon   int

	LastUpdated time.Time
}

// A unit owned by a player, with the player's progress on it
type PlayerUnit struct {
	BaseID     string
	Name       string
	CombatType CombatType
	URL        string

	Level     int
	Rarity    int
	GearLevel int
	RelicTier *int
	Power     int

	ZetaAbilities []string
	Abilities     []UnitAbility
	Gear          []UnitGearSlot
	ModSetIDs     []string
	Stats         map[StatType]float64
}

type UnitAbility struct {
	ID          string
	Name        string
	AbilityTier int
	TierMax     int
	IsZeta      bool
	IsOmega     bool
}

type UnitGearSlot struct {
	Slot       int
	IsObtained bool
	GearBaseID string
}
