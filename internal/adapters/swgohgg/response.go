package swgohgg

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domain"
)

// swgoh.gg timestamps carry no zone and are in UTC
const lastUpdatedLayout = "2006-01-02T15:04:05"

type apiGearLevel struct {
	Tier int      `json:"tier"`
	Gear []string `json:"gear"`
}

type apiCharacter struct {
	BaseID             string         `json:"base_id"`
	PK                 int            `json:"pk"`
	Name               string         `json:"name"`
	URL                string         `json:"url"`
	Image              string         `json:"image"`
	Power              int            `json:"power"`
	Description        string         `json:"description"`
	CombatType         int            `json:"combat_type"`
	GearLevels         []apiGearLevel `json:"gear_levels"`
	Alignment          string         `json:"alignment"`
	Categories         []string       `json:"categories"`
	AbilityClasses     []string       `json:"ability_classes"`
	Role               string         `json:"role"`
	Ship               string         `json:"ship"`
	ShipSlot           *int           `json:"ship_slot"`
	ActivateShardCount int            `json:"activate_shard_count"`
}

type apiShip struct {
	BaseID             string   `json:"base_id"`
	Name               string   `json:"name"`
	URL                string   `json:"url"`
	Image              string   `json:"image"`
	Power              int      `json:"power"`
	Description        string   `json:"description"`
	CombatType         int      `json:"combat_type"`
	Alignment          string   `json:"alignment"`
	Categories         []string `json:"categories"`
	AbilityClasses     []string `json:"ability_classes"`
	Role               string   `json:"role"`
	CapitalShip        bool     `json:"capital_ship"`
	ActivateShardCount int      `json:"activate_shard_count"`
}

type apiAbility struct {
	BaseID          string  `json:"base_id"`
	Name            string  `json:"name"`
	Image           string  `json:"image"`
	URL             string  `json:"url"`
	TierMax         int     `json:"tier_max"`
	IsZeta          bool    `json:"is_zeta"`
	IsOmega         bool    `json:"is_omega"`
	CombatType      int     `json:"combat_type"`
	Type            int     `json:"type"`
	CharacterBaseID *string `json:"character_base_id"`
	ShipBaseID      *string `json:"ship_base_id"`
}

type apiGearIngredient struct {
	Amount int    `json:"amount"`
	Gear   string `json:"gear"`
}

type apiGearRecipe struct {
	BaseID      string              `json:"base_id"`
	ResultID    string              `json:"result_id"`
	Cost        int                 `json:"cost"`
	Ingredients []apiGearIngredient `json:"ingredients"`
}

type apiGear struct {
	BaseID        string              `json:"base_id"`
	Name          string              `json:"name"`
	Tier          int                 `json:"tier"`
	Mark          string              `json:"mark"`
	RequiredLevel int                 `json:"required_level"`
	Cost          int                 `json:"cost"`
	Image         string              `json:"image"`
	URL           string              `json:"url"`
	Stats         map[string]float64  `json:"stats"`
	Recipes       []apiGearRecipe     `json:"recipes"`
	Ingredients   []apiGearIngredient `json:"ingredients"`
}

type apiUnitAbility struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AbilityTier int    `json:"ability_tier"`
	TierMax     int    `json:"tier_max"`
	IsZeta      bool   `json:"is_zeta"`
	IsOmega     bool   `json:"is_omega"`
}

type apiUnitGear struct {
	Slot       int    `json:"slot"`
	IsObtained bool   `json:"is_obtained"`
	BaseID     string `json:"base_id"`
}

type apiUnitData struct {
	BaseID        string             `json:"base_id"`
	Name          string             `json:"name"`
	CombatType    int                `json:"combat_type"`
	Level         int                `json:"level"`
	Rarity        int                `json:"rarity"`
	GearLevel     int                `json:"gear_level"`
	RelicTier     *int               `json:"relic_tier"`
	Power         int                `json:"power"`
	URL           string             `json:"url"`
	ZetaAbilities []string           `json:"zeta_abilities"`
	AbilityData   []apiUnitAbility   `json:"ability_data"`
	Gear          []apiUnitGear      `json:"gear"`
	ModSetIDs     []string           `json:"mod_set_ids"`
	Stats         map[string]float64 `json:"stats"`
}

type apiUnit struct {
	Data apiUnitData `json:"data"`
}

type apiRank struct {
	Rank *int `json:"rank"`
}

type apiPlayerData struct {
	AllyCode               int64    `json:"ally_code"`
	Name                   string   `json:"name"`
	Level                  int      `json:"level"`
	GalacticPower          int      `json:"galactic_power"`
	CharacterGalacticPower int      `json:"character_galactic_power"`
	ShipGalacticPower      int      `json:"ship_galactic_power"`
	GuildID                string   `json:"guild_id"`
	GuildName              string   `json:"guild_name"`
	ArenaRank              *int     `json:"arena_rank"`
	FleetArena             *apiRank `json:"fleet_arena"`
	Arena                  *apiRank `json:"arena"`
	ArenaLeaderBaseID      string   `json:"arena_leader_base_id"`
	PVEBattlesWon          int      `json:"pve_battles_won"`
	PVEHardWon             int      `json:"pve_hard_won"`
	PVPBattlesWon          int      `json:"pvp_battles_won"`
	ShipBattlesWon         int      `json:"ship_battles_won"`
	GalacticWarWon         int      `json:"galactic_war_won"`
	GuildRaidWon           int      `json:"guild_raid_won"`
	GuildContribution      int      `json:"guild_contribution"`
	GuildExchangeDonations int      `json:"guild_exchange_donations"`
	LastUpdated            string   `json:"last_updated"`
	URL                    string   `json:"url"`
}

type apiPlayer struct {
	Units []apiUnit     `json:"units"`
	Data  apiPlayerData `json:"data"`
}

type apiGuildData struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MemberCount   int    `json:"member_count"`
	GalacticPower int    `json:"galactic_power"`
	Rank          int    `json:"rank"`
	ProfileCount  int    `json:"profile_count"`
}

type apiGuild struct {
	Players []apiPlayer  `json:"players"`
	Data    apiGuildData `json:"data"`
}

type apiModStat struct {
	Roll         int     `json:"roll"`
	StatID       int     `json:"stat_id"`
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	DisplayValue string  `json:"display_value"`
}

type apiMod struct {
	ID             string       `json:"id"`
	Slot           int          `json:"slot"`
	Set            int          `json:"set"`
	Level          int          `json:"level"`
	Tier           int          `json:"tier"`
	Rarity         int          `json:"rarity"`
	Character      string       `json:"character"`
	PrimaryStat    apiModStat   `json:"primary_stat"`
	SecondaryStats []apiModStat `json:"secondary_stats"`
}

type apiPlayerMods struct {
	Count int      `json:"count"`
	Mods  []apiMod `json:"mods"`
}

func parse[T any](data []byte) (T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return result, nil
}

func convertStats(stats map[string]float64) map[domain.StatType]float64 {
	if len(stats) == 0 {
		return nil
	}
	result := make(map[domain.StatType]float64, len(stats))
	for key, value := range stats {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		result[domain.StatType(id)] = value
	}
	return result
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseLastUpdated(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(lastUpdatedLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse last_updated %q: %w", raw, err)
	}
	return t.UTC(), nil
}

func toCharacter(c apiCharacter) domain.Character {
	gearLevels := make([]domain.GearLevel, 0, len(c.GearLevels))
	for _, level := range c.GearLevels {
		gearLevels = append(gearLevels, domain.GearLevel{Tier: level.Tier, Gear: level.Gear})
	}

	return domain.Character{
		BaseID:             c.BaseID,
		PK:                 c.PK,
		Name:               c.Name,
		URL:                c.URL,
		Image:              c.Image,
		Power:              c.Power,
		Description:        c.Description,
		CombatType:         domain.CombatType(c.CombatType),
		GearLevels:         gearLevels,
		Alignment:          c.Alignment,
		Categories:         c.Categories,
		AbilityClasses:     c.AbilityClasses,
		Role:               c.Role,
		ShipBaseID:         c.Ship,
		ShipSlot:           c.ShipSlot,
		ActivateShardCount: c.ActivateShardCount,
	}
}

func toShip(s apiShip) domain.Ship {
	return domain.Ship{
		BaseID:             s.BaseID,
		Name:               s.Name,
		URL:                s.URL,
		Image:              s.Image,
		Power:              s.Power,
		Description:        s.Description,
		CombatType:         domain.CombatType(s.CombatType),
		Alignment:          s.Alignment,
		Categories:         s.Categories,
		AbilityClasses:     s.AbilityClasses,
		Role:               s.Role,
		CapitalShip:        s.CapitalShip,
		ActivateShardCount: s.ActivateShardCount,
	}
}

func toAbility(a apiAbility) domain.Ability {
	return domain.Ability{
		BaseID:          a.BaseID,
		Name:            a.Name,
		Image:           a.Image,
		URL:             a.URL,
		TierMax:         a.TierMax,
		IsZeta:          a.IsZeta,
		IsOmega:         a.IsOmega,
		CombatType:      domain.CombatType(a.CombatType),
		Type:            domain.AbilityType(a.Type),
		CharacterBaseID: derefString(a.CharacterBaseID),
		ShipBaseID:      derefString(a.ShipBaseID),
	}
}

func toIngredients(ingredients []apiGearIngredient) []domain.GearIngredient {
	result := make([]domain.GearIngredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		result = append(result, domain.GearIngredient{Amount: ingredient.Amount, GearBaseID: ingredient.Gear})
	}
	return result
}

func toGear(g apiGear) domain.Gear {
	recipes := make([]domain.GearRecipe, 0, len(g.Recipes))
	for _, recipe := range g.Recipes {
		recipes = append(recipes, domain.GearRecipe{
			BaseID:      recipe.BaseID,
			ResultID:    recipe.ResultID,
			Cost:        recipe.Cost,
			Ingredients: toIngredients(recipe.Ingredients),
		})
	}

	return domain.Gear{
		BaseID:        g.BaseID,
		Name:          g.Name,
		Tier:          g.Tier,
		Mark:          g.Mark,
		RequiredLevel: g.RequiredLevel,
		Cost:          g.Cost,
		Image:         g.Image,
		URL:           g.URL,
		Stats:         convertStats(g.Stats),
		Recipes:       recipes,
		Ingredients:   toIngredients(g.Ingredients),
	}
}

func toPlayerUnit(u apiUnitData) domain.PlayerUnit {
	abilities := make([]domain.UnitAbility, 0, len(u.AbilityData))
	for _, ability := range u.AbilityData {
		abilities = append(abilities, domain.UnitAbility{
			ID:          ability.ID,
			Name:        ability.Name,
			AbilityTier: ability.AbilityTier,
			TierMax:     ability.TierMax,
			IsZeta:      ability.IsZeta,
			IsOmega:     ability.IsOmega,
		})
	}

	gear := make([]domain.UnitGearSlot, 0, len(u.Gear))
	for _, slot := range u.Gear {
		gear = append(gear, domain.UnitGearSlot{
			Slot:       slot.Slot,
			IsObtained: slot.IsObtained,
			GearBaseID: slot.BaseID,
		})
	}

	return domain.PlayerUnit{
		BaseID:        u.BaseID,
		Name:          u.Name,
		CombatType:    domain.CombatType(u.CombatType),
		URL:           u.URL,
		Level:         u.Level,
		Rarity:        u.Rarity,
		GearLevel:     u.GearLevel,
		RelicTier:     u.RelicTier,
		Power:         u.Power,
		ZetaAbilities: u.ZetaAbilities,
		Abilities:     abilities,
		Gear:          gear,
		ModSetIDs:     u.ModSetIDs,
		Stats:         convertStats(u.Stats),
	}
}

func toPlayer(p apiPlayer) (domain.Player, error) {
	lastUpdated, err := parseLastUpdated(p.Data.LastUpdated)
	if err != nil {
		return domain.Player{}, err
	}

	arenaRank := p.Data.ArenaRank
	if arenaRank == nil && p.Data.Arena != nil {
		arenaRank = p.Data.Arena.Rank
	}
	var fleetArenaRank *int
	if p.Data.FleetArena != nil {
		fleetArenaRank = p.Data.FleetArena.Rank
	}

	units := make([]domain.PlayerUnit, 0, len(p.Units))
	for _, unit := range p.Units {
		units = append(units, toPlayerUnit(unit.Data))
	}

	return domain.Player{
		Details: domain.PlayerDetails{
			AllyCode: fmt.Sprintf("%09d", p.Data.AllyCode),
			Name:     p.Data.Name,
			Level:    p.Data.Level,
			URL:      p.Data.URL,

			GalacticPower:          p.Data.GalacticPower,
			CharacterGalacticPower: p.Data.CharacterGalacticPower,
			ShipGalacticPower:      p.Data.ShipGalacticPower,

			GuildID:                p.Data.GuildID,
			GuildName:              p.Data.GuildName,
			GuildContribution:      p.Data.GuildContribution,
			GuildExchangeDonations: p.Data.GuildExchangeDonations,

			ArenaRank:         arenaRank,
			ArenaLeaderBaseID: p.Data.ArenaLeaderBaseID,
			FleetArenaRank:    fleetArenaRank,

			PVEBattlesWon:  p.Data.PVEBattlesWon,
			PVEHardWon:     p.Data.PVEHardWon,
			PVPBattlesWon:  p.Data.PVPBattlesWon,
			ShipBattlesWon: p.Data.ShipBattlesWon,
			GalacticWarWon: p.Data.GalacticWarWon,
			GuildRaidWon:   p.Data.GuildRaidWon,

			LastUpdated: lastUpdated,
		},
		Units: units,
	}, nil
}

func toGuild(g apiGuild) (domain.Guild, error) {
	members := make([]domain.Player, 0, len(g.Players))
	for _, p := range g.Players {
		member, err := toPlayer(p)
		if err != nil {
			return domain.Guild{}, fmt.Errorf("failed to convert guild member: %w", err)
		}
		members = append(members, member)
	}

	return domain.Guild{
		Details: domain.GuildDetails{
			ID:            g.Data.ID,
			Name:          g.Data.Name,
			MemberCount:   g.Data.MemberCount,
			GalacticPower: g.Data.GalacticPower,
			Rank:          g.Data.Rank,
			ProfileCount:  g.Data.ProfileCount,
		},
		Members: members,
	}, nil
}

func toModStat(s apiModStat) domain.ModStat {
	return domain.ModStat{
		StatID:       domain.StatType(s.StatID),
		Name:         s.Name,
		Value:        s.Value,
		DisplayValue: s.DisplayValue,
		Roll:         s.Roll,
	}
}

func toPlayerMods(m apiPlayerMods) domain.PlayerMods {
	mods := make([]domain.Mod, 0, len(m.Mods))
	for _, mod := range m.Mods {
		secondary := make([]domain.ModStat, 0, len(mod.SecondaryStats))
		for _, stat := range mod.SecondaryStats {
			secondary = append(secondary, toModStat(stat))
		}

		mods = append(mods, domain.Mod{
			ID:              mod.ID,
			CharacterBaseID: mod.Character,
			Slot:            mod.Slot,
			Set:             mod.Set,
			Level:           mod.Level,
			Tier:            mod.Tier,
			Rarity:          mod.Rarity,
			Primary:         toModStat(mod.PrimaryStat),
			Secondary:       secondary,
		})
	}

	return domain.PlayerMods{
		Count: m.Count,
		Mods:  mods,
	}
}
