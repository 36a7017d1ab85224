package domain

type PlayerMods struct {
	Count int
	Mods  []Mod
}

type Mod struct {
	ID              string
	CharacterBaseID string
	Slot            int
	Set             int
	Level           int
	Tier            int
	Rarity          int
	Primary         ModStat
	Secondary       []ModStat
}

type ModStat struct {
	StatID       StatType
	Name         string
	Value        float64
	DisplayValue string
	// Only set for secondary stats
	Roll int
}
