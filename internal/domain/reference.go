package domain

// Static game reference data served by swgoh.gg

type GearLevel struct {
	Tier int
	Gear []string
}

type Character struct {
	BaseID             string
	PK                 int
	Name               string
	URL                string
	Image              string
	Power              int
	Description        string
	CombatType         CombatType
	GearLevels         []GearLevel
	Alignment          string
	Categories         []string
	AbilityClasses     []string
	Role               string
	ShipBaseID         string
	ShipSlot           *int
	ActivateShardCount int
}

func (c Character) DisplayName() string {
	return c.Name
}

type Ship struct {
	BaseID             string
	Name               string
	URL                string
	Image              string
	Power              int
	Description        string
	CombatType         CombatType
	Alignment          string
	Categories         []string
	AbilityClasses     []string
	Role               string
	CapitalShip        bool
	ActivateShardCount int
}

func (s Ship) DisplayName() string {
	return s.Name
}

type Ability struct {
	BaseID          string
	Name            string
	Image           string
	URL             string
	TierMax         int
	IsZeta          bool
	IsOmega         bool
	CombatType      CombatType
	Type            AbilityType
	CharacterBaseID string
	ShipBaseID      string
}

type GearIngredient struct {
	Amount     int
	GearBaseID string
}

type GearRecipe struct {
	BaseID      string
	ResultID    string
	Cost        int
	Ingredients []GearIngredient
}

type Gear struct {
	BaseID        string
	Name          string
	Tier          int
	Mark          string
	RequiredLevel int
	Cost          int
	Image         string
	URL           string
	Stats         map[StatType]float64
	Recipes       []GearRecipe
	Ingredients   []GearIngredient
}
