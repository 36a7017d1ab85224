package domain

import "fmt"

const (
	MaxUnitLevel          = 85
	MaxUnitRarity         = 7
	MaxCharacterGearLevel = 13
)

type CombatType int

const (
	CombatTypeCharacter CombatType = 1
	CombatTypeShip      CombatType = 2
)

func (c CombatType) String() string {
	switch c {
	case CombatTypeCharacter:
		return "character"
	case CombatTypeShip:
		return "ship"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

type AbilityType int

const (
	AbilityTypeBasic   AbilityType = 1
	AbilityTypeSpecial AbilityType = 2
	AbilityTypeLeader  AbilityType = 3
	AbilityTypeUnique  AbilityType = 4
	AbilityTypeCrew    AbilityType = 5
)

func (a AbilityType) Description() string {
	switch a {
	case AbilityTypeBasic:
		return "Basic"
	case AbilityTypeSpecial:
		return "Special"
	case AbilityTypeLeader:
		return "Leader"
	case AbilityTypeUnique:
		return "Unique"
	case AbilityTypeCrew:
		return "Crew"
	default:
		return fmt.Sprintf("Unknown ability: %d", int(a))
	}
}

// Stat ids as used by swgoh.gg for unit, gear and mod stats
type StatType int

const (
	StatHealth                    StatType = 1
	StatStrength                  StatType = 2
	StatAgility                   StatType = 3
	StatTactics                   StatType = 4
	StatSpeed                     StatType = 5
	StatPhysicalDamage            StatType = 6
	StatSpecialDamage             StatType = 7
	StatArmor                     StatType = 8
	StatResistance                StatType = 9
	StatArmorPenetration          StatType = 10
	StatResistancePenetration     StatType = 11
	StatDodgeChance               StatType = 12
	StatDeflectionChance          StatType = 13
	StatPhysicalCriticalChance    StatType = 14
	StatSpecialCriticalChance     StatType = 15
	StatCriticalDamage            StatType = 16
	StatPotency                   StatType = 17
	StatTenacity                  StatType = 18
	StatHealthSteal               StatType = 27
	StatProtection                StatType = 28
	StatPhysicalAccuracy          StatType = 37
	StatSpecialAccuracy           StatType = 38
	StatPhysicalCriticalAvoidance StatType = 39
	StatSpecialCriticalAvoidance  StatType = 40
)

var statNames = map[StatType]string{
	StatHealth:                    "Health",
	StatStrength:                  "Strength",
	StatAgility:                   "Agility",
	StatTactics:                   "Tactics",
	StatSpeed:                     "Speed",
	StatPhysicalDamage:            "Physical Damage",
	StatSpecialDamage:             "Special Damage",
	StatArmor:                     "Armor",
	StatResistance:                "Resistance",
	StatArmorPenetration:          "Armor Penetration",
	StatResistancePenetration:     "Resistance Penetration",
	StatDodgeChance:               "Dodge Chance",
	StatDeflectionChance:          "Deflection Chance",
	StatPhysicalCriticalChance:    "Physical Critical Chance",
	StatSpecialCriticalChance:     "Special Critical Chance",
	StatCriticalDamage:            "Critical Damage",
	StatPotency:                   "Potency",
	StatTenacity:                  "Tenacity",
	StatHealthSteal:               "Health Steal",
	StatProtection:                "Protection",
	StatPhysicalAccuracy:          "Physical Accuracy",
	StatSpecialAccuracy:           "Special Accuracy",
	StatPhysicalCriticalAvoidance: "Physical Critical Avoidance",
	StatSpecialCriticalAvoidance:  "Special Critical Avoidance",
}

func (s StatType) String() string {
	name, ok := statNames[s]
	if !ok {
		return fmt.Sprintf("Unknown stat: %d", int(s))
	}
	return name
}
