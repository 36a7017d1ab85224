package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AllMightySauron/swgoh-api-swgohgg/internal/domain"
)

const galacticLegendMarker = "GALACTICLEGEND"

// Histograms are indexed by value-1, so Levels[84] counts level 85 units
type CharacterSummary struct {
	Count               int
	GalacticLegendCount int
	Levels              [domain.MaxUnitLevel]int
	Rarities            [domain.MaxUnitRarity]int
	Gear                [domain.MaxCharacterGearLevel]int
	Zetas               int
}

type ShipSummary struct {
	Count    int
	Levels   [domain.MaxUnitLevel]int
	Rarities [domain.MaxUnitRarity]int
}

type PlayerStatsSummary struct {
	Characters CharacterSummary
	Ships      ShipSummary
}

// InvariantViolationError describes an owned unit whose progress is out of range.
// The unit is left out of the summary.
type InvariantViolationError struct {
	BaseID string
	Field  string
	Value  int
	Max    int
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("%s: unit %s has %s %d outside [1, %d]", domain.ErrInvariantViolation.Error(), e.BaseID, e.Field, e.Value, e.Max)
}

func (e *InvariantViolationError) Unwrap() error {
	return domain.ErrInvariantViolation
}

func checkRange(unit domain.PlayerUnit, field string, value, maxValue int) error {
	if value < 1 || value > maxValue {
		return &InvariantViolationError{
			BaseID: unit.BaseID,
			Field:  field,
			Value:  value,
			Max:    maxValue,
		}
	}
	return nil
}

func validate(unit domain.PlayerUnit) error {
	err := errors.Join(
		checkRange(unit, "level", unit.Level, domain.MaxUnitLevel),
		checkRange(unit, "rarity", unit.Rarity, domain.MaxUnitRarity),
	)
	if unit.CombatType == domain.CombatTypeCharacter {
		err = errors.Join(err, checkRange(unit, "gear level", unit.GearLevel, domain.MaxCharacterGearLevel))
	}
	return err
}

// Summarize aggregates the player's roster.
//
// Units with an unknown combat type are ignored. Units with out of range values are
// skipped and reported in the returned error, which is nil when every unit is valid.
// The summary of the remaining units is always returned.
func Summarize(player domain.Player) (PlayerStatsSummary, error) {
	var summary PlayerStatsSummary
	var violations []error

	for _, unit := range player.Units {
		if unit.CombatType != domain.CombatTypeCharacter && unit.CombatType != domain.CombatTypeShip {
			continue
		}

		if err := validate(unit); err != nil {
			violations = append(violations, err)
			continue
		}

		switch unit.CombatType {
		case domain.CombatTypeCharacter:
			chars := &summary.Characters
			chars.Count++
			chars.Levels[unit.Level-1]++
			chars.Rarities[unit.Rarity-1]++
			chars.Gear[unit.GearLevel-1]++
			chars.Zetas += len(unit.ZetaAbilities)
			if IsGalacticLegend(unit) {
				chars.GalacticLegendCount++
			}
		case domain.CombatTypeShip:
			ships := &summary.Ships
			ships.Count++
			ships.Levels[unit.Level-1]++
			ships.Rarities[unit.Rarity-1]++
		}
	}

	return summary, errors.Join(violations...)
}

// IsGalacticLegend reports whether any of the unit's zeta abilities is a galactic legend ability
func IsGalacticLegend(unit domain.PlayerUnit) bool {
	for _, abilityID := range unit.ZetaAbilities {
		if strings.Contains(abilityID, galacticLegendMarker) {
			return true
		}
	}
	return false
}

func CountByCombatType(player domain.Player, combatType domain.CombatType) int {
	count := 0
	for _, unit := range player.Units {
		if unit.CombatType == combatType {
			count++
		}
	}
	return count
}

func CharacterCount(player domain.Player) int {
	return CountByCombatType(player, domain.CombatTypeCharacter)
}

func ShipCount(player domain.Player) int {
	return CountByCombatType(player, domain.CombatTypeShip)
}

// FindUnitByName returns the owned unit with the given display name, ignoring case
func FindUnitByName(player domain.Player, name string) (domain.PlayerUnit, bool) {
	for _, unit := range player.Units {
		if strings.EqualFold(unit.Name, name) {
			return unit, true
		}
	}
	return domain.PlayerUnit{}, false
}
