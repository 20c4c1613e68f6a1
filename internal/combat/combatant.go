package combat

import (
	"sort"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
)

// IsValid reports whether the combatant's hit point fields are consistent:
// 0 <= HPCurrent <= HPMax, TempHP >= 0 and IsDead == (HPCurrent <= 0).
func IsValid(c entities.Combatant) bool {
	if c.HPCurrent < 0 || c.HPCurrent > c.HPMax {
		return false
	}
	if c.TempHP < 0 {
		return false
	}
	return c.IsDead == (c.HPCurrent <= 0)
}

// IsSorted reports whether the roster is ordered by initiative, highest first
func IsSorted(roster []entities.Combatant) bool {
	for i := 1; i < len(roster); i++ {
		if roster[i].Initiative > roster[i-1].Initiative {
			return false
		}
	}
	return true
}

// SortRoster returns a copy of the roster ordered by initiative, highest
// first. Ties keep their relative order.
func SortRoster(roster []entities.Combatant) []entities.Combatant {
	out := cloneRoster(roster)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Initiative > out[j].Initiative
	})
	return out
}

// Find returns the index of the combatant with the given id, or -1
func Find(roster []entities.Combatant, internalID string) int {
	for i := range roster {
		if roster[i].InternalID == internalID {
			return i
		}
	}
	return -1
}

func cloneRoster(roster []entities.Combatant) []entities.Combatant {
	out := make([]entities.Combatant, len(roster))
	copy(out, roster)
	return out
}
