package combat

import (
	"math"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
)

// Mode selects how an amount changes a combatant's hit points
type Mode string

const (
	ModeHeal   Mode = "heal"
	ModeDamage Mode = "damage"
	ModeTemp   Mode = "temp"
)

// Valid reports whether the mode is known
func (m Mode) Valid() bool {
	switch m {
	case ModeHeal, ModeDamage, ModeTemp:
		return true
	}
	return false
}

// ParseAmount parses raw as a plain positive integer after trimming spaces.
// ok is false for blank input, signs, any non-digit, overflow or zero.
func ParseAmount(raw string) (int, bool) {
	digits := strings.TrimSpace(raw)
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	amount, err := strconv.Atoi(digits)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}

// ApplyChange parses the user supplied amount and applies it. Incomplete
// input leaves the roster unchanged instead of failing.
func ApplyChange(roster []entities.Combatant, internalID string, mode Mode, rawAmount string) []entities.Combatant {
	amount, ok := ParseAmount(rawAmount)
	if !ok {
		return roster
	}
	return ApplyAmount(roster, internalID, mode, amount)
}

// ApplyAmount applies a heal, damage or temp change to the combatant with
// internalID and returns a new roster. The roster is returned as is when the
// amount is not positive, the mode is unknown or no combatant matches.
// Roster order never changes.
func ApplyAmount(roster []entities.Combatant, internalID string, mode Mode, amount int) []entities.Combatant {
	if amount <= 0 || !mode.Valid() {
		return roster
	}
	idx := Find(roster, internalID)
	if idx < 0 {
		return roster
	}

	next := cloneRoster(roster)
	next[idx] = resolve(next[idx], mode, amount)
	return next
}

func resolve(c entities.Combatant, mode Mode, amount int) entities.Combatant {
	switch mode {
	case ModeTemp:
		if amount >= math.MaxInt-c.TempHP {
			c.TempHP = math.MaxInt
		} else {
			c.TempHP += amount
		}
	case ModeDamage:
		// temporary hit points always soak damage first
		used := min(c.TempHP, amount)
		c.TempHP -= used
		if remaining := amount - used; remaining > 0 {
			c.HPCurrent = max(0, c.HPCurrent-remaining)
		}
	case ModeHeal:
		if amount >= c.HPMax-c.HPCurrent {
			c.HPCurrent = c.HPMax
		} else {
			c.HPCurrent += amount
		}
	}
	c.IsDead = c.HPCurrent <= 0
	return c
}
