package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
)

// storedRow is the subset of a stored combatant needed to spot rows written
// before hpCurrent, tempHp and isDead were always persisted
type storedRow struct {
	HPMax     int   `json:"hpMax"`
	HPCurrent *int  `json:"hpCurrent"`
	TempHP    *int  `json:"tempHp"`
	IsDead    *bool `json:"isDead"`
}

type storedBattle struct {
	Combatants []storedRow `json:"combatants"`
}

type repair struct {
	key     string
	reasons []string
	data    []byte
}

func main() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatal("Failed to parse Redis URL:", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning battle rosters...")

	iter := client.Scan(ctx, 0, "battle:*", 0).Iterator()

	var repairs []repair
	var unreadable []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		if key == "battle:index" || key == "battle:next_id" {
			continue
		}
		checkedCount++

		data, err := client.Get(ctx, key).Bytes()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		r, err := inspect(key, data)
		if err != nil {
			fmt.Printf("✗ Unreadable battle in %s: %v\n", key, err)
			unreadable = append(unreadable, key)
			continue
		}
		if r != nil {
			fmt.Printf("✗ %s: %s\n", key, strings.Join(r.reasons, ", "))
			repairs = append(repairs, *r)
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d battles, %d need repair, %d unreadable\n", checkedCount, len(repairs), len(unreadable))

	for _, key := range unreadable {
		fmt.Printf("  ! %s must be fixed by hand\n", key)
	}

	if len(repairs) == 0 {
		fmt.Println("No rosters to repair!")
		return
	}

	fmt.Print("\nDo you want to REWRITE these battles with normalized rosters? (yes/no): ")
	var response string
	fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, r := range repairs {
		// XX so a battle deleted since the scan is not recreated
		if err := client.SetXX(ctx, r.key, r.data, 0).Err(); err != nil {
			fmt.Printf("Failed to rewrite %s: %v\n", r.key, err)
		} else {
			fmt.Printf("Rewrote %s\n", r.key)
		}
	}
	fmt.Println("\nRepair complete!")
}

// inspect returns the normalized document for a battle whose stored roster
// has missing or out of range hit point fields, a stale isDead flag, or is out
// of initiative order. It returns nil when the battle is already clean.
func inspect(key string, data []byte) (*repair, error) {
	var raw storedBattle
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var battle entities.Battle
	if err := json.Unmarshal(data, &battle); err != nil {
		return nil, err
	}

	var reasons []string
	for i, row := range raw.Combatants {
		if row.HPCurrent == nil {
			reasons = append(reasons, fmt.Sprintf("combatant %d missing hpCurrent", i))
		}
		if row.TempHP == nil {
			reasons = append(reasons, fmt.Sprintf("combatant %d missing tempHp", i))
		} else if *row.TempHP < 0 {
			reasons = append(reasons, fmt.Sprintf("combatant %d has negative tempHp", i))
		}
		if row.HPMax < 0 {
			reasons = append(reasons, fmt.Sprintf("combatant %d has negative hpMax", i))
		}
		if row.HPCurrent != nil && (*row.HPCurrent < 0 || *row.HPCurrent > row.HPMax) {
			reasons = append(reasons, fmt.Sprintf("combatant %d has hpCurrent outside [0, hpMax]", i))
		}
		if row.IsDead == nil || *row.IsDead != battle.Combatants[i].IsDead {
			reasons = append(reasons, fmt.Sprintf("combatant %d has stale isDead", i))
		}
	}
	if !combat.IsSorted(battle.Combatants) {
		reasons = append(reasons, "roster out of initiative order")
		battle.Combatants = combat.SortRoster(battle.Combatants)
	}
	if battle.Combatants == nil {
		battle.Combatants = []entities.Combatant{}
	}

	if len(reasons) == 0 {
		return nil, nil
	}

	normalized, err := json.Marshal(&battle)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(normalized, data) {
		return nil, nil
	}
	return &repair{key: key, reasons: reasons, data: normalized}, nil
}
