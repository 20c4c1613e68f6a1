package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	combatengine "github.com/KirkDiggler/rpg-combat-tracker/internal/combat"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	combatorch "github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/combat"
)

var (
	addCharacterID int64
	addCreatureID  int64
	addHPMax       string
	addInitiative  string
	addName        string
	addRoll        bool
	addModifier    int
)

var combatCmd = &cobra.Command{
	Use:   "combat",
	Short: "Add combatants and change hit points in a battle",
}

var combatAddCmd = &cobra.Command{
	Use:   "add [battle-id]",
	Short: "Add a character or creature to a battle",
	Long: `Add a combatant built from a stored character or creature.
--hp and --initiative override the source; --roll rolls a d20 plus --modifier
when no initiative is given. --name only applies to creatures.`,
	Args: cobra.ExactArgs(1),
	RunE: runCombatAdd,
}

func init() {
	flags := combatAddCmd.Flags()
	flags.Int64Var(&addCharacterID, "character", 0, "Character id to add")
	flags.Int64Var(&addCreatureID, "creature", 0, "Creature id to add")
	flags.StringVar(&addHPMax, "hp", "", "Max hit points override")
	flags.StringVar(&addInitiative, "initiative", "", "Initiative value")
	flags.StringVar(&addName, "name", "", "Display name override for creatures")
	flags.BoolVar(&addRoll, "roll", false, "Roll initiative when none is given")
	flags.IntVar(&addModifier, "modifier", 0, "Initiative modifier added to the roll")

	combatCmd.AddCommand(combatAddCmd)
	combatCmd.AddCommand(newChangeCmd(combatengine.ModeDamage, "Damage a combatant; temporary hit points absorb it first"))
	combatCmd.AddCommand(newChangeCmd(combatengine.ModeHeal, "Heal a combatant up to their max hit points"))
	combatCmd.AddCommand(newChangeCmd(combatengine.ModeTemp, "Add temporary hit points to a combatant"))
}

func runCombatAdd(cmd *cobra.Command, args []string) error {
	battleID, err := parseID("battle-id", args[0])
	if err != nil {
		return err
	}

	input := &combatorch.AddCombatantInput{
		BattleID:           battleID,
		NameOverride:       addName,
		RollInitiative:     addRoll,
		InitiativeModifier: addModifier,
	}
	switch {
	case addCharacterID > 0 && addCreatureID > 0:
		return errors.InvalidArgument("pass either --character or --creature, not both")
	case addCharacterID > 0:
		input.SourceKind, input.SourceID = entities.SourceKindCharacter, addCharacterID
	case addCreatureID > 0:
		input.SourceKind, input.SourceID = entities.SourceKindCreature, addCreatureID
	default:
		return errors.InvalidArgument("one of --character or --creature is required")
	}
	if cmd.Flags().Changed("hp") {
		input.HPMax = &addHPMax
	}
	if cmd.Flags().Changed("initiative") {
		input.Initiative = &addInitiative
	}

	out, err := tracker.combat.AddCombatant(cmd.Context(), input)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, addedView{Battle: out.Battle, Combatant: out.Combatant}, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Added %s (%s) with initiative %d\n\n", out.Combatant.Name, out.Combatant.InternalID, out.Combatant.Initiative)
		printBattle(tw, out.Battle)
	})
}

func newChangeCmd(mode combatengine.Mode, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(mode) + " [battle-id] [combatant-id] [amount]",
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			battleID, err := parseID("battle-id", args[0])
			if err != nil {
				return err
			}

			out, err := tracker.combat.ApplyChange(cmd.Context(), &combatorch.ApplyChangeInput{
				BattleID:    battleID,
				CombatantID: args[1],
				Mode:        mode,
				Amount:      args[2],
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), outputFormat, changeView{Battle: out.Battle, Changed: out.Changed}, func(tw *tabwriter.Writer) {
				if !out.Changed {
					fmt.Fprintln(tw, "Nothing changed.")
				}
				printBattle(tw, out.Battle)
			})
		},
	}
}
