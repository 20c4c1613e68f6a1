package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	battleorch "github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/battle"
)

var (
	battleName  string
	battleNotes string
)

var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Create, list and manage battles",
}

var battleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List battles",
	Args:  cobra.NoArgs,
	RunE:  runBattleList,
}

var battleGetCmd = &cobra.Command{
	Use:   "get [battle-id]",
	Short: "Show a battle and its roster in initiative order",
	Args:  cobra.ExactArgs(1),
	RunE:  runBattleGet,
}

var battleCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an empty battle",
	Args:  cobra.NoArgs,
	RunE:  runBattleCreate,
}

var battleUpdateCmd = &cobra.Command{
	Use:   "update [battle-id]",
	Short: "Rename or annotate a battle",
	Long:  `Change a battle's name or notes. Flags left out keep their stored value; --notes "" clears the notes.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBattleUpdate,
}

var battleDeleteCmd = &cobra.Command{
	Use:   "delete [battle-id]",
	Short: "Delete a battle and its roster",
	Args:  cobra.ExactArgs(1),
	RunE:  runBattleDelete,
}

func init() {
	battleCreateCmd.Flags().StringVar(&battleName, "name", "", "Battle name")
	battleCreateCmd.Flags().StringVar(&battleNotes, "notes", "", "Free-form notes")

	battleUpdateCmd.Flags().StringVar(&battleName, "name", "", "New battle name")
	battleUpdateCmd.Flags().StringVar(&battleNotes, "notes", "", "New notes")

	battleCmd.AddCommand(battleListCmd)
	battleCmd.AddCommand(battleGetCmd)
	battleCmd.AddCommand(battleCreateCmd)
	battleCmd.AddCommand(battleUpdateCmd)
	battleCmd.AddCommand(battleDeleteCmd)
}

func parseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.InvalidArgumentf("%s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}

func runBattleList(cmd *cobra.Command, _ []string) error {
	out, err := tracker.battles.ListBattles(cmd.Context(), &battleorch.ListBattlesInput{})
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, out.Battles, func(tw *tabwriter.Writer) {
		printBattles(tw, out.Battles)
	})
}

func runBattleGet(cmd *cobra.Command, args []string) error {
	id, err := parseID("battle-id", args[0])
	if err != nil {
		return err
	}

	out, err := tracker.battles.GetBattle(cmd.Context(), &battleorch.GetBattleInput{BattleID: id})
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, out.Battle, func(tw *tabwriter.Writer) {
		printBattle(tw, out.Battle)
	})
}

func runBattleCreate(cmd *cobra.Command, _ []string) error {
	input := &battleorch.CreateBattleInput{Name: battleName}
	if cmd.Flags().Changed("notes") {
		input.Notes = &battleNotes
	}

	out, err := tracker.battles.CreateBattle(cmd.Context(), input)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, out.Battle, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Created battle %d: %s\n", out.Battle.ID, out.Battle.Name)
	})
}

func runBattleUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID("battle-id", args[0])
	if err != nil {
		return err
	}

	current, err := tracker.battles.GetBattle(cmd.Context(), &battleorch.GetBattleInput{BattleID: id})
	if err != nil {
		return err
	}

	input := &battleorch.UpdateBattleInput{
		BattleID: id,
		Name:     current.Battle.Name,
		Notes:    current.Battle.Notes,
	}
	if cmd.Flags().Changed("name") {
		input.Name = battleName
	}
	if cmd.Flags().Changed("notes") {
		input.Notes = &battleNotes
	}

	out, err := tracker.battles.UpdateBattle(cmd.Context(), input)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, out.Battle, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Updated battle %d: %s\n", out.Battle.ID, out.Battle.Name)
	})
}

func runBattleDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID("battle-id", args[0])
	if err != nil {
		return err
	}

	if _, err := tracker.battles.DeleteBattle(cmd.Context(), &battleorch.DeleteBattleInput{BattleID: id}); err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, map[string]int64{"deleted": id}, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Deleted battle %d\n", id)
	})
}
