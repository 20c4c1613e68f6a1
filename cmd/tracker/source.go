package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/clients/srd"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	sourceorch "github.com/KirkDiggler/rpg-combat-tracker/internal/orchestrators/source"
)

const (
	characterKind = entities.SourceKindCharacter
	creatureKind  = entities.SourceKindCreature
)

// sourceForm holds the editor flags of one kind's create and update commands
type sourceForm struct {
	name  string
	hp    string
	ac    string
	notes string
}

func (f *sourceForm) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Name")
	cmd.Flags().StringVar(&f.hp, "hp", "", "Hit points, blank means 0")
	cmd.Flags().StringVar(&f.ac, "ac", "", "Armor class, blank means 0")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Free-form notes")
}

func (f *sourceForm) form() sourceorch.Form {
	return sourceorch.Form{Name: f.name, HP: f.hp, AC: f.ac, Notes: f.notes}
}

// newSourceCmd builds the character or creature command tree
func newSourceCmd(kind entities.SourceKind) *cobra.Command {
	plural := string(kind) + "s"
	form := &sourceForm{}

	root := &cobra.Command{
		Use:   string(kind),
		Short: "Manage " + plural,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List " + plural,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := tracker.sources.ListSources(cmd.Context(), &sourceorch.ListSourcesInput{Kind: kind})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), outputFormat, out.Sources, func(tw *tabwriter.Writer) {
				printSources(tw, out.Sources)
			})
		},
	}

	get := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one " + string(kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			out, err := tracker.sources.GetSource(cmd.Context(), &sourceorch.GetSourceInput{Kind: kind, ID: id})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), outputFormat, sourceView{Source: out.Source, Avatar: out.Avatar}, func(tw *tabwriter.Writer) {
				printSources(tw, []*entities.Source{out.Source})
				if out.Avatar != nil {
					fmt.Fprintf(tw, "\nAvatar: %s\n", out.Avatar.URI)
				}
			})
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a " + string(kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := tracker.sources.CreateSource(cmd.Context(), &sourceorch.CreateSourceInput{Kind: kind, Form: form.form()})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), outputFormat, out.Source, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Created %s %d: %s\n", kind, out.Source.ID, out.Source.Name)
			})
		},
	}
	form.bind(create)

	update := &cobra.Command{
		Use:   "update [id]",
		Short: "Replace a " + string(kind) + "'s fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			out, err := tracker.sources.UpdateSource(cmd.Context(), &sourceorch.UpdateSourceInput{Kind: kind, ID: id, Form: form.form()})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), outputFormat, out.Source, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Updated %s %d: %s\n", kind, out.Source.ID, out.Source.Name)
			})
		},
	}
	form.bind(update)

	del := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a " + string(kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("id", args[0])
			if err != nil {
				return err
			}
			out, err := tracker.sources.DeleteSource(cmd.Context(), &sourceorch.DeleteSourceInput{Kind: kind, ID: id})
			if err != nil {
				return err
			}
			view := map[string]any{"deleted": id, "avatarRemoved": out.AvatarRemoved}
			return render(cmd.OutOrStdout(), outputFormat, view, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Deleted %s %d\n", kind, id)
			})
		},
	}

	root.AddCommand(list, get, create, update, del)

	switch kind {
	case characterKind:
		root.AddCommand(newAvatarCmd())
	case creatureKind:
		root.AddCommand(newSRDCmd())
	}
	return root
}

func newAvatarCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "avatar",
		Short: "Attach local images to characters",
	}

	set := &cobra.Command{
		Use:   "set [character-id] [uri]",
		Short: "Attach an image reference to a character",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("character-id", args[0])
			if err != nil {
				return err
			}
			out, err := tracker.sources.SetAvatar(cmd.Context(), &sourceorch.SetAvatarInput{CharacterID: id, URI: args[1]})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), outputFormat, out.Avatar, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Character %d avatar set to %s\n", id, out.Avatar.URI)
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List character avatars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := tracker.sources.ListAvatars(cmd.Context(), &sourceorch.ListAvatarsInput{})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), outputFormat, out.Avatars, func(tw *tabwriter.Writer) {
				printAvatars(tw, out.Avatars)
			})
		},
	}

	root.AddCommand(set, list)
	return root
}

func newSRDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "srd [query]",
		Short: "Search SRD monster names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			out, err := tracker.sources.SearchMonsters(cmd.Context(), &sourceorch.SearchMonstersInput{Query: query})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), outputFormat, out.Monsters, func(tw *tabwriter.Writer) {
				printMonsters(tw, out.Monsters)
			})
		},
	}
}

func printMonsters(tw *tabwriter.Writer, monsters []srd.Monster) {
	fmt.Fprintln(tw, "KEY\tNAME")
	for _, m := range monsters {
		fmt.Fprintf(tw, "%s\t%s\n", m.Key, m.Name)
	}
}
