package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/entities"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("output", format, []string{formatText, formatJSON, formatYAML}, vb)
	return vb.Build()
}

// render writes v as JSON or YAML, or calls text for the human format
func render(w io.Writer, format string, v any, text func(tw *tabwriter.Writer)) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}

func printBattles(tw *tabwriter.Writer, battles []*entities.Battle) {
	fmt.Fprintln(tw, "ID\tNAME\tCOMBATANTS\tUPDATED")
	for _, b := range battles {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", b.ID, b.Name, len(b.Combatants), b.UpdatedAt.Format(time.DateTime))
	}
}

func printBattle(tw *tabwriter.Writer, b *entities.Battle) {
	fmt.Fprintf(tw, "Battle %d: %s\n", b.ID, b.Name)
	if b.Notes != nil {
		fmt.Fprintf(tw, "Notes: %s\n", *b.Notes)
	}
	if len(b.Combatants) == 0 {
		fmt.Fprintln(tw, "No combatants yet.")
		return
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "INIT\tID\tNAME\tTYPE\tHP\tTEMP\tAC\tSTATUS")
	for _, c := range b.Combatants {
		status := "up"
		if c.IsDead {
			status = "down"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d/%d\t%d\t%d\t%s\n",
			c.Initiative, c.InternalID, c.Name, c.SourceType, c.HPCurrent, c.HPMax, c.TempHP, c.AC, status)
	}
}

func printSources(tw *tabwriter.Writer, sources []*entities.Source) {
	fmt.Fprintln(tw, "ID\tNAME\tHP\tAC\tNOTES")
	for _, s := range sources {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Name, optInt(s.HP), optInt(s.AC), optString(s.Notes))
	}
}

func printAvatars(tw *tabwriter.Writer, avatars []*entities.Avatar) {
	fmt.Fprintln(tw, "CHARACTER\tURI\tUPDATED")
	for _, a := range avatars {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", a.CharacterID, a.URI, a.UpdatedAt.Format(time.DateTime))
	}
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

type addedView struct {
	Battle    *entities.Battle   `json:"battle" yaml:"battle"`
	Combatant entities.Combatant `json:"combatant" yaml:"combatant"`
}

type changeView struct {
	Battle  *entities.Battle `json:"battle" yaml:"battle"`
	Changed bool             `json:"changed" yaml:"changed"`
}

type sourceView struct {
	Source *entities.Source `json:"source" yaml:"source"`
	Avatar *entities.Avatar `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}
