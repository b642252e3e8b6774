package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meur/umaviewer/internal/enrich"
	"github.com/meur/umaviewer/internal/lookup"
	"github.com/meur/umaviewer/internal/tables"
	"github.com/meur/umaviewer/internal/terminology"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich [input.json] [output.json]",
	Short: "Add English names to data.json",
	Long: `Downloads the community lookup tables and adds English names for characters,
outfits, skills, sparks, race wins, epithets and support cards.

Without arguments data.json is read from the working directory (or its parent) and
enriched_data.json is written next to it. A failed table download only leaves its
names out. The localization check runs on the result.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runEnrich,
}

func runEnrich(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	input, output, err := enrich.ResolvePaths(cfg.Dir, args)
	if err != nil {
		if errors.Is(err, enrich.ErrUsage) {
			fmt.Fprintln(out, "Usage: umaview enrich [input.json] [output.json]")
			fmt.Fprintln(out, "       If no arguments, reads data.json and writes enriched_data.json")
		}
		return err
	}

	fmt.Fprintf(out, "Loading %s...\n", input)
	records, err := enrich.LoadFile(input)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "[OK] Loaded %d characters\n\n", len(records))

	strategies, err := lookup.StrategiesByName(cfg.SparkStrategies)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Downloading translation data...")
	t := tables.NewFetcher(cfg.FetchTimeout, logger).Load(cmd.Context(), cfg.Sources)
	if !t.HasNames() {
		fmt.Fprintln(out, "\n[!] No translation data available, output will have IDs only")
	}

	fmt.Fprintln(out, "\nEnriching character data...")
	stats := enrich.Characters(records, lookup.NewResolver(t, strategies...))
	fmt.Fprintf(out, "  [OK] %d/%d characters with name data\n", stats.WithNames, stats.Characters)
	fmt.Fprintf(out, "  [OK] %d/%d characters with skill names\n", stats.WithSkillNames, stats.Characters)

	fmt.Fprintf(out, "\nSaving to %s...\n", output)
	if err := enrich.WriteFile(output, records); err != nil {
		return err
	}
	fmt.Fprintf(out, "[OK] Saved enriched data to %s\n", output)

	if len(records) > 0 && t.HasNames() {
		writeSample(cmd, records[0])
	}
	fmt.Fprintln(out, "\n[SUCCESS] Done!")

	rule := strings.Repeat("=", 50)
	fmt.Fprintf(out, "\n%s\nRunning localization check...\n%s\n\n", rule, rule)
	issues := terminology.CheckEnrichedFile(output)
	if len(issues) == 0 {
		fmt.Fprintln(out, "[OK] No localization issues found!")
		return nil
	}
	fmt.Fprintf(out, "[!] Found %d localization issue(s) from upstream data:\n\n", len(issues))
	terminology.WriteSummary(out, issues, 5)
	terminology.WriteReference(out)
	return nil
}

func writeSample(cmd *cobra.Command, rec any) {
	char, ok := rec.(map[string]any)
	if !ok {
		return
	}
	out := cmd.OutOrStdout()
	field := func(key string) any {
		if v, ok := char[key]; ok {
			return v
		}
		return "N/A"
	}

	fmt.Fprintln(out, "\n--- Sample enriched character ---")
	fmt.Fprintf(out, "  card_id: %v\n", field("card_id"))
	fmt.Fprintf(out, "  chara_name_en: %v\n", field("chara_name_en"))
	fmt.Fprintf(out, "  costume_name_en: %v\n", field("costume_name_en"))
	fmt.Fprintf(out, "  card_name_en: %v\n", field("card_name_en"))

	skills, _ := char["skill_array"].([]any)
	var named []map[string]any
	for _, s := range skills {
		if skill, ok := s.(map[string]any); ok {
			if _, ok := skill["skill_name_en"]; ok {
				named = append(named, skill)
			}
		}
	}
	if len(named) == 0 {
		return
	}
	fmt.Fprintf(out, "  skills with names: %d/%d\n", len(named), len(skills))
	for _, skill := range named[:min(3, len(named))] {
		fmt.Fprintf(out, "    - %v (Lv.%v)\n", skill["skill_name_en"], skill["level"])
	}
}
