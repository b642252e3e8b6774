package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meur/umaviewer/internal/config"
	"github.com/meur/umaviewer/internal/models"
	"github.com/meur/umaviewer/internal/terminology"
)

var fixViewer bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check enriched_data.json and viewer.html for non-Global terminology",
	Long: `Reports community terms (Runner, Leader, Betweener, Chaser, Wisdom, ...) where the
official Global English terms should be used.

Spark names are matched exactly so compound skill names are never flagged. With --fix,
UI labels in viewer.html are rewritten; enriched data is never modified. A missing
viewer.html only skips the UI label check.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&fixViewer, "fix", false, "Rewrite non-Global UI labels in viewer.html")
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== umaview - Localization Validator ===")
	fmt.Fprintln(out)

	var issues []models.Issue
	viewerPath := cfg.Path(config.ViewerFile)
	_, err := os.Stat(viewerPath)
	hasViewer := !errors.Is(err, os.ErrNotExist)
	if hasViewer {
		fmt.Fprintf(out, "Checking %s...\n", config.ViewerFile)
		issues = terminology.CheckViewerFile(viewerPath)
	} else {
		fmt.Fprintf(out, "[!] Warning: %s not found in %s, skipping UI label check\n", config.ViewerFile, cfg.Dir)
	}

	fmt.Fprintf(out, "Checking %s...\n", config.EnrichedFile)
	issues = append(issues, terminology.CheckEnrichedFile(cfg.Path(config.EnrichedFile))...)

	if len(issues) == 0 {
		fmt.Fprintln(out, "\n[OK] No localization issues found!")
		terminology.WriteReference(out)
		return nil
	}

	fmt.Fprintf(out, "\n[!] Found %d localization issue(s):\n\n", len(issues))
	for _, is := range issues {
		terminology.WriteIssue(out, is)
		fmt.Fprintln(out)
	}

	if fixViewer && !hasViewer {
		fmt.Fprintf(out, "\nNothing to fix: %s not found\n", config.ViewerFile)
	} else if fixViewer {
		fmt.Fprintf(out, "\n%s\nApplying fixes...\n", strings.Repeat("-", 40))
		n, err := terminology.FixViewerFile(viewerPath)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintf(out, "[OK] No fixes needed in %s\n", config.ViewerFile)
		} else {
			fmt.Fprintf(out, "[OK] Fixed %d issue(s) in %s\n", n, config.ViewerFile)
		}
	} else {
		fmt.Fprintf(out, "Run with --fix to automatically fix %s issues\n", config.ViewerFile)
	}

	terminology.WriteReference(out)
	return fmt.Errorf("found %d localization issue(s)", len(issues))
}
