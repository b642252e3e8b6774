package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meur/umaviewer/internal/extractor"
)

var autoConfirm bool

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Find and run UmaExtractor to export the veteran list to data.json",
	Long: `Searches for an UmaExtractor installation and runs it with the working directory
as its output directory.

Search order: $UMAEXTRACTOR_PATH, ../UmaExtractor, ~/Downloads, ~/Desktop, ~/Documents,
~/Dev, C:/Program Files, C:/Program Files (x86), C:/ and D:/ (each /UmaExtractor).

The game must be running on the Veteran List page (Enhance -> List).`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVarP(&autoConfirm, "yes", "y", false, "Skip the confirmation prompt")
}

func runExtract(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== umaview - Data Extractor ===")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Searching for UmaExtractor installation...")

	home, _ := os.UserHomeDir()
	paths := extractor.SearchPaths(cfg.Dir, home, cfg.ExtractorPath)
	tool, err := extractor.Locate(paths)
	if err != nil {
		logger.Debug("extractor search failed", zap.Strings("paths", paths))
		fmt.Fprintln(out, "\nSearched in:")
		for _, p := range paths {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		fmt.Fprintln(out, "\nSolutions:")
		fmt.Fprintln(out, "  1. Set UMAEXTRACTOR_PATH (or extractor_path in umaview.yaml) to the install directory")
		fmt.Fprintln(out, "  2. Place UmaExtractor in one of the locations above")
		fmt.Fprintf(out, "  3. Download from: %s\n", extractor.DownloadURL)
		return err
	}

	fmt.Fprintf(out, "Found UmaExtractor: %s\n", tool)
	fmt.Fprintf(out, "Output directory: %s\n\n", cfg.Dir)

	rule := strings.Repeat("=", 50)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "IMPORTANT: Before continuing, make sure:")
	fmt.Fprintln(out, "  1. Uma Musume Pretty Derby is RUNNING")
	fmt.Fprintln(out, "  2. You are on the VETERAN LIST page (Enhance -> List)")
	fmt.Fprintln(out, "  3. The page has FULLY LOADED")
	fmt.Fprintln(out, rule)

	if autoConfirm {
		fmt.Fprintln(out, "\n[Auto-confirm enabled, starting extraction...]")
	} else if err := extractor.Confirm(cmd.InOrStdin(), out); err != nil {
		if errors.Is(err, extractor.ErrCancelled) {
			fmt.Fprintln(out, "Extraction cancelled.")
		}
		return err
	}

	fmt.Fprintf(out, "\nRunning %s...\n", tool)
	if strings.HasSuffix(strings.ToLower(tool), ".py") {
		fmt.Fprintln(out, "(This requires the 'frida' and 'msgpack' packages)")
	}
	fmt.Fprintln(out, "(This may take up to 60 seconds)")
	fmt.Fprintln(out)

	res, err := extractor.Run(cmd.Context(), tool, cfg.Dir, out, cmd.ErrOrStderr())
	if err != nil {
		if errors.Is(err, extractor.ErrNoOutput) {
			fmt.Fprintln(out, "\nCheck the error messages above.")
		}
		return err
	}

	fmt.Fprintf(out, "\n[SUCCESS] Created %s\n", res.Path)
	fmt.Fprintf(out, "          Size: %.2f MB\n", res.SizeMB())
	fmt.Fprintln(out)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "Next step: umaview enrich")
	fmt.Fprintln(out, rule)
	return nil
}
