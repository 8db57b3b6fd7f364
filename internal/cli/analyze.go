package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/treescope/internal/analyzer"
)

var (
	analyzeQueries  []string
	analyzeLanguage string
	analyzeQuiet    bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path...]",
	Short: "Extract structural elements from source files",
	Long: `Analyze source files or directories and print the code elements found
in them. Directories are walked recursively, honoring the include and
ignore patterns from .treescope/config.yml.

Examples:
  treescope analyze main.go
  treescope analyze --query functions src/
  treescope analyze --json internal/ > elements.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringArrayVarP(&analyzeQueries, "query", "q", nil, "structural query to run alongside extraction (repeatable)")
	analyzeCmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "", "force a language instead of detecting by extension")
	analyzeCmd.Flags().BoolVar(&analyzeQuiet, "quiet", false, "suppress progress output")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	engine, err := analyzer.NewEngine(cfg, nil)
	if err != nil {
		return err
	}
	defer engine.Close()

	out := newResultPrinter(cmd.OutOrStdout(), jsonOut)

	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			if err := analyzeDir(cmd, engine, path, out); err != nil {
				return err
			}
			continue
		}

		req := analyzer.FileRequest(path)
		req.LanguageID = analyzeLanguage
		req.Queries = analyzeQueries
		result, err := engine.AnalyzeSync(req)
		if err != nil {
			return err
		}
		if err := out.Print(result); err != nil {
			return err
		}
	}
	return out.Flush()
}

func analyzeDir(cmd *cobra.Command, engine *analyzer.Engine, dir string, out *resultPrinter) error {
	progress := newBatchProgress(analyzeQuiet || jsonOut)
	batch, err := engine.AnalyzeBatch(cmd.Context(), dir, progress.advance)
	progress.finish()
	if err != nil {
		return err
	}

	for _, result := range batch.Results {
		if len(analyzeQueries) > 0 {
			// Batches run extraction only; queries run per file after
			// the walk, against the now-cached trees.
			qres, qerr := engine.Query(cmd.Context(), result.File.Path, analyzeQueries...)
			if qerr == nil {
				result.QueryResults = qres.QueryResults
			}
		}
		if err := out.Print(result); err != nil {
			return err
		}
	}

	for _, failure := range batch.Failures {
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", failure.Path, failure.Err)
	}
	if !analyzeQuiet && !jsonOut {
		fmt.Fprintf(cmd.ErrOrStderr(), "\n✓ %d files analyzed, %d skipped, %d failed\n",
			len(batch.Results), batch.Skipped, len(batch.Failures))
	}
	return nil
}
