package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/treescope/internal/analyzer"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <name> <path>",
	Short: "Run a structural query against a source file",
	Long: `Run a named structural query against a file and print the matches.
Languages with a native query use it; everything else falls back to a
generic traversal matching node types against the query name.

Examples:
  treescope query functions main.go
  treescope query classes app.py
  treescope query headers index.html`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	engine, err := analyzer.NewEngine(cfg, nil)
	if err != nil {
		return err
	}
	defer engine.Close()

	req := analyzer.FileRequest(args[1])
	req.Queries = []string{args[0]}
	off := false
	req.IncludeElements = &off
	result, err := engine.AnalyzeSync(req)
	if err != nil {
		return err
	}

	out := newResultPrinter(cmd.OutOrStdout(), jsonOut)
	if err := out.Print(result); err != nil {
		return err
	}
	return out.Flush()
}
