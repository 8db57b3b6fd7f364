package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/treescope/internal/analyzer"
)

// languagesCmd represents the languages command
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages the analyzer recognizes",
	RunE:  runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func runLanguages(cmd *cobra.Command, args []string) error {
	engine, err := analyzer.NewEngine(nil, nil)
	if err != nil {
		return err
	}
	defer engine.Close()

	infos := engine.Languages()
	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	for _, info := range infos {
		status := "supported"
		if !info.Supported {
			status = "recognized, no grammar"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-24s %s\n", info.ID, strings.Join(info.Extensions, " "), status)
	}
	return nil
}
