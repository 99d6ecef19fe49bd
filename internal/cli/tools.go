package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harun/toolgate/pkg/export"
)

var (
	toolsProfile string
	toolsFormat  string
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List a profile's tools or export their schemas",
	Long: `List the tools available to an agent profile, or export their schemas
in a function-calling format (json, anthropic, openai).`,
	RunE: runTools,
}

func init() {
	toolsCmd.Flags().StringVar(&toolsProfile, "profile", "", "agent profile (default from config)")
	toolsCmd.Flags().StringVar(&toolsFormat, "format", "names", "output format: names, json, anthropic, openai")
	rootCmd.AddCommand(toolsCmd)
}

func runTools(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	set, err := rt.toolSet(toolsProfile)
	if err != nil {
		return err
	}

	switch toolsFormat {
	case "names":
		for _, name := range set.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	case "json":
		return printJSON(cmd, export.Schemas(set.Definitions()))
	case "anthropic":
		return printJSON(cmd, export.Anthropic(set.Definitions()))
	case "openai":
		return printJSON(cmd, export.OpenAI(set.Definitions()))
	default:
		return fmt.Errorf("unknown format: %s", toolsFormat)
	}
}

func printJSON(cmd *cobra.Command, value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
