package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List agent profiles and their tool sets",
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	for _, name := range rt.registry.Names() {
		set, _ := rt.registry.Get(name)
		marker := " "
		if name == rt.cfg.DefaultProfile {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d tools): %s\n",
			marker, name, set.Len(), strings.Join(set.Names(), ", "))
	}
	return nil
}
