// Package loaders implements the loaders command.
package loaders

import (
	"github.com/spf13/cobra"
	"github.com/steviee/cfdl/internal/catalog"
	"github.com/steviee/cfdl/internal/cli/clienv"
	"github.com/steviee/cfdl/internal/cli/versions"
	"github.com/steviee/cfdl/internal/picker"
)

// NewCommand creates the loaders command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loaders",
		Short: "List supported mod loaders",
		Long: `Print the fixed list of mod loaders offered in the loader dropdown.

CurseForge has no endpoint for this list, so no request is made.`,
		Example: `  cfdl loaders
  cfdl loaders --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := clienv.FromContext(cmd.Context())

			dd := picker.NewDropdown()
			catalog.PopulateLoaders(dd)

			if env.JSON {
				return clienv.WriteJSON(cmd.OutOrStdout(), map[string]interface{}{
					"options": dd.Options(),
					"count":   dd.Len(),
				})
			}
			return versions.PrintOptions(cmd.OutOrStdout(), dd.Options())
		},
	}

	return cmd
}
