// Package versions implements the versions command.
package versions

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/steviee/cfdl/internal/catalog"
	"github.com/steviee/cfdl/internal/cli/clienv"
	"github.com/steviee/cfdl/internal/picker"
)

// NewCommand creates the versions command
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List Minecraft versions known to CurseForge",
		Long: `Fetch the Minecraft version catalog and print it as the version
dropdown would show it: a disabled "Choose a version" placeholder followed by
one entry per version, in the order the API returns them.

When the catalog is empty a single "No versions found" entry is printed.
When the request fails a single "Failed to load versions" entry is printed
and the command exits with an error.`,
		Example: `  # List versions
  cfdl versions

  # JSON output for scripting
  cfdl versions --json`,
		Aliases:      []string{"version-list"},
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := clienv.FromContext(cmd.Context())

			dd := picker.NewDropdown(catalog.LoadingOption())
			err := catalog.LoadVersions(cmd.Context(), env.VersionSource(), dd)

			if env.JSON {
				data := map[string]interface{}{
					"options": dd.Options(),
					"count":   dd.Len(),
				}
				if err != nil {
					return clienv.WriteJSONErrorData(cmd.OutOrStdout(), fmt.Errorf("load versions: %w", err), data)
				}
				return clienv.WriteJSON(cmd.OutOrStdout(), data)
			}

			if werr := PrintOptions(cmd.OutOrStdout(), dd.Options()); werr != nil {
				return werr
			}
			if err != nil {
				return fmt.Errorf("load versions: %w", err)
			}
			return nil
		},
	}

	return cmd
}

// PrintOptions writes one dropdown option per line. Disabled options are
// shown in brackets and the selected option is marked with "*".
func PrintOptions(w io.Writer, opts []picker.Option) error {
	for _, opt := range opts {
		marker := " "
		if opt.Selected {
			marker = "*"
		}

		label := opt.Label
		if opt.Disabled {
			label = "[" + label + "]"
		}

		if _, err := fmt.Fprintf(w, "%s %s\n", marker, label); err != nil {
			return fmt.Errorf("write option: %w", err)
		}
	}
	return nil
}
