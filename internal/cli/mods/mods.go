// Package mods implements the commands that resolve and download mod files.
package mods

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the mods command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mods",
		Short: "Resolve and download CurseForge mods",
		Long: `Resolve CurseForge mod page URLs to concrete files and download them.

A mod page URL such as https://www.curseforge.com/minecraft/mc-mods/jei is
reduced to its slug, the slug is looked up through the curse.tools API, and
the first file of that mod that lists the selected Minecraft version is
downloaded.`,
		Example: `  # Download JEI for 1.20.1
  cfdl mods download https://www.curseforge.com/minecraft/mc-mods/jei -g 1.20.1

  # Only show which file would be downloaded
  cfdl mods download https://www.curseforge.com/minecraft/mc-mods/jei -g 1.20.1 --dry-run`,
		Aliases: []string{"mod"},
	}

	cmd.AddCommand(NewDownloadCommand())

	return cmd
}
