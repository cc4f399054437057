package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archwall/pkg/arch"
	apperr "github.com/matzehuels/archwall/pkg/errors"
	"github.com/matzehuels/archwall/pkg/io"
)

func (c *CLI) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the reference composition as a starting point",
		Long: `Init writes the built-in three-arch reference composition to path
(default lewitt.toml). Use a .json extension to write JSON instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := arch.Reference().Name + ".toml"
			if len(args) > 0 {
				path = args[0]
			}
			return runInit(path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func runInit(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return apperr.New(apperr.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
	}
	if err := io.ExportFile(arch.Reference(), path); err != nil {
		return err
	}
	printSuccess("Wrote %s", path)
	printNextStep("Render it", "archwall render "+path+" -f svg,png")
	return nil
}
