package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jpequegn/jade2html/internal/config"
	"github.com/jpequegn/jade2html/internal/generator"
)

var force bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create an example template and config file",
	Long: `init writes Examples/Jade2HTML/templates/index.jade and a
jade2html.yaml defining the Jade2HTML task, so that running jade2html
right after produces dist/index.html.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to current directory if no path provided
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("invalid path: %w", err)
		}

		scaffold := &generator.ScaffoldConfig{
			TaskName:    config.DefaultTaskName,
			TemplateDir: filepath.Dir(config.DefaultSrc),
			Dest:        config.DefaultDest,
			Pretty:      true,
		}
		written, err := generator.NewScaffoldGenerator().Generate(scaffold, absPath, filepath.Base(configPath), force)
		if err != nil {
			return err
		}
		for _, p := range written {
			fmt.Fprintf(cmd.OutOrStdout(), "   %s Created %s\n", color.GreenString("✅"), p)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	rootCmd.AddCommand(initCmd)
}
