// Package cmd contains the CLI commands for jade2html.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jpequegn/jade2html/internal/config"
	"github.com/jpequegn/jade2html/internal/tasks"
)

var (
	// Version is set at build time
	Version = "dev"

	// Flags
	configPath string
	verbose    bool
	dryRun     bool
	listTasks  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jade2html [task...]",
	Short: "Render Jade templates to HTML",
	Long: `jade2html runs named build tasks that render Jade templates
to HTML files.

Without arguments it runs the default task, Jade2HTML, which renders
Examples/Jade2HTML/templates/*.jade into dist with pretty output.
Tasks can be defined in jade2html.yaml:

  tasks:
    Jade2HTML:
      src: Examples/Jade2HTML/templates/*.jade
      dest: dist
      options:
        pretty: true`,
	Args:          cobra.ArbitraryArgs,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("✗ %v", err))
		return err
	}
	return nil
}

func init() {
	log.SetHandler(cli.New(os.Stderr))

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFile, "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every file read and written")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print rendered output without writing files")
	rootCmd.Flags().BoolVarP(&listTasks, "list", "l", false, "List tasks and exit")
}

// loadConfig reads the configuration and applies the logging level.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if verbose || cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	registry := tasks.FromConfig(cfg, dryRun, cmd.OutOrStdout())

	if listTasks {
		for _, t := range registry.Tasks() {
			name := t.Name
			if t.Name == cfg.DefaultTask {
				name += " (default)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", color.CyanString(name), t.Description)
		}
		return nil
	}

	names := args
	if len(names) == 0 {
		names = []string{cfg.DefaultTask}
	}

	if dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "🔍 Dry run mode - no files will be written")
	}

	if err := registry.Run(cmd.Context(), names...); err != nil {
		return err
	}

	if !dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✨ Done!"))
	}
	return nil
}
