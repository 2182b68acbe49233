//go:build mage
// +build mage

package main

import (
	"context"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/magefile/mage/mg"

	"github.com/jpequegn/jade2html/internal/config"
	"github.com/jpequegn/jade2html/internal/tasks"
)

// Default target to run when none is specified.
var Default = Jade2HTML

func init() {
	log.SetHandler(cli.New(os.Stderr))
	if mg.Verbose() {
		log.SetLevel(log.DebugLevel)
	}
}

// Render Examples/Jade2HTML/templates/*.jade into dist.
// A Jade2HTML task defined in jade2html.yaml takes precedence.
func Jade2HTML(ctx context.Context) error {
	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		return err
	}
	if _, ok := cfg.Tasks[config.DefaultTaskName]; !ok {
		cfg.Tasks[config.DefaultTaskName] = config.DefaultTask()
	}
	return tasks.FromConfig(cfg, false, os.Stdout).Run(ctx, config.DefaultTaskName)
}
