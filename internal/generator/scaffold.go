package generator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// ScaffoldConfig holds the configuration for generating an example project.
type ScaffoldConfig struct {
	// TaskName is the name of the task written to the config file
	TaskName string

	// TemplateDir is where the example template is written
	// (e.g., "Examples/Jade2HTML/templates")
	TemplateDir string

	// Dest is the output directory of the task (e.g., "dist")
	Dest string

	// Pretty sets the pretty option of the task
	Pretty bool
}

// Src returns the source glob of the scaffolded task.
func (c *ScaffoldConfig) Src() string {
	return filepath.ToSlash(filepath.Join(c.TemplateDir, "*.jade"))
}

// ScaffoldGenerator writes an example template and a matching config file.
type ScaffoldGenerator struct{}

// NewScaffoldGenerator creates a new scaffold generator.
func NewScaffoldGenerator() *ScaffoldGenerator {
	return &ScaffoldGenerator{}
}

// Generate writes the example template and configFile under projectPath.
// Existing files are left alone unless force is set.
// It returns the paths it wrote.
func (g *ScaffoldGenerator) Generate(config *ScaffoldConfig, projectPath, configFile string, force bool) ([]string, error) {
	tmplContent, err := readTemplate("index.jade")
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	configContent, err := g.GenerateContent(config)
	if err != nil {
		return nil, err
	}

	files := []struct {
		path    string
		content []byte
	}{
		{filepath.Join(projectPath, config.TemplateDir, "index.jade"), tmplContent},
		{filepath.Join(projectPath, configFile), configContent},
	}

	// Check everything first so a refusal writes nothing
	if !force {
		for _, f := range files {
			if _, err := os.Stat(f.path); err == nil {
				return nil, fmt.Errorf("%s already exists. Use --force to overwrite", f.path)
			}
		}
	}

	var written []string
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
			return written, fmt.Errorf("failed to create directory for %s: %w", f.path, err)
		}
		if err := os.WriteFile(f.path, f.content, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		written = append(written, f.path)
	}
	return written, nil
}

// GenerateContent returns the config file content without writing to disk.
func (g *ScaffoldGenerator) GenerateContent(config *ScaffoldConfig) ([]byte, error) {
	tmpl, err := loadTemplate("jade2html.yaml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, config); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}
