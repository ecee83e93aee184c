package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/speakeasy-api/lintconfig/fragment"
	"github.com/speakeasy-api/lintconfig/presets"
	"github.com/speakeasy-api/lintconfig/resolver"
)

const (
	readmeFile  = "README.md"
	startMarker = "<!-- START PRESETS -->"
	endMarker   = "<!-- END PRESETS -->"
)

func main() {
	if err := updatePresetDocs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func updatePresetDocs() error {
	fmt.Println("🔄 Updating presets table in README...")

	content, err := generatePresetsTable(presets.Default())
	if err != nil {
		return fmt.Errorf("failed to generate presets table: %w", err)
	}

	data, err := os.ReadFile(readmeFile)
	if err != nil {
		return err
	}

	updated, err := replaceBetweenMarkers(string(data), content)
	if err != nil {
		return fmt.Errorf("%s: %w", readmeFile, err)
	}

	if err := os.WriteFile(readmeFile, []byte(updated), 0o600); err != nil {
		return err
	}

	fmt.Printf("✅ Updated %s\n", readmeFile)
	return nil
}

// generatePresetsTable resolves every preset in both modes and renders one table row per preset.
func generatePresetsTable(registry *presets.Registry) (string, error) {
	var content strings.Builder
	content.WriteString("| Preset | Description | Enabled rules (development / production) | Plugins |\n")
	content.WriteString("|--------|-------------|------------------------------------------|---------|\n")

	for _, name := range registry.Names() {
		p, _ := registry.Get(name)

		counts := make([]int, 0, 2)
		var plugins []string
		for _, production := range []bool{false, true} {
			fragments, err := registry.Expand(fragment.Environment{Production: production}, name)
			if err != nil {
				return "", err
			}
			cfg, err := resolver.Resolve(fragments...)
			if err != nil {
				return "", fmt.Errorf("preset %s: %w", name, err)
			}
			counts = append(counts, len(cfg.EnabledRules()))
			plugins = cfg.Plugins()
		}

		desc := strings.ReplaceAll(p.Description, "|", "\\|")
		desc = strings.ReplaceAll(desc, "\n", " ")

		pluginList := "-"
		if len(plugins) > 0 {
			pluginList = "`" + strings.Join(plugins, "`, `") + "`"
		}

		fmt.Fprintf(&content, "| `%s` | %s | %d / %d | %s |\n", name, desc, counts[0], counts[1], pluginList)
	}

	return content.String(), nil
}

func replaceBetweenMarkers(content, table string) (string, error) {
	startIdx := strings.Index(content, startMarker)
	endIdx := strings.Index(content, endMarker)

	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return "", fmt.Errorf("could not find presets markers")
	}

	before := content[:startIdx+len(startMarker)]
	after := content[endIdx:]

	return before + "\n\n" + table + "\n" + after, nil
}
