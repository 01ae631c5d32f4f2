package main

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"gopkg.in/yaml.v3"
)

// Manifest describes one patch run: the base document, the present
// capabilities, and the ordered patch files. Load order is authorship
// order.
type Manifest struct {
	Base         string       `yaml:"base"`
	Capabilities []string     `yaml:"capabilities"`
	Patches      []PatchEntry `yaml:"patches"`
}

// PatchEntry is one patch file, optionally gated by a boolean
// expression over has("Capability"). A gated-out entry is not loaded
// at all, as opposed to capability-gated operations, which load and
// branch at apply time.
type PatchEntry struct {
	File string `yaml:"file"`
	When string `yaml:"when,omitempty"`
}

func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	if m.Base == "" {
		return nil, fmt.Errorf("manifest %s: no base document", path)
	}
	return m, nil
}

// selectPatches evaluates each entry's when expression against the
// capability set and returns the files to load, preserving order.
func (m *Manifest) selectPatches(has func(string) bool) ([]string, error) {
	env := map[string]any{
		"has": has,
	}
	var files []string
	for _, p := range m.Patches {
		if p.When == "" {
			files = append(files, p.File)
			continue
		}
		prog, err := expr.Compile(p.When, expr.Env(env), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("patch %s: bad when expression: %w", p.File, err)
		}
		out, err := expr.Run(prog, env)
		if err != nil {
			return nil, fmt.Errorf("patch %s: when expression: %w", p.File, err)
		}
		if out.(bool) {
			files = append(files, p.File)
		}
	}
	return files, nil
}
