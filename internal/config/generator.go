package config

import (
	"path/filepath"

	"github.com/routegen/csimple/internal/generator"
)

// ToGeneratorConfig converts a Config to a generator.Config. The projectDir
// parameter anchors every relative path in the configuration.
func (c *Config) ToGeneratorConfig(projectDir string) generator.Config {
	return generator.Config{
		Roots:             resolveAll(projectDir, c.Sources),
		TestRoots:         resolveAll(projectDir, c.TestSources),
		IncludeJava:       c.IncludeJava,
		IncludeXML:        c.IncludeXML,
		IncludeTests:      c.IncludeTests,
		Includes:          c.Includes,
		Excludes:          c.Excludes,
		ResourceDir:       resolve(projectDir, c.ResourceDir),
		OutputDir:         resolve(projectDir, c.OutputDir),
		OutputResourceDir: resolve(projectDir, c.OutputResourceDir),
	}
}

func resolve(projectDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectDir, path)
}

func resolveAll(projectDir string, paths []string) []string {
	resolved := make([]string, 0, len(paths))
	for _, path := range paths {
		resolved = append(resolved, resolve(projectDir, path))
	}
	return resolved
}
