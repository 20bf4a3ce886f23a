// Package config loads the tool configuration: which source roots to scan,
// where generated sources and resources go, and how candidate files are
// filtered. Values come from defaults, an optional csimple.yaml in the
// project directory, CSIMPLE_* environment variables, and command line
// flags, in that order of increasing priority.
package config

// Config represents the complete tool configuration.
type Config struct {
	// Sources are the main source roots, relative to the project
	// directory unless absolute.
	Sources []string `yaml:"sources" mapstructure:"sources"`
	// TestSources are scanned in addition when IncludeTests is set.
	TestSources []string `yaml:"test_sources" mapstructure:"test_sources"`

	// OutputDir receives the generated Java source units.
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	// OutputResourceDir receives the generated manifest resource.
	OutputResourceDir string `yaml:"output_resource_dir" mapstructure:"output_resource_dir"`
	// ResourceDir is where the optional camel-csimple.properties lives.
	ResourceDir string `yaml:"resource_dir" mapstructure:"resource_dir"`

	// IncludeJava and IncludeXML select the dialects to process.
	IncludeJava bool `yaml:"include_java" mapstructure:"include_java"`
	IncludeXML  bool `yaml:"include_xml" mapstructure:"include_xml"`
	// IncludeTests adds the test source roots to the scan.
	IncludeTests bool `yaml:"include_test" mapstructure:"include_test"`

	// Includes and Excludes filter candidate files by relative path or
	// file name; entries may be globs or regular expressions.
	Includes []string `yaml:"includes" mapstructure:"includes"`
	Excludes []string `yaml:"excludes" mapstructure:"excludes"`
}

// Default returns a configuration with the conventional Maven-style layout.
func Default() *Config {
	return &Config{
		Sources:           []string{"src/main/java", "src/main/resources"},
		TestSources:       []string{"src/test/java", "src/test/resources"},
		OutputDir:         "src/generated/java",
		OutputResourceDir: "src/generated/resources",
		ResourceDir:       "src/main/resources",
		IncludeJava:       true,
		IncludeXML:        true,
		IncludeTests:      false,
	}
}
