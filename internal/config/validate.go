package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyOutputDir indicates a missing generated-source directory.
	ErrEmptyOutputDir = errors.New("empty output directory")

	// ErrEmptyOutputResourceDir indicates a missing generated-resource directory.
	ErrEmptyOutputResourceDir = errors.New("empty output resource directory")

	// ErrEmptyResourceDir indicates a missing resource directory.
	ErrEmptyResourceDir = errors.New("empty resource directory")

	// ErrNoSources indicates that no source roots are configured.
	ErrNoSources = errors.New("no source roots")

	// ErrNoDialects indicates that both source dialects are disabled.
	ErrNoDialects = errors.New("no dialects enabled")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.OutputDir) == "" {
		errs = append(errs, fmt.Errorf("%w: output_dir is required", ErrEmptyOutputDir))
	}
	if strings.TrimSpace(cfg.OutputResourceDir) == "" {
		errs = append(errs, fmt.Errorf("%w: output_resource_dir is required", ErrEmptyOutputResourceDir))
	}
	if strings.TrimSpace(cfg.ResourceDir) == "" {
		errs = append(errs, fmt.Errorf("%w: resource_dir is required", ErrEmptyResourceDir))
	}
	if len(cfg.Sources) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one source root is required", ErrNoSources))
	}
	if !cfg.IncludeJava && !cfg.IncludeXML {
		errs = append(errs, fmt.Errorf("%w: enable include_java or include_xml", ErrNoDialects))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
