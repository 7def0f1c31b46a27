// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ticket reads and writes merge tickets: small YAML files that
// describe one duplex merge job. The operator can prepare a ticket next to
// the scans and rerun the same job later without retyping flags.
package ticket

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/aschiffer/duplex/pkg/types"
)

// ErrInvalid marks a ticket that could not be read or parsed. The CLI
// treats it as a configuration problem, not a merge failure.
var ErrInvalid = errors.New("invalid ticket")

// Ticket is the on-disk representation of one merge job. Empty fields fall
// back to flags, the config file, and finally the scanner defaults.
type Ticket struct {
	Front        string             `yaml:"front"`
	Back         string             `yaml:"back"`
	Output       string             `yaml:"output,omitempty"`
	RotateTarget types.RotateTarget `yaml:"rotate_target"`
	RotateAngle  int                `yaml:"rotate_angle"`
	ArchiveDir   string             `yaml:"archive_dir,omitempty"`
}

// Read loads a ticket from path.
func Read(path string) (*Ticket, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalid, path, err)
	}
	var tk Ticket
	if err := yaml.Unmarshal(data, &tk); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalid, path, err)
	}
	return &tk, nil
}

// Write saves the ticket to path as YAML.
func (t *Ticket) Write(path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshaling ticket: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Apply copies the ticket's set fields onto cfg. Empty fields leave cfg
// alone, so config-file values survive unless the ticket overrides them.
// The combined result still goes through cfg.Validate afterwards.
func (t *Ticket) Apply(cfg *types.MergeConfig) {
	if t.Front != "" {
		cfg.FrontPath = t.Front
	}
	if t.Back != "" {
		cfg.BackPath = t.Back
	}
	if t.Output != "" {
		cfg.OutputPath = t.Output
	}
	if t.RotateTarget != "" {
		cfg.RotateTarget = t.RotateTarget
	}
	if t.RotateAngle != 0 {
		cfg.RotateAngle = t.RotateAngle
	}
	if t.ArchiveDir != "" {
		cfg.ArchiveDir = t.ArchiveDir
	}
}

// Starter returns a ticket prefilled with the scanner defaults, for the
// ticket init command to write out as an editable template.
func Starter() *Ticket {
	return &Ticket{
		Front:        types.DefaultFrontPath,
		Back:         types.DefaultBackPath,
		RotateTarget: types.RotateNone,
		ArchiveDir:   types.DefaultArchiveDir,
	}
}
