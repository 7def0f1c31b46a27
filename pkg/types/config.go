package types

import (
	"errors"
	"fmt"
	"time"
)

// Default filenames for a scan run. The office scanner drops the front and
// back passes under fixed names in the working directory.
const (
	DefaultFrontPath  = "PRT_FRONT_000975.pdf"
	DefaultBackPath   = "PRT_BACK_000995.pdf"
	DefaultArchiveDir = "archive"
)

// StampLayout formats the run timestamp embedded in the default output name
// and in archived input names. Seconds precision keeps archive names unique
// across runs on the same day.
const StampLayout = "20060102_150405"

// RotateTarget selects which scan set gets rotated before merging.
type RotateTarget string

const (
	RotateNone  RotateTarget = "none"
	RotateFront RotateTarget = "front"
	RotateBack  RotateTarget = "back"
)

// Sentinel errors for configuration validation.
var (
	// ErrInvalidRotation is returned when the rotation angle is not one of
	// 0, 90, 180, or 270.
	ErrInvalidRotation = errors.New("invalid rotation angle")

	// ErrInvalidTarget is returned when the rotation target is not none,
	// front, or back.
	ErrInvalidTarget = errors.New("invalid rotation target")
)

// MergeConfig holds the settings for one duplex merge run.
type MergeConfig struct {
	// FrontPath is the PDF holding the front-side scans (default PRT_FRONT_000975.pdf).
	FrontPath string `json:"front_path" yaml:"front_path"`

	// BackPath is the PDF holding the back-side scans (default PRT_BACK_000995.pdf).
	BackPath string `json:"back_path" yaml:"back_path"`

	// OutputPath is where the merged document is written. Empty selects
	// merged_<stamp>.pdf in the working directory.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// RotateTarget selects which input is rotated before merging (default none).
	RotateTarget RotateTarget `json:"rotate_target" yaml:"rotate_target"`

	// RotateAngle is the rotation in degrees: 0, 90, 180, or 270 (default 0).
	RotateAngle int `json:"rotate_angle" yaml:"rotate_angle"`

	// ArchiveDir is where processed inputs are moved after a successful
	// merge (default archive).
	ArchiveDir string `json:"archive_dir,omitempty" yaml:"archive_dir,omitempty"`

	// Timestamp is the run time embedded in the output and archive names.
	// It is set once per run and threaded through every operation rather
	// than read from the clock inside the pipeline.
	Timestamp time.Time `json:"-" yaml:"-"`

	// DryRun stops the pipeline after validation and prints the interleave
	// plan instead of writing anything. Never persisted.
	DryRun bool `json:"-" yaml:"-"`
}

// Validate checks the rotation settings. Path fields have no invalid values;
// empty paths fall back to the defaults at run time.
func (c MergeConfig) Validate() error {
	switch c.RotateTarget {
	case "", RotateNone, RotateFront, RotateBack:
	default:
		return fmt.Errorf("%w: %q (use none, front, or back)", ErrInvalidTarget, c.RotateTarget)
	}
	switch c.RotateAngle {
	case 0, 90, 180, 270:
	default:
		return fmt.Errorf("%w: %d (use 0, 90, 180, or 270)", ErrInvalidRotation, c.RotateAngle)
	}
	return nil
}

// Stamp renders the run timestamp in the filename layout.
func (c MergeConfig) Stamp() string {
	return c.Timestamp.Format(StampLayout)
}

// ResolvedFront returns FrontPath, or the default scanner name when unset.
func (c MergeConfig) ResolvedFront() string {
	if c.FrontPath != "" {
		return c.FrontPath
	}
	return DefaultFrontPath
}

// ResolvedBack returns BackPath, or the default scanner name when unset.
func (c MergeConfig) ResolvedBack() string {
	if c.BackPath != "" {
		return c.BackPath
	}
	return DefaultBackPath
}

// ResolvedOutput returns OutputPath, or the default stamped name when unset.
func (c MergeConfig) ResolvedOutput() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	return fmt.Sprintf("merged_%s.pdf", c.Stamp())
}

// ResolvedArchiveDir returns ArchiveDir, or the default when unset.
func (c MergeConfig) ResolvedArchiveDir() string {
	if c.ArchiveDir != "" {
		return c.ArchiveDir
	}
	return DefaultArchiveDir
}

// Rotates reports whether this run rotates anything: a concrete target
// combined with a non-zero angle. Angle 0 is always a no-op.
func (c MergeConfig) Rotates() bool {
	return c.RotateTarget != "" && c.RotateTarget != RotateNone && c.RotateAngle != 0
}
