// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package interleave

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aschiffer/duplex/internal/pdf"
	"github.com/aschiffer/duplex/pkg/types"
)

// Codec is the PDF surface the pipeline consumes. *pdf.Codec satisfies it;
// tests substitute fakes to inject failures.
type Codec interface {
	Rotator
	Open(path string) (*pdf.Document, error)
	Pages(doc *pdf.Document) ([]pdf.Page, error)
	Write(pages []pdf.Page, w io.Writer) error
}

// Archiver moves a consumed input file out of the working directory under a
// stamped name and reports where it landed.
type Archiver interface {
	Store(path, stamp string) (string, error)
}

// Stage names a step of the merge pipeline. A failed run reports the stage
// it halted at.
type Stage string

const (
	StageOpen     Stage = "open"
	StageValidate Stage = "validate"
	StageRotate   Stage = "rotate"
	StageMerge    Stage = "merge"
	StageWrite    Stage = "write"
	StageArchive  Stage = "archive"
)

// StageError tags a pipeline failure with the stage that raised it. The
// wrapped cause stays reachable through errors.Is and errors.As.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func failAt(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// Result summarizes one run of the pipeline.
type Result struct {
	FrontPages    int    `json:"frontPages"`
	BackPages     int    `json:"backPages"`
	MergedPages   int    `json:"mergedPages"`
	OutputPath    string `json:"outputPath"`
	ArchivedFront string `json:"archivedFront,omitempty"`
	ArchivedBack  string `json:"archivedBack,omitempty"`
	DryRun        bool   `json:"dryRun,omitempty"`
}

// Run executes the whole pipeline for one scan pair: open both inputs,
// validate the page counts, optionally rotate one side, interleave, write
// the merged document, and archive the inputs. Progress lines go to w.
//
// The first failure halts the run. Only the archive stage can fail after
// the merged output exists; in that case Run returns the error together
// with a non-nil Result describing what was written, so callers can report
// the failure as a warning rather than discard the output.
//
// Run assumes cfg has already passed Validate.
func Run(cfg types.MergeConfig, codec Codec, arc Archiver, w io.Writer) (*Result, error) {
	frontPath := cfg.ResolvedFront()
	backPath := cfg.ResolvedBack()

	front, err := codec.Open(frontPath)
	if err != nil {
		return nil, failAt(StageOpen, err)
	}
	back, err := codec.Open(backPath)
	if err != nil {
		return nil, failAt(StageOpen, err)
	}
	fmt.Fprintf(w, "front:  %s (%d pages)\n", front.Path, front.PageCount)
	fmt.Fprintf(w, "back:   %s (%d pages)\n", back.Path, back.PageCount)

	n, err := Validate(front, back)
	if err != nil {
		return nil, failAt(StageValidate, err)
	}

	res := &Result{
		FrontPages:  n,
		BackPages:   n,
		MergedPages: 2 * n,
		OutputPath:  cfg.ResolvedOutput(),
		DryRun:      cfg.DryRun,
	}

	if cfg.DryRun {
		printPlan(w, n, frontPath, backPath)
		fmt.Fprintf(w, "dry run: %s not written, inputs left in place\n", res.OutputPath)
		return res, nil
	}

	frontPages, err := codec.Pages(front)
	if err != nil {
		return nil, failAt(StageMerge, fmt.Errorf("extracting %s: %w", frontPath, err))
	}
	backPages, err := codec.Pages(back)
	if err != nil {
		return nil, failAt(StageMerge, fmt.Errorf("extracting %s: %w", backPath, err))
	}

	if cfg.Rotates() {
		switch cfg.RotateTarget {
		case types.RotateFront:
			frontPages, err = RotatePages(codec, frontPages, cfg.RotateAngle)
		case types.RotateBack:
			backPages, err = RotatePages(codec, backPages, cfg.RotateAngle)
		}
		if err != nil {
			return nil, failAt(StageRotate, err)
		}
		fmt.Fprintf(w, "rotate: %s pages by %d degrees\n", cfg.RotateTarget, cfg.RotateAngle)
	}

	merged := Interleave(frontPages, backPages)

	if err := writeOutput(codec, merged, res.OutputPath); err != nil {
		return nil, failAt(StageWrite, err)
	}
	fmt.Fprintf(w, "merged: %s (%d pages)\n", res.OutputPath, len(merged))

	stamp := cfg.Stamp()
	movedFront, err := arc.Store(frontPath, stamp)
	if err != nil {
		return res, failAt(StageArchive, err)
	}
	res.ArchivedFront = movedFront
	fmt.Fprintf(w, "archived: %s -> %s\n", frontPath, movedFront)

	movedBack, err := arc.Store(backPath, stamp)
	if err != nil {
		return res, failAt(StageArchive, err)
	}
	res.ArchivedBack = movedBack
	fmt.Fprintf(w, "archived: %s -> %s\n", backPath, movedBack)

	return res, nil
}

// printPlan writes the interleave plan one merged page per line, so a dry
// run shows exactly which input page lands at which output position.
func printPlan(w io.Writer, n int, frontPath, backPath string) {
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "plan:   page %d <- %s page %d\n", 2*i+1, frontPath, i+1)
		fmt.Fprintf(w, "plan:   page %d <- %s page %d\n", 2*i+2, backPath, i+1)
	}
}

// writeOutput serializes the merged sequence through a temp file in the
// destination directory and renames it into place only once the write has
// succeeded, so a failed run never leaves a partial output behind.
func writeOutput(codec Codec, pages []pdf.Page, destPath string) error {
	dir := filepath.Dir(destPath)
	tmp, err := os.CreateTemp(dir, ".duplex-*.pdf")
	if err != nil {
		return fmt.Errorf("creating temp output: %w", err)
	}
	tmpPath := tmp.Name()

	writeErr := codec.Write(pages, tmp)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp output: %w", closeErr)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp output: %w", err)
	}
	return nil
}
