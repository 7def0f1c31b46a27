// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package interleave merges two single-sided scan sets into one double-sided
// document. The front set supplies even output positions, the back set odd
// ones; the order is fixed and there is no configuration to change it.
package interleave

import (
	"errors"
	"fmt"

	"github.com/aschiffer/duplex/internal/pdf"
)

// Sentinel errors for scan-set validation.
var (
	// ErrPageCountMismatch is returned when the front and back sets have
	// different page counts. No partial merge is attempted.
	ErrPageCountMismatch = errors.New("page count mismatch")

	// ErrEmptyDocument is returned when an input has no pages at all.
	ErrEmptyDocument = errors.New("empty document")
)

// Validate checks that the two scan sets can interleave: both non-empty and
// equal in length. It returns the common page count.
func Validate(front, back *pdf.Document) (int, error) {
	switch {
	case front.PageCount == 0 && back.PageCount == 0:
		return 0, fmt.Errorf("%w: %s and %s both have no pages", ErrEmptyDocument, front.Path, back.Path)
	case front.PageCount == 0:
		return 0, fmt.Errorf("%w: %s has no pages", ErrEmptyDocument, front.Path)
	case back.PageCount == 0:
		return 0, fmt.Errorf("%w: %s has no pages", ErrEmptyDocument, back.Path)
	}
	if front.PageCount != back.PageCount {
		return 0, fmt.Errorf("%w: %s has %d page(s), %s has %d",
			ErrPageCountMismatch, front.Path, front.PageCount, back.Path, back.PageCount)
	}
	return front.PageCount, nil
}

// Interleave merges two equal-length page sequences in fixed alternating
// order: position 2i is front[i], position 2i+1 is back[i]. Callers must
// have validated the lengths with Validate.
func Interleave(front, back []pdf.Page) []pdf.Page {
	merged := make([]pdf.Page, 0, len(front)+len(back))
	for i := range front {
		merged = append(merged, front[i], back[i])
	}
	return merged
}

// Rotator is the part of Codec that RotatePages uses.
type Rotator interface {
	Rotate(p pdf.Page, angle int) (pdf.Page, error)
}

// RotatePages applies the rotation to every page of one scan set, preserving
// count and order. The input slice is never modified; angle 0 returns it
// unchanged.
func RotatePages(c Rotator, pages []pdf.Page, angle int) ([]pdf.Page, error) {
	if angle == 0 {
		return pages, nil
	}
	rotated := make([]pdf.Page, len(pages))
	for i, p := range pages {
		rp, err := c.Rotate(p, angle)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		rotated[i] = rp
	}
	return rotated, nil
}
