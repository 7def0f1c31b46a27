// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds tiny valid PDF files for tests, with no fixtures
// checked in. Pages are blank but carry distinct sizes, so a test can tell
// which source page landed where after a merge.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"testing"
)

// Letter width in points; heights encode the page index.
const width = 612

// Doc returns an n-page PDF. Page i (1-based) gets a MediaBox of
// 612 x (base+i) points. The xref offsets are computed while writing, so
// the result is valid for any n >= 1.
func Doc(n, base int) []byte {
	var buf bytes.Buffer
	offsets := make([]int, 0, n+2)

	buf.WriteString("%PDF-1.4\n")

	// Object 1: catalog.
	offsets = append(offsets, buf.Len())
	buf.WriteString("1 0 obj\n<</Type/Catalog/Pages 2 0 R>>\nendobj\n")

	// Object 2: page tree.
	offsets = append(offsets, buf.Len())
	buf.WriteString("2 0 obj\n<</Type/Pages/Kids[")
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteString(" ")
		}
		fmt.Fprintf(&buf, "%d 0 R", 3+i)
	}
	fmt.Fprintf(&buf, "]/Count %d>>\nendobj\n", n)

	// Objects 3..n+2: one page per object.
	for i := 0; i < n; i++ {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n<</Type/Page/Parent 2 0 R/MediaBox[0 0 %d %d]/Resources<<>>>>\nendobj\n",
			3+i, width, base+i+1)
	}

	// Xref: 20-byte entries, object 0 is the free-list head.
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", n+3)
	fmt.Fprintf(&buf, "%010d %05d f \r\n", 0, 65535)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d %05d n \r\n", off, 0)
	}

	fmt.Fprintf(&buf, "trailer\n<</Size %d/Root 1 0 R>>\nstartxref\n%d\n%%%%EOF\n", n+3, xref)
	return buf.Bytes()
}

// WriteFile writes an n-page PDF to path.
func WriteFile(t testing.TB, path string, n, base int) {
	t.Helper()
	if err := os.WriteFile(path, Doc(n, base), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// Height returns the page height WriteFile gave page i (1-based) of a
// document built with the given base.
func Height(base, i int) float64 {
	return float64(base + i)
}
