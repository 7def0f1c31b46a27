// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aschiffer/duplex/internal/pdftest"
)

func writeDoc(t *testing.T, name string, n, base int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	pdftest.WriteFile(t, path, n, base)
	return path
}

func readAll(t *testing.T, p Page) []byte {
	t.Helper()
	data, err := io.ReadAll(p.Reader())
	if err != nil {
		t.Fatalf("reading page: %v", err)
	}
	return data
}

func TestOpenCountsPages(t *testing.T) {
	c := NewCodec()
	path := writeDoc(t, "front.pdf", 3, 700)

	doc, err := c.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc.PageCount != 3 {
		t.Errorf("PageCount = %d, want 3", doc.PageCount)
	}
	if doc.Path != path {
		t.Errorf("Path = %q, want %q", doc.Path, path)
	}
}

func TestOpenMissingFile(t *testing.T) {
	c := NewCodec()

	_, err := c.Open(filepath.Join(t.TempDir(), "absent.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist in chain", err)
	}
}

func TestOpenRejectsNonPDF(t *testing.T) {
	c := NewCodec()
	path := filepath.Join(t.TempDir(), "scan.pdf")
	if err := os.WriteFile(path, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := c.Open(path); err == nil {
		t.Fatal("expected error for non-PDF content")
	}
}

func TestPagesExtractsInOrder(t *testing.T) {
	c := NewCodec()
	path := writeDoc(t, "front.pdf", 3, 700)

	doc, err := c.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	pages, err := c.Pages(doc)
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("len(pages) = %d, want 3", len(pages))
	}

	// Each extracted page is a complete one-page PDF carrying its source size.
	for i, p := range pages {
		if p.Len() == 0 {
			t.Fatalf("page %d is empty", i+1)
		}
		single := filepath.Join(t.TempDir(), "single.pdf")
		if err := os.WriteFile(single, readAll(t, p), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := c.Open(single)
		if err != nil {
			t.Fatalf("reopening extracted page %d: %v", i+1, err)
		}
		if got.PageCount != 1 {
			t.Errorf("extracted page %d has %d pages, want 1", i+1, got.PageCount)
		}
		dims, err := c.Dims(single)
		if err != nil {
			t.Fatalf("Dims of extracted page %d: %v", i+1, err)
		}
		if want := pdftest.Height(700, i+1); dims[0].Height != want {
			t.Errorf("extracted page %d height = %v, want %v", i+1, dims[0].Height, want)
		}
	}
}

func TestRotateZeroIsNoop(t *testing.T) {
	c := NewCodec()
	path := writeDoc(t, "back.pdf", 1, 800)

	doc, err := c.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	pages, err := c.Pages(doc)
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}

	rotated, err := c.Rotate(pages[0], 0)
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if !bytes.Equal(readAll(t, rotated), readAll(t, pages[0])) {
		t.Error("rotate by 0 changed the page content")
	}
}

func TestRotateRoundTrips(t *testing.T) {
	c := NewCodec()
	path := writeDoc(t, "back.pdf", 2, 800)

	doc, err := c.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	pages, err := c.Pages(doc)
	if err != nil {
		t.Fatalf("Pages: %v", err)
	}

	for _, angle := range []int{90, 180, 270} {
		rotated, err := c.Rotate(pages[0], angle)
		if err != nil {
			t.Fatalf("Rotate(%d): %v", angle, err)
		}
		if rotated.Len() == 0 {
			t.Fatalf("Rotate(%d) produced an empty page", angle)
		}

		// The rotated page must still be a readable one-page document.
		single := filepath.Join(t.TempDir(), "rotated.pdf")
		if err := os.WriteFile(single, readAll(t, rotated), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := c.Open(single)
		if err != nil {
			t.Fatalf("reopening page rotated by %d: %v", angle, err)
		}
		if got.PageCount != 1 {
			t.Errorf("rotated page has %d pages, want 1", got.PageCount)
		}
	}
}

func TestWritePreservesSequenceOrder(t *testing.T) {
	c := NewCodec()
	frontPath := writeDoc(t, "front.pdf", 3, 700)
	backPath := writeDoc(t, "back.pdf", 3, 800)

	front, err := c.Open(frontPath)
	if err != nil {
		t.Fatalf("Open front: %v", err)
	}
	back, err := c.Open(backPath)
	if err != nil {
		t.Fatalf("Open back: %v", err)
	}
	frontPages, err := c.Pages(front)
	if err != nil {
		t.Fatalf("Pages front: %v", err)
	}
	backPages, err := c.Pages(back)
	if err != nil {
		t.Fatalf("Pages back: %v", err)
	}

	seq := []Page{
		frontPages[0], backPages[0],
		frontPages[1], backPages[1],
		frontPages[2], backPages[2],
	}

	var buf bytes.Buffer
	if err := c.Write(seq, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := filepath.Join(t.TempDir(), "merged.pdf")
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	merged, err := c.Open(out)
	if err != nil {
		t.Fatalf("reopening merged output: %v", err)
	}
	if merged.PageCount != 6 {
		t.Fatalf("merged PageCount = %d, want 6", merged.PageCount)
	}

	// Page heights encode the source: fronts at 70x, backs at 80x.
	dims, err := c.Dims(out)
	if err != nil {
		t.Fatalf("Dims: %v", err)
	}
	want := []float64{
		pdftest.Height(700, 1), pdftest.Height(800, 1),
		pdftest.Height(700, 2), pdftest.Height(800, 2),
		pdftest.Height(700, 3), pdftest.Height(800, 3),
	}
	if len(dims) != len(want) {
		t.Fatalf("len(dims) = %d, want %d", len(dims), len(want))
	}
	for i, w := range want {
		if dims[i].Height != w {
			t.Errorf("page %d height = %v, want %v", i+1, dims[i].Height, w)
		}
	}
}

func TestDims(t *testing.T) {
	c := NewCodec()
	path := writeDoc(t, "doc.pdf", 2, 500)

	dims, err := c.Dims(path)
	if err != nil {
		t.Fatalf("Dims: %v", err)
	}
	if len(dims) != 2 {
		t.Fatalf("len(dims) = %d, want 2", len(dims))
	}
	for i, d := range dims {
		if d.Width != 612 {
			t.Errorf("page %d width = %v, want 612", i+1, d.Width)
		}
		if want := pdftest.Height(500, i+1); d.Height != want {
			t.Errorf("page %d height = %v, want %v", i+1, d.Height, want)
		}
	}
}
