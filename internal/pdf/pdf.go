// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf wraps the pdfcpu library behind the small codec surface the
// merge pipeline needs: open a scan set, pull its pages out as opaque
// single-page documents, rotate a page, and serialize a page sequence.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Document is one opened scan set: an ordered sequence of pages read from a
// single input file. Documents are read-only; rotation and merging work on
// extracted Pages, never on the source file.
type Document struct {
	// Path is the file the document was read from.
	Path string

	// PageCount is the number of pages in the document.
	PageCount int

	ctx *model.Context
}

// Page is an opaque unit of content: one complete single-page PDF extracted
// from a source document. The pipeline never looks inside a Page; it only
// orders, rotates, and concatenates them.
type Page struct {
	data []byte
}

// NewPage wraps already-serialized single-page PDF bytes as a Page.
func NewPage(data []byte) Page { return Page{data: data} }

// Reader returns the page bytes as a fresh reader.
func (p Page) Reader() *bytes.Reader { return bytes.NewReader(p.data) }

// Len returns the size of the page in bytes.
func (p Page) Len() int { return len(p.data) }

// Dim is a page size in PDF points.
type Dim struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Codec is the pdfcpu-backed implementation of the PDF operations used by
// the merge pipeline.
type Codec struct {
	conf *model.Configuration
}

// NewCodec returns a Codec with relaxed validation. Scanner firmware
// produces slightly malformed PDFs; strict mode rejects files every viewer
// opens fine. The pdfcpu config dir is disabled so runs touch nothing
// outside the working directory.
func NewCodec() *Codec {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Codec{conf: conf}
}

// Open reads the whole file into memory, then parses, validates, and counts
// its pages.
func (c *Codec) Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), c.conf)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return &Document{Path: path, PageCount: ctx.PageCount, ctx: ctx}, nil
}

// Pages extracts the document's pages in order, each as an opaque
// single-page PDF.
func (c *Codec) Pages(doc *Document) ([]Page, error) {
	pages := make([]Page, 0, doc.PageCount)
	for n := 1; n <= doc.PageCount; n++ {
		r, err := api.ExtractPage(doc.ctx, n)
		if err != nil {
			return nil, fmt.Errorf("extracting page %d of %s: %w", n, doc.Path, err)
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("extracting page %d of %s: %w", n, doc.Path, err)
		}
		pages = append(pages, Page{data: data})
	}
	return pages, nil
}

// Rotate returns a copy of the page rotated clockwise by angle degrees.
// The angle must be a multiple of 90; angle 0 returns the page unchanged.
// The source page is not modified.
func (c *Codec) Rotate(p Page, angle int) (Page, error) {
	if angle == 0 {
		return p, nil
	}
	var buf bytes.Buffer
	if err := api.Rotate(p.Reader(), &buf, angle, nil, c.conf); err != nil {
		return Page{}, fmt.Errorf("rotating page by %d degrees: %w", angle, err)
	}
	return Page{data: buf.Bytes()}, nil
}

// Write serializes the page sequence to w as one PDF document, preserving
// the given order.
func (c *Codec) Write(pages []Page, w io.Writer) error {
	rs := make([]io.ReadSeeker, len(pages))
	for i, p := range pages {
		rs[i] = p.Reader()
	}
	if err := api.MergeRaw(rs, w, false, c.conf); err != nil {
		return fmt.Errorf("serializing %d page(s): %w", len(pages), err)
	}
	return nil
}

// Dims returns the size in points of every page in the file, in page order.
func (c *Codec) Dims(path string) ([]Dim, error) {
	dims, err := api.PageDimsFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading page dimensions of %s: %w", path, err)
	}
	out := make([]Dim, len(dims))
	for i, d := range dims {
		out[i] = Dim{Width: d.Width, Height: d.Height}
	}
	return out, nil
}
