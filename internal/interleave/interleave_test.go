// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package interleave

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aschiffer/duplex/internal/pdf"
)

func doc(path string, pages int) *pdf.Document {
	return &pdf.Document{Path: path, PageCount: pages}
}

func page(text string) pdf.Page {
	return pdf.NewPage([]byte(text))
}

func pageText(t *testing.T, p pdf.Page) string {
	t.Helper()
	data, err := io.ReadAll(p.Reader())
	if err != nil {
		t.Fatalf("reading page: %v", err)
	}
	return string(data)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		front   int
		back    int
		want    int
		wantErr error
	}{
		{name: "equal", front: 3, back: 3, want: 3},
		{name: "single page each", front: 1, back: 1, want: 1},
		{name: "front short", front: 2, back: 3, wantErr: ErrPageCountMismatch},
		{name: "back short", front: 5, back: 4, wantErr: ErrPageCountMismatch},
		{name: "front empty", front: 0, back: 3, wantErr: ErrEmptyDocument},
		{name: "back empty", front: 3, back: 0, wantErr: ErrEmptyDocument},
		{name: "both empty", front: 0, back: 0, wantErr: ErrEmptyDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Validate(doc("front.pdf", tt.front), doc("back.pdf", tt.back))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if n != tt.want {
				t.Errorf("Validate() = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestValidateMismatchNamesBothCounts(t *testing.T) {
	_, err := Validate(doc("front.pdf", 2), doc("back.pdf", 3))
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	msg := err.Error()
	for _, want := range []string{"front.pdf", "back.pdf", "2", "3"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestInterleaveOrder(t *testing.T) {
	front := []pdf.Page{page("f1"), page("f2"), page("f3")}
	back := []pdf.Page{page("b1"), page("b2"), page("b3")}

	merged := Interleave(front, back)

	want := []string{"f1", "b1", "f2", "b2", "f3", "b3"}
	if len(merged) != len(want) {
		t.Fatalf("Interleave() returned %d pages, want %d", len(merged), len(want))
	}
	for i, w := range want {
		if got := pageText(t, merged[i]); got != w {
			t.Errorf("merged[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestInterleaveSinglePair(t *testing.T) {
	merged := Interleave([]pdf.Page{page("f1")}, []pdf.Page{page("b1")})
	if len(merged) != 2 {
		t.Fatalf("Interleave() returned %d pages, want 2", len(merged))
	}
	if got := pageText(t, merged[0]); got != "f1" {
		t.Errorf("merged[0] = %q, want f1", got)
	}
	if got := pageText(t, merged[1]); got != "b1" {
		t.Errorf("merged[1] = %q, want b1", got)
	}
}

func TestInterleaveEmpty(t *testing.T) {
	if merged := Interleave(nil, nil); len(merged) != 0 {
		t.Errorf("Interleave(nil, nil) returned %d pages, want 0", len(merged))
	}
}

// fakeRotator marks each page it sees so tests can tell rotated pages from
// untouched ones.
type fakeRotator struct {
	err    error
	angles []int
}

func (f *fakeRotator) Rotate(p pdf.Page, angle int) (pdf.Page, error) {
	if f.err != nil {
		return pdf.Page{}, f.err
	}
	f.angles = append(f.angles, angle)
	data, err := io.ReadAll(p.Reader())
	if err != nil {
		return pdf.Page{}, err
	}
	return pdf.NewPage([]byte(fmt.Sprintf("R%d:%s", angle, data))), nil
}

func TestRotatePagesZeroIsNoop(t *testing.T) {
	pages := []pdf.Page{page("f1"), page("f2")}

	// Angle 0 must not touch the codec at all.
	got, err := RotatePages(nil, pages, 0)
	if err != nil {
		t.Fatalf("RotatePages() error = %v", err)
	}
	if len(got) != 2 || pageText(t, got[0]) != "f1" || pageText(t, got[1]) != "f2" {
		t.Errorf("RotatePages() changed pages on angle 0")
	}
}

func TestRotatePagesAppliesToAll(t *testing.T) {
	rot := &fakeRotator{}
	pages := []pdf.Page{page("f1"), page("f2"), page("f3")}

	got, err := RotatePages(rot, pages, 90)
	if err != nil {
		t.Fatalf("RotatePages() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("RotatePages() returned %d pages, want 3", len(got))
	}
	for i, want := range []string{"R90:f1", "R90:f2", "R90:f3"} {
		if text := pageText(t, got[i]); text != want {
			t.Errorf("rotated[%d] = %q, want %q", i, text, want)
		}
	}
	if len(rot.angles) != 3 {
		t.Errorf("codec saw %d rotations, want 3", len(rot.angles))
	}

	// The source slice stays untouched.
	if text := pageText(t, pages[0]); text != "f1" {
		t.Errorf("source page changed to %q", text)
	}
}

func TestRotatePagesError(t *testing.T) {
	boom := errors.New("boom")
	rot := &fakeRotator{err: boom}

	_, err := RotatePages(rot, []pdf.Page{page("f1")}, 180)
	if !errors.Is(err, boom) {
		t.Fatalf("RotatePages() error = %v, want wrapped boom", err)
	}
	if !strings.Contains(err.Error(), "page 1") {
		t.Errorf("error %q should name the failing page", err)
	}
}
