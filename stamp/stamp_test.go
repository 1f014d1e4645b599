package stamp_test

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/orsabag2/rent/layout"
	"github.com/orsabag2/rent/stamp"
)

// createTestPDF writes a simple PDF with the given number of pages.
func createTestPDF(t *testing.T, filename string, numPages int) {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 14)
	for i := 1; i <= numPages; i++ {
		pdf.AddPage()
		pdf.Text(60, 80, fmt.Sprintf("Page %d of %d", i, numPages))
	}
	if err := pdf.OutputFileAndClose(filename); err != nil {
		t.Fatalf("creating test PDF: %v", err)
	}
}

func signaturePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 60, 20))
	for x := 0; x < 60; x++ {
		img.Set(x, 10, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPageCount(t *testing.T) {
	for _, pages := range []int{1, 2, 3} {
		path := filepath.Join(t.TempDir(), "doc.pdf")
		createTestPDF(t, path, pages)

		n, err := stamp.PageCount(path)
		if err != nil {
			t.Fatalf("PageCount(%d pages): %v", pages, err)
		}
		if n != pages {
			t.Errorf("PageCount = %d, want %d", n, pages)
		}
	}
}

func TestApplyFileKeepsPages(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "doc.pdf")
	out := filepath.Join(dir, "doc-signed.pdf")
	createTestPDF(t, in, 2)

	ov := stamp.Overlay{
		Signature: signaturePNG(t),
		Role:      stamp.RoleTenant,
		Landmarks: layout.Landmarks{Tenant: &layout.Landmark{Page: 1, Y: 400}},
		ShareURL:  "https://example.com/contracts/abc.pdf",
		Reference: "abc",
	}
	if err := stamp.ApplyFile(in, out, ov); err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}
	n, err := stamp.PageCount(out)
	if err != nil {
		t.Fatalf("reading stamped PDF: %v", err)
	}
	if n != 2 {
		t.Errorf("stamped PDF has %d pages, want 2", n)
	}
}

func TestApplyToWriter(t *testing.T) {
	in := filepath.Join(t.TempDir(), "doc.pdf")
	createTestPDF(t, in, 1)

	var buf bytes.Buffer
	if err := stamp.Apply(&buf, in, stamp.Overlay{ShareURL: "https://example.com/x.pdf"}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output does not start with %PDF header")
	}
}

func TestApplyUnreadable(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "junk.pdf")
	if err := os.WriteFile(in, []byte("not a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.pdf")
	err := stamp.ApplyFile(in, out, stamp.Overlay{Reference: "x"})
	if !errors.Is(err, stamp.ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output file created for unreadable input")
	}
}

func TestApplyMissingFile(t *testing.T) {
	var buf bytes.Buffer
	if err := stamp.Apply(&buf, filepath.Join(t.TempDir(), "none.pdf"), stamp.Overlay{Reference: "x"}); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestApplyBadSignature(t *testing.T) {
	in := filepath.Join(t.TempDir(), "doc.pdf")
	createTestPDF(t, in, 1)

	var buf bytes.Buffer
	if err := stamp.Apply(&buf, in, stamp.Overlay{Signature: []byte("nope")}); err == nil {
		t.Fatal("expected error for invalid signature image")
	}
}

func TestSignaturePosition(t *testing.T) {
	lms := layout.Landmarks{
		Landlord: &layout.Landmark{Page: 2, Y: 300},
		Tenant:   &layout.Landmark{Page: 3, Y: 500},
	}
	tests := []struct {
		name     string
		lms      layout.Landmarks
		role     stamp.Role
		pages    int
		wantPage int
		wantY    float64
	}{
		{"tenant landmark", lms, stamp.RoleTenant, 3, 3, 500 + layout.SignatureOffset},
		{"landlord landmark", lms, stamp.RoleLandlord, 3, 2, 300 + layout.SignatureOffset},
		{"no landmarks", layout.Landmarks{}, stamp.RoleTenant, 4, 4, stamp.DefaultY},
		{"landmark beyond document", lms, stamp.RoleTenant, 2, 2, stamp.DefaultY},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, y := stamp.SignaturePosition(tt.lms, tt.role, tt.pages, stamp.DefaultY)
			if page != tt.wantPage || y != tt.wantY {
				t.Errorf("got page %d y %.1f, want page %d y %.1f", page, y, tt.wantPage, tt.wantY)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	for in, want := range map[string]stamp.Role{"": stamp.RoleTenant, "tenant": stamp.RoleTenant, "landlord": stamp.RoleLandlord} {
		got, err := stamp.ParseRole(in)
		if err != nil || got != want {
			t.Errorf("ParseRole(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := stamp.ParseRole("agent"); !errors.Is(err, stamp.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}
