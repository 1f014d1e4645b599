// Package stamp overlays a drawn signature, a share QR code and a PDF417
// reference code on stored contract PDFs.
//
// Every page of the source document is imported as a template into a new
// document and the overlays are drawn on top, so the original content is
// never re-rendered.
package stamp

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/boombuler/barcode/qr"
	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/barcode"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
	realgofpdi "github.com/phpdave11/gofpdi"

	"github.com/orsabag2/rent/layout"
)

// DefaultY is the signature position from the top of the last page when
// the document has no landmark for the signing role.
const DefaultY = 120

const (
	signatureImage = "stamp-signature"

	codeInset    = 10
	qrSize       = 40
	pdf417Width  = 120
	pdf417Height = 30
)

// Role names the party whose signature is stamped.
type Role string

const (
	RoleTenant   Role = "tenant"
	RoleLandlord Role = "landlord"
)

var (
	// ErrUnreadable is returned when the source PDF cannot be parsed.
	ErrUnreadable = errors.New("stamp: unreadable pdf")
	// ErrInvalidRole is returned by ParseRole for unknown roles.
	ErrInvalidRole = errors.New("stamp: invalid role")
)

// ParseRole maps a request value to a Role. The empty string is the tenant.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "", RoleTenant:
		return RoleTenant, nil
	case RoleLandlord:
		return RoleLandlord, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

// Overlay describes what to draw over a document. Zero fields are skipped.
type Overlay struct {
	Signature []byte // PNG
	Role      Role
	Landmarks layout.Landmarks
	ShareURL  string // QR code, top left of the first page
	Reference string // PDF417 code, bottom left of the last page
	DefaultY  float64
}

func (o Overlay) empty() bool {
	return len(o.Signature) == 0 && o.ShareURL == "" && o.Reference == ""
}

// SignaturePosition returns the 1-based page and the top Y of the signature
// image for role. The landmark of the role is used when it falls inside the
// document; otherwise the image goes fallbackY from the top of the last page.
func SignaturePosition(lms layout.Landmarks, role Role, pages int, fallbackY float64) (int, float64) {
	lm := lms.Tenant
	if role == RoleLandlord {
		lm = lms.Landlord
	}
	if lm != nil && lm.Page >= 1 && lm.Page <= pages {
		return lm.Page, lm.Y + layout.SignatureOffset
	}
	return pages, fallbackY
}

// Apply stamps the PDF at inputPath and writes the result to w.
func Apply(w io.Writer, inputPath string, ov Overlay) error {
	pdf, err := build(inputPath, ov)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("stamp: writing pdf: %w", err)
	}
	return nil
}

// ApplyFile stamps inputPath into outputPath. A partial output file is
// removed on failure.
func ApplyFile(inputPath, outputPath string, ov Overlay) error {
	pdf, err := build(inputPath, ov)
	if err != nil {
		return err
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("stamp: creating %s: %w", outputPath, err)
	}
	err = pdf.Output(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("stamp: writing %s: %w", outputPath, err)
	}
	return nil
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, r)
		}
	}()
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("stamp: %w", err)
	}
	imp := realgofpdi.NewImporter()
	imp.SetSourceFile(path)
	return len(imp.GetPageSizes()), nil
}

func build(inputPath string, ov Overlay) (pdf *gofpdf.Fpdf, err error) {
	if ov.empty() {
		return nil, fmt.Errorf("stamp: nothing to draw")
	}
	pages, err := PageCount(inputPath)
	if err != nil {
		return nil, err
	}
	if pages == 0 {
		return nil, fmt.Errorf("%w: %s has no pages", ErrUnreadable, inputPath)
	}

	defer func() {
		if r := recover(); r != nil {
			pdf, err = nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, inputPath, r)
		}
	}()

	pdf = gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	imp := gofpdi.NewImporter()

	var sig *layout.Placement
	sigPage := 0
	if len(ov.Signature) > 0 {
		p, err := layout.RegisterSignature(pdf, signatureImage, ov.Signature)
		if err != nil {
			return nil, fmt.Errorf("stamp: %w", err)
		}
		fallback := ov.DefaultY
		if fallback <= 0 {
			fallback = DefaultY
		}
		sigPage, p.Y = SignaturePosition(ov.Landmarks, ov.Role, pages, fallback)
		sig = &p
	}

	for i := 1; i <= pages; i++ {
		tplID, pw, ph := importPage(pdf, imp, inputPath, i)
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pw, Ht: ph})
		imp.UseImportedTemplate(pdf, tplID, 0, 0, pw, ph)

		if i == 1 && ov.ShareURL != "" {
			key := barcode.RegisterQR(pdf, ov.ShareURL, qr.M, qr.Unicode)
			barcode.Barcode(pdf, key, codeInset, codeInset, qrSize, qrSize, false)
		}
		if i == sigPage {
			sig.X = pw - layout.DefaultMargin - sig.W
			sig.Draw(pdf)
		}
		if i == pages && ov.Reference != "" {
			key := barcode.RegisterPdf417(pdf, ov.Reference, 5, 2)
			barcode.Barcode(pdf, key, codeInset, ph-codeInset-pdf417Height, pdf417Width, pdf417Height, false)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("stamp: %w", pdf.Error())
	}
	return pdf, nil
}

// importPage imports one page and returns its template id and media box
// size, falling back to A4 when the box is missing.
func importPage(pdf *gofpdf.Fpdf, imp *gofpdi.Importer, path string, n int) (tplID int, w, h float64) {
	tplID = imp.ImportPage(pdf, path, n, "/MediaBox")
	if dims, ok := imp.GetPageSizes()[n]; ok {
		if mb, ok := dims["/MediaBox"]; ok {
			w, h = mb["w"], mb["h"]
		}
	}
	if w == 0 || h == 0 {
		w, h = layout.A4Width, layout.A4Height
	}
	return tplID, w, h
}
