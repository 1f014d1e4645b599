package layout

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/orsabag2/rent/doctpl"
)

const signatureImage = "signature"

// pdfMeasurer measures with the fonts registered on a gofpdf document.
type pdfMeasurer struct {
	pdf *gofpdf.Fpdf
}

func (m pdfMeasurer) Width(text string, bold bool, size float64) float64 {
	m.pdf.SetFont(fontFamily, fontStyle(bold), size)
	return m.pdf.GetStringWidth(text)
}

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

// Render paginates runs with the embedded fonts and writes the PDF to w.
// The returned result carries the landmarks found while drawing.
func Render(w io.Writer, runs []doctpl.Run, opts ...Option) (Result, error) {
	cfg := newConfig(opts)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: cfg.width, Ht: cfg.height},
	})
	pdf.SetMargins(cfg.left, cfg.top, cfg.right)
	pdf.SetAutoPageBreak(false, cfg.bottom)

	if err := registerFonts(pdf, cfg.fonts); err != nil {
		return Result{}, err
	}

	res := paginate(runs, pdfMeasurer{pdf: pdf}, cfg)

	var sig *Placement
	if len(cfg.signature) > 0 && res.Landmarks.Landlord != nil {
		p, err := RegisterSignature(pdf, signatureImage, cfg.signature)
		if err != nil {
			return Result{}, err
		}
		p.X = cfg.width - cfg.right - p.W
		p.Y = res.Landmarks.Landlord.Y + SignatureOffset
		sig = &p
	}

	for i, page := range res.Pages {
		pdf.AddPage()
		for _, l := range page.Lines {
			pdf.SetFont(fontFamily, fontStyle(l.Bold), l.Size)
			pdf.Text(l.X, l.Y, l.Visual())
		}
		pdf.SetLineWidth(1)
		for _, r := range page.Rules {
			pdf.Line(r.X1, r.Y, r.X2, r.Y)
		}
		if sig != nil && res.Landmarks.Landlord.Page == i+1 {
			sig.Draw(pdf)
		}
	}

	if pdf.Err() {
		return Result{}, fmt.Errorf("layout: %w", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return Result{}, fmt.Errorf("layout: writing pdf: %w", err)
	}
	return res, nil
}

func registerFonts(pdf *gofpdf.Fpdf, f Fonts) (err error) {
	if len(f.Regular) == 0 {
		return ErrNoFont
	}
	bold := f.Bold
	if len(bold) == 0 {
		bold = f.Regular
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrNoFont, r)
		}
	}()
	pdf.AddUTF8FontFromBytes(fontFamily, "", f.Regular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", bold)
	if pdf.Err() {
		return fmt.Errorf("%w: %v", ErrNoFont, pdf.Error())
	}
	return nil
}

// Placement is a registered image and where to draw it.
type Placement struct {
	Name       string
	X, Y, W, H float64
}

// Draw places the image on the current page.
func (p Placement) Draw(pdf *gofpdf.Fpdf) {
	pdf.ImageOptions(p.Name, p.X, p.Y, p.W, p.H, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

// RegisterSignature registers a PNG signature on pdf and returns its size
// fitted into the signature box. Position is left to the caller.
func RegisterSignature(pdf *gofpdf.Fpdf, name string, data []byte) (Placement, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Placement{}, fmt.Errorf("layout: decoding signature: %w", err)
	}
	pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(data))
	if pdf.Err() {
		return Placement{}, fmt.Errorf("layout: registering signature: %w", pdf.Error())
	}
	w, h := FitSignature(float64(cfg.Width), float64(cfg.Height))
	return Placement{Name: name, W: w, H: h}, nil
}

// FitSignature scales an image of the given pixel size to fit the
// signature box, keeping its aspect ratio.
func FitSignature(w, h float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return SignatureWidth, SignatureHeight
	}
	scale := SignatureWidth / w
	if s := SignatureHeight / h; s < scale {
		scale = s
	}
	return w * scale, h * scale
}
