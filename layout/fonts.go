package layout

import (
	"fmt"
	"os"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// fontFamily is the name the body faces are registered under.
const fontFamily = "body"

// Fonts holds TrueType data for the regular and bold faces.
type Fonts struct {
	Regular []byte
	Bold    []byte
}

// DefaultFonts returns the Go fonts. They carry no Hebrew glyphs, so
// deployments that render Hebrew contracts load a Hebrew face with
// LoadFonts.
func DefaultFonts() Fonts {
	return Fonts{Regular: goregular.TTF, Bold: gobold.TTF}
}

// LoadFonts reads TrueType files from disk. An empty boldPath reuses the
// regular face for bold text.
func LoadFonts(regularPath, boldPath string) (Fonts, error) {
	regular, err := os.ReadFile(regularPath)
	if err != nil {
		return Fonts{}, fmt.Errorf("%w: %v", ErrNoFont, err)
	}
	f := Fonts{Regular: regular, Bold: regular}
	if boldPath != "" {
		if f.Bold, err = os.ReadFile(boldPath); err != nil {
			return Fonts{}, fmt.Errorf("%w: %v", ErrNoFont, err)
		}
	}
	return f, nil
}
