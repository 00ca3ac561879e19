package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	dErrors "coursecred/pkg/domain-errors"
)

// DefaultFontFamily is the built-in font used when no font asset is configured.
const DefaultFontFamily = "Helvetica"

// Font is the overlay typeface. A nil TTF selects the built-in core font.
type Font struct {
	Family string
	TTF    []byte
}

// overlay is a single transparent page sized like the template that text
// lines are drawn onto before it is stamped over the template.
type overlay struct {
	pdf       *fpdf.Fpdf
	height    float64
	translate func(string) string
}

func newOverlay(width, height float64, font Font) (*overlay, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetCompression(false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)

	family := DefaultFontFamily
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	if font.TTF != nil {
		family = font.Family
		pdf.AddUTF8FontFromBytes(family, "", font.TTF)
		translate = func(s string) string { return s }
	}
	pdf.AddPage()
	pdf.SetFont(family, "", NameFontSize)
	if err := pdf.Error(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRenderFailure, fmt.Sprintf("load font %q: %v", family, err))
	}
	return &overlay{pdf: pdf, height: height, translate: translate}, nil
}

// measure implements Measurer with the overlay's current font.
func (o *overlay) measure(text string, size float64) float64 {
	o.pdf.SetFontSize(size)
	return o.pdf.GetStringWidth(o.translate(text))
}

// draw writes lines, converting bottom-up Y into the top-down page space.
func (o *overlay) draw(lines []TextLine) {
	for _, line := range lines {
		r, g, b := line.Color.Bytes()
		o.pdf.SetFontSize(line.Size)
		o.pdf.SetTextColor(r, g, b)
		o.pdf.Text(line.X, o.height-line.Y, o.translate(line.Text))
	}
}

func (o *overlay) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := o.pdf.Output(&buf); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRenderFailure, "write overlay")
	}
	return buf.Bytes(), nil
}
