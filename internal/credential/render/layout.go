package render

import (
	"strings"

	"coursecred/internal/credential/models"
)

// Font sizes and line spacing of the overlay, in points.
const (
	NameFontSize         = 32
	ResourceNameFontSize = 28
	IssueDateFontSize    = 12
	LineHeightFactor     = 1.1
)

// TextLine is a single positioned string. Y is measured from the bottom of
// the page to the baseline.
type TextLine struct {
	Text  string
	X     float64
	Y     float64
	Size  float64
	Color RGB
}

// Measurer returns the rendered width of text at size in the overlay font.
type Measurer func(text string, size float64) float64

// Layout positions the learner name, each line of the resource name and the
// issue date, each centered horizontally on a page pageWidth wide. Resource
// name lines descend from ResourceNameY by ResourceNameFontSize*LineHeightFactor.
func Layout(pageWidth float64, learnerName, resourceName, issueDate string, opts models.RenderOptions, measure Measurer) ([]TextLine, error) {
	nameColor, err := ParseHexColor(opts.NameColor)
	if err != nil {
		return nil, err
	}
	resourceColor, err := ParseHexColor(opts.ResourceNameColor)
	if err != nil {
		return nil, err
	}
	dateColor, err := ParseHexColor(opts.IssueDateColor)
	if err != nil {
		return nil, err
	}

	centered := func(text string, y, size float64, color RGB) TextLine {
		return TextLine{
			Text:  text,
			X:     (pageWidth - measure(text, size)) / 2,
			Y:     y,
			Size:  size,
			Color: color,
		}
	}

	lines := []TextLine{centered(learnerName, opts.NameY, NameFontSize, nameColor)}

	lineHeight := ResourceNameFontSize * LineHeightFactor
	for i, line := range strings.Split(resourceName, "\n") {
		lines = append(lines, centered(line, opts.ResourceNameY-float64(i)*lineHeight, ResourceNameFontSize, resourceColor))
	}

	lines = append(lines, centered(issueDate, opts.IssueDateY, IssueDateFontSize, dateColor))
	return lines, nil
}
