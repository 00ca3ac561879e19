package models

import "time"

// Asset is a slug-addressed binary input of the renderer: a template, a font or an image.
type Asset struct {
	Slug        string
	Description string
	ContentType string
	Data        []byte
	UpdatedAt   time.Time
}
