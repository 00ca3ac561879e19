package render

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	dErrors "coursecred/pkg/domain-errors"
)

func init() {
	// pdfcpu would otherwise create a config directory under the user's home.
	api.DisableConfigDir()
}

// Permissions granted on the issued artifact: print, print at full
// resolution and extract text and graphics. Editing is not granted.
const Permissions = model.PermissionsNone | model.PermissionPrintRev2 | model.PermissionPrintRev3 | model.PermissionExtractRev3

// AESKeyLength is the key size used to encrypt artifacts, in bits.
const AESKeyLength = 256

// Engine merges an overlay onto a template and seals the result.
type Engine interface {
	// PageSize returns the width and height of the template's first page in points.
	PageSize(template []byte) (width, height float64, err error)
	// Compose stamps overlay page 1 over template page 1 and returns the
	// encrypted single page document.
	Compose(template, overlay []byte) ([]byte, error)
}

// PDFCPUEngine implements Engine on pdfcpu.
type PDFCPUEngine struct {
	// OwnerPassword returns the owner password for each artifact. It defaults to
	// 32 random bytes, hex encoded; the user password is always empty so anyone
	// can open the file.
	OwnerPassword func() (string, error)
}

func NewPDFCPUEngine() *PDFCPUEngine {
	return &PDFCPUEngine{OwnerPassword: randomPassword}
}

func (e *PDFCPUEngine) PageSize(template []byte) (float64, float64, error) {
	dims, err := api.PageDims(bytes.NewReader(template), relaxed())
	if err != nil {
		return 0, 0, dErrors.Wrap(err, dErrors.CodeRenderFailure, fmt.Sprintf("read template: %v", err))
	}
	if len(dims) == 0 {
		return 0, 0, dErrors.New(dErrors.CodeRenderFailure, "template has no pages")
	}
	return dims[0].Width, dims[0].Height, nil
}

func (e *PDFCPUEngine) Compose(template, overlay []byte) ([]byte, error) {
	var firstPage bytes.Buffer
	if err := api.Trim(bytes.NewReader(template), &firstPage, []string{"1"}, relaxed()); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRenderFailure, fmt.Sprintf("extract template page: %v", err))
	}

	// pdfcpu loads PDF stamps from disk.
	f, err := os.CreateTemp("", "overlay-*.pdf")
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRenderFailure, "create overlay file")
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(overlay); err != nil {
		_ = f.Close()
		return nil, dErrors.Wrap(err, dErrors.CodeRenderFailure, "write overlay file")
	}
	if err := f.Close(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRenderFailure, "close overlay file")
	}

	wm, err := api.PDFWatermark(f.Name()+":1", "pos:c, scalefactor:1 abs, rot:0, op:1", true, false, types.POINTS)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRenderFailure, fmt.Sprintf("load overlay: %v", err))
	}
	var stamped bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(firstPage.Bytes()), &stamped, []string{"1"}, wm, relaxed()); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRenderFailure, fmt.Sprintf("merge overlay: %v", err))
	}

	ownerPW, err := e.OwnerPassword()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRenderFailure, "generate owner password")
	}
	conf := model.NewAESConfiguration("", ownerPW, AESKeyLength)
	conf.Permissions = Permissions
	conf.ValidationMode = model.ValidationRelaxed

	var sealed bytes.Buffer
	if err := api.Encrypt(bytes.NewReader(stamped.Bytes()), &sealed, conf); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRenderFailure, fmt.Sprintf("encrypt: %v", err))
	}
	return sealed.Bytes(), nil
}

func relaxed() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func randomPassword() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
