package impl

import (
	"io"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// htmlToPDF needs the wkhtmltopdf binary on PATH or in WKHTMLTOPDF_PATH.
func htmlToPDF(page io.Reader) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, err
	}
	pdfg.Title.Set("Grow station report")
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.AddPage(wkhtmltopdf.NewPageReader(page))
	if err = pdfg.Create(); err != nil {
		return nil, err
	}
	return pdfg.Bytes(), nil
}
