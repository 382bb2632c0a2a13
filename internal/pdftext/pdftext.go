// Package pdftext extracts positioned text blocks from PDF files. It is
// the boundary to the document-text layer: callers receive per-page blocks
// sorted into reading order and never touch the PDF libraries directly.
package pdftext

import (
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rotisserie/eris"
)

// Block is one positioned run of text on a page. Coordinates follow the
// PDF convention: origin at the lower left, y increasing upward.
type Block struct {
	X0, Y0 float64
	X1, Y1 float64
	Text   string
}

// Extractor supplies per-page text blocks for a document. Pages returns
// one slice of blocks per page, each already in reading order.
type Extractor interface {
	Pages(path string) ([][]Block, error)
}

// Reader extracts text blocks from PDF files on disk.
type Reader struct {
	// LineTolerance is the max vertical distance, in points, between two
	// fragments considered part of the same line.
	LineTolerance float64
}

// NewReader returns a Reader with the default line tolerance.
func NewReader() *Reader {
	return &Reader{LineTolerance: 2.0}
}

// Pages validates the document structure, then extracts every page's text
// as reading-order blocks (top to bottom, left to right).
func (r *Reader) Pages(path string) ([][]Block, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, eris.Wrapf(err, "pdftext: stat %s", path)
	}

	// Structural validation up front so corrupt files fail with a clear
	// error instead of deep inside text decoding.
	conf := pdfcpumodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfcpumodel.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return nil, eris.Wrap(err, "pdftext: validate pdf")
	}

	f, doc, err := pdf.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "pdftext: open pdf")
	}
	defer f.Close()

	pages := make([][]Block, 0, doc.NumPage())
	for n := 1; n <= doc.NumPage(); n++ {
		page := doc.Page(n)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, r.pageBlocks(page))
	}

	return pages, nil
}

// pageBlocks groups a page's raw text fragments into lines, then sorts the
// lines into reading order. Each line becomes one block.
func (r *Reader) pageBlocks(page pdf.Page) []Block {
	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	frags := make([]pdf.Text, len(content.Text))
	copy(frags, content.Text)

	// Group fragments by baseline. y decreases down the page, so sort
	// descending first.
	sort.SliceStable(frags, func(i, j int) bool {
		if frags[i].Y != frags[j].Y {
			return frags[i].Y > frags[j].Y
		}
		return frags[i].X < frags[j].X
	})

	var blocks []Block
	var line []pdf.Text
	flush := func() {
		if len(line) == 0 {
			return
		}
		blocks = append(blocks, joinLine(line))
		line = line[:0]
	}

	for _, t := range frags {
		if len(line) > 0 && line[0].Y-t.Y > r.LineTolerance {
			flush()
		}
		line = append(line, t)
	}
	flush()

	return blocks
}

// joinLine merges one baseline's fragments, left to right, into a block.
func joinLine(line []pdf.Text) Block {
	sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })

	var sb strings.Builder
	b := Block{X0: line[0].X, Y0: line[0].Y, X1: line[0].X + line[0].W, Y1: line[0].Y}
	var prevEnd float64
	for i, t := range line {
		if i > 0 && t.X-prevEnd > 1.0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.S)
		prevEnd = t.X + t.W
		if end := t.X + t.W; end > b.X1 {
			b.X1 = end
		}
		h := t.FontSize
		if h == 0 {
			h = 12.0
		}
		if top := t.Y + h; top > b.Y1 {
			b.Y1 = top
		}
	}
	b.Text = sb.String()
	return b
}
