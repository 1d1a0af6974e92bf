// Package pdf renders submission confirmation documents with fpdf.
package pdf

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"github.com/schulanmeldung/regform-backend/internal/domain"
)

//go:embed fonts/*.ttf
var fontFS embed.FS

// fontFiles maps fpdf style strings to the embedded TrueType faces.
var fontFiles = map[string]string{
	"":  "fonts/DejaVuSansCondensed.ttf",
	"B": "fonts/DejaVuSansCondensed-Bold.ttf",
	"I": "fonts/DejaVuSansCondensed-Oblique.ttf",
}

const (
	fontFamily  = "DejaVu"
	lineHeight  = 6.0
	keyColWidth = 60.0
	dateLayout  = "02.01.2006 15:04"
)

// Labels are the localized captions printed around the data.
type Labels struct {
	Reference   string
	Form        string
	CreatedAt   string
	Status      string
	StatusValue string
	DataHeading string
	GeneratedAt string
	Page        string
	True        string
	False       string
}

// RenderInput is everything needed to draw one document.
type RenderInput struct {
	Submission  domain.Submission
	Config      domain.PDFConfig
	Labels      Labels
	GeneratedAt time.Time
}

// Renderer draws confirmation documents with an embedded Unicode font, so
// names outside Latin-1 print as submitted. It holds no per-document
// state and is safe for concurrent use.
type Renderer struct {
	compress bool
	loc      *time.Location
	fonts    map[string][]byte
}

// NewRenderer creates a renderer. Timestamps are printed in loc; nil
// means UTC.
func NewRenderer(compress bool, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	fonts := make(map[string][]byte, len(fontFiles))
	for style, name := range fontFiles {
		b, err := fontFS.ReadFile(name)
		if err != nil {
			// embedded at build time; missing means a broken build
			panic(fmt.Sprintf("pdf: embedded font %s: %v", name, err))
		}
		fonts[style] = b
	}
	return &Renderer{compress: compress, loc: loc, fonts: fonts}
}

// Render produces the complete document in memory. Nothing is returned
// unless the whole document was drawn without error.
func (r *Renderer) Render(in RenderInput) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetCreationDate(in.GeneratedAt)
	pdf.SetCreator("regform", false)
	pdf.SetTitle(in.Config.Title, true)
	pdf.AliasNbPages("")
	for style, b := range r.fonts {
		pdf.AddUTF8FontFromBytes(fontFamily, style, b)
	}

	d := &doc{pdf: pdf, tr: printable}

	footer := printable(in.Config.Footer)
	generated := printable(fmt.Sprintf("%s %s", in.Labels.GeneratedAt, in.GeneratedAt.In(r.loc).Format(dateLayout)))
	page := printable(in.Labels.Page)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(110, 110, 110)
		if footer != "" {
			pdf.CellFormat(0, 4, footer, "", 1, "C", false, 0, "")
		}
		pdf.CellFormat(0, 4, fmt.Sprintf("%s  |  %s %d/{nb}", generated, page, pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	d.header(in.Config)
	if in.Config.Intro != "" {
		d.paragraph(in.Config.Intro)
	}

	s := in.Submission
	d.table([][2]string{
		{in.Labels.Reference, strconv.FormatInt(s.ID, 10)},
		{in.Labels.Form, s.FormKey},
		{in.Labels.CreatedAt, s.CreatedAt.In(r.loc).Format(dateLayout)},
		{in.Labels.Status, in.Labels.StatusValue},
	})

	d.sections(in.Config.SectionsBefore)

	d.heading(in.Labels.DataHeading)
	d.table(dataRows(s.Data, domain.ValueFormatter{True: in.Labels.True, False: in.Labels.False}))

	d.sections(in.Config.SectionsAfter)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	return buf.Bytes(), nil
}

// printable replaces what the font tables cannot index (invalid UTF-8 and
// runes outside the Basic Multilingual Plane) with U+FFFD.
func printable(s string) string {
	if utf8.ValidString(s) && !hasAstral(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return utf8.RuneError
		}
		return r
	}, strings.ToValidUTF8(s, string(utf8.RuneError)))
}

func hasAstral(s string) bool {
	for _, r := range s {
		if r > 0xFFFF {
			return true
		}
	}
	return false
}

func dataRows(data domain.FormData, f domain.ValueFormatter) [][2]string {
	rows := make([][2]string, 0, data.Len())
	data.Each(func(k string, v any) {
		val := f.Format(v)
		if val == "" {
			val = "-"
		}
		rows = append(rows, [2]string{domain.HumanizeKey(k), val})
	})
	return rows
}

// doc wraps fpdf with the few layout primitives the document uses.
type doc struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (d *doc) header(cfg domain.PDFConfig) {
	if cfg.LogoPath != "" {
		if _, err := os.Stat(cfg.LogoPath); err == nil {
			d.pdf.ImageOptions(cfg.LogoPath, 10, 10, 0, 18, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
			d.pdf.SetY(32)
		}
	}
	if cfg.Title != "" {
		d.pdf.SetFont(fontFamily, "B", 16)
		d.pdf.MultiCell(0, 9, d.tr(cfg.Title), "", "L", false)
		d.pdf.Ln(3)
	}
}

func (d *doc) heading(text string) {
	if text == "" {
		return
	}
	d.pdf.Ln(3)
	d.pdf.SetFont(fontFamily, "B", 12)
	d.pdf.MultiCell(0, 7, d.tr(text), "", "L", false)
	d.pdf.Ln(1)
}

func (d *doc) paragraph(text string) {
	d.pdf.SetFont(fontFamily, "", 10)
	d.pdf.MultiCell(0, 5, d.tr(text), "", "L", false)
	d.pdf.Ln(3)
}

func (d *doc) sections(sections []domain.PDFSection) {
	for _, s := range sections {
		d.heading(s.Heading)
		if s.Body != "" {
			d.paragraph(s.Body)
		}
	}
}

// table draws two-column rows whose height follows the longer cell.
func (d *doc) table(rows [][2]string) {
	pageW, pageH := d.pdf.GetPageSize()
	left, _, right, bottom := d.pdf.GetMargins()
	valW := pageW - left - right - keyColWidth

	d.pdf.SetDrawColor(180, 180, 180)
	for _, row := range rows {
		key, val := d.tr(row[0]), d.tr(row[1])

		d.pdf.SetFont(fontFamily, "B", 10)
		keyLines := d.pdf.SplitText(key, keyColWidth-2)
		d.pdf.SetFont(fontFamily, "", 10)
		valLines := d.pdf.SplitText(val, valW-2)

		n := max(len(keyLines), len(valLines), 1)
		h := float64(n) * lineHeight

		if d.pdf.GetY()+h > pageH-bottom-15 {
			d.pdf.AddPage()
		}

		x, y := d.pdf.GetXY()
		d.pdf.SetFillColor(240, 240, 240)
		d.pdf.Rect(x, y, keyColWidth, h, "FD")
		d.pdf.Rect(x+keyColWidth, y, valW, h, "D")

		d.pdf.SetFont(fontFamily, "B", 10)
		d.lines(x, y, keyLines)
		d.pdf.SetFont(fontFamily, "", 10)
		d.lines(x+keyColWidth, y, valLines)

		d.pdf.SetXY(x, y+h)
	}
	d.pdf.Ln(2)
}

func (d *doc) lines(x, y float64, lines []string) {
	for i, l := range lines {
		d.pdf.SetXY(x+1, y+float64(i)*lineHeight)
		d.pdf.CellFormat(0, lineHeight, l, "", 0, "L", false, 0, "")
	}
}
