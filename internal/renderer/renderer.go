// Package renderer lays out certificate PDFs and their verification QR codes.
package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type Variant string

const (
	SecondaryLeaving Variant = "10th"
	HigherSecondary  Variant = "12th"
	Degree           Variant = "Degree"
)

// Variants lists the supported certificate kinds.
var Variants = []Variant{SecondaryLeaving, HigherSecondary, Degree}

var ErrUnsupportedVariant = errors.New("unsupported certificate variant")

// ParseVariant matches tag against the supported variants ignoring case.
func ParseVariant(tag string) (Variant, error) {
	tag = strings.TrimSpace(tag)
	for _, v := range Variants {
		if strings.EqualFold(string(v), tag) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedVariant, tag)
}

// Producer is written into every document's info dictionary.
const Producer = "academic-cert-api"

const passMark = 35

// Filename is the stored name of a certificate document.
func Filename(certificateID string, v Variant) string {
	suffix := strings.ToLower(string(v))
	if t, ok := TemplateFor(v); ok {
		suffix = t.Suffix
	}
	return fmt.Sprintf("%s_%s.pdf", SafeName(certificateID), suffix)
}

// QRFilename is the stored name of a certificate's QR image.
func QRFilename(certificateID string) string {
	return SafeName(certificateID) + "_qr.png"
}

// SafeName makes a certificate id usable as a flat file name.
func SafeName(certificateID string) string {
	return strings.ReplaceAll(certificateID, "/", "_")
}

type Input struct {
	Variant       Variant
	CertificateID string
	Fields        map[string]string
	// QR is a PNG image. An empty or unreadable image is left off the page.
	QR       []byte
	IssuedAt time.Time
}

type Document struct {
	Variant  Variant
	Filename string
	Data     []byte
}

type Renderer struct {
	compress bool
}

func New() *Renderer {
	return &Renderer{compress: true}
}

// Render produces the PDF for in. Identical input yields identical bytes.
func (r *Renderer) Render(in Input) (*Document, error) {
	tpl, ok := TemplateFor(in.Variant)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVariant, in.Variant)
	}

	fields := make(map[string]string, len(in.Fields)+2)
	for k, v := range in.Fields {
		fields[k] = v
	}
	fields["certificate_id"] = in.CertificateID
	fields["issue_date"] = in.IssuedAt.Format(tpl.DateLayout)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCompression(r.compress)
	pdf.SetCreationDate(in.IssuedAt)
	pdf.SetModificationDate(in.IssuedAt)
	pdf.SetProducer(Producer, false)
	pdf.SetTitle(fmt.Sprintf("Certificate %s", in.CertificateID), true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	p := &page{pdf: pdf, tpl: tpl, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	p.borders()
	p.lines(tpl.Header, 0, fields)
	if len(tpl.Details) > 0 {
		y := p.details(fields)
		if tpl.Marks != nil {
			y = p.marks(y+10, fields)
		}
		p.lines(tpl.Summary, y, fields)
	}
	p.lines(tpl.Body, 0, fields)
	p.qr(in.QR, in.CertificateID)
	p.lines(tpl.Footer, 0, fields)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render %s certificate: %w", tpl.Variant, err)
	}

	return &Document{
		Variant:  tpl.Variant,
		Filename: Filename(in.CertificateID, tpl.Variant),
		Data:     buf.Bytes(),
	}, nil
}

type page struct {
	pdf *gofpdf.Fpdf
	tpl *Template
	tr  func(string) string
}

func (p *page) color(c RGB) {
	p.pdf.SetTextColor(c.R, c.G, c.B)
}

func (p *page) borders() {
	for _, b := range p.tpl.Borders {
		p.pdf.SetDrawColor(b.Color.R, b.Color.G, b.Color.B)
		p.pdf.SetLineWidth(b.Width)
		p.pdf.Rect(b.Inset, b.Inset, pageWidth-2*b.Inset, pageHeight-2*b.Inset, "D")
	}
}

func (p *page) text(s string, size float64, bold bool, align string, x, y float64) {
	style := ""
	if bold {
		style = "B"
	}
	p.pdf.SetFont("Helvetica", style, size)
	s = p.tr(s)
	w := p.pdf.GetStringWidth(s)
	switch align {
	case "L":
	case "R":
		x -= w
	case "M":
		x -= w / 2
	default:
		x = (pageWidth - w) / 2
	}
	p.pdf.Text(x, y, s)
}

// lines draws ls with their Y offset by base.
func (p *page) lines(ls []Line, base float64, fields map[string]string) {
	for _, l := range ls {
		s := Expand(l.Text, fields)
		if l.Upper {
			s = strings.ToUpper(s)
		}
		c := p.tpl.Theme
		if l.Color != nil {
			c = *l.Color
		}
		p.color(c)
		p.text(s, l.Size, l.Bold, l.Align, l.X, base+l.Y)
	}
}

// details draws the label/value pairs and returns the y below the last one.
func (p *page) details(fields map[string]string) float64 {
	y := p.tpl.DetailsTop
	for _, d := range p.tpl.Details {
		p.color(p.tpl.Theme)
		p.text(d.Label, 9, true, "L", 25, y)
		v := Expand(d.Value, fields)
		if d.Upper {
			v = strings.ToUpper(v)
		}
		p.color(black)
		p.text(v, 11, false, "L", 25, y+4.5)
		y += p.tpl.DetailGap
	}
	return y
}

// marks draws the subject table starting at top and returns the y of the last
// row's baseline.
func (p *page) marks(top float64, fields map[string]string) float64 {
	t := p.tpl.Marks
	th := p.tpl.Theme

	p.pdf.SetFillColor(th.R, th.G, th.B)
	p.pdf.Rect(25, top, 160, 7, "F")
	p.color(white)
	for i, h := range t.Headers {
		p.text(h, 9, true, "L", t.Columns[i], top+4.8)
	}

	y := top + 7
	for i, s := range t.SubjectsFor(fields) {
		if i%2 == 0 {
			p.pdf.SetFillColor(stripe.R, stripe.G, stripe.B)
			p.pdf.Rect(25, y, 160, 7, "F")
		}
		score := Expand("{"+s.Key+"|0}", fields)
		cells := []string{s.Name, score, "-", score, result(score)}
		p.color(black)
		for j, c := range cells {
			p.text(c, 9, false, "L", t.Columns[j], y+4.8)
		}
		y += 7
	}
	return y
}

func result(score string) string {
	n, err := strconv.ParseFloat(score, 64)
	if err != nil {
		return "-"
	}
	if n >= passMark {
		return "P"
	}
	return "F"
}

func (p *page) qr(img []byte, certificateID string) {
	if len(img) == 0 {
		return
	}
	box := p.tpl.QR
	if _, err := png.DecodeConfig(bytes.NewReader(img)); err != nil {
		slog.Warn("QR image unreadable, rendering without it", "certificate_id", certificateID, "error", err)
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(img))
	if !p.pdf.Ok() {
		slog.Warn("QR image rejected, rendering without it", "certificate_id", certificateID, "error", p.pdf.Error())
		p.pdf.ClearError()
		return
	}
	p.pdf.ImageOptions("qr", box.X, box.Y, box.Size, box.Size, false, opts, 0, "")
	p.color(black)
	p.text(box.Caption, 7, false, "M", box.X+box.Size/2, box.Y+box.Size+4)
}
