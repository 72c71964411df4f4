package renderer

import (
	"regexp"
	"strings"
)

// RGB is a colour in 0-255 channels.
type RGB struct{ R, G, B int }

var (
	black    = RGB{0, 0, 0}
	grey     = RGB{90, 90, 90}
	white    = RGB{255, 255, 255}
	stripe   = RGB{240, 240, 240}
	verified = RGB{0, 150, 0}
	gold     = RGB{255, 215, 0}
)

// Border is a rectangle inset from the page edge.
type Border struct {
	Inset float64
	Width float64
	Color RGB
}

// Line is one line of text. Text may contain {field} or {field|default}
// placeholders which are filled from the row before drawing.
type Line struct {
	Text  string
	Size  float64
	Bold  bool
	Upper bool
	Y     float64
	// Align is "C" (page centre), "L", "R" or "M" (centred on X).
	Align string
	X     float64
	Color *RGB
}

// Detail is a labelled candidate field, drawn as a bold label with the value
// underneath.
type Detail struct {
	Label string
	Value string
	Upper bool
}

// Subject is a marks table row. The score is read from the canonical column
// Key and defaults to "0".
type Subject struct {
	Name string
	Key  string
}

// MarksTable describes the subject table of school certificates.
type MarksTable struct {
	Headers []string
	Columns []float64
	// Streams maps a lower-case stream to its subject list. StreamKey names
	// the field that selects it; an empty StreamKey uses DefaultStream only.
	Streams       map[string][]Subject
	StreamKey     string
	DefaultStream string
}

// SubjectsFor returns the subject rows used for the given row values.
func (t *MarksTable) SubjectsFor(fields map[string]string) []Subject {
	if t.StreamKey != "" {
		if s, ok := t.Streams[strings.ToLower(strings.TrimSpace(fields[t.StreamKey]))]; ok {
			return s
		}
	}
	return t.Streams[t.DefaultStream]
}

// QRBox is where the verification code sits on the page.
type QRBox struct {
	X, Y, Size float64
	Caption    string
}

// Template is a data-driven certificate layout. The renderer walks it top to
// bottom; nothing about a particular variant lives in code.
type Template struct {
	Variant    Variant
	Suffix     string
	Theme      RGB
	DateLayout string
	Borders    []Border
	Header     []Line

	// Details flow from DetailsTop with DetailGap between entries.
	Details    []Detail
	DetailsTop float64
	DetailGap  float64

	Marks *MarksTable
	// Summary lines are positioned relative to the end of the marks table.
	Summary []Line

	// Body lines use absolute positions.
	Body []Line

	QR     QRBox
	Footer []Line
}

var placeholder = regexp.MustCompile(`\{([a-z0-9_]+)(?:\|([^}]*))?\}`)

// Expand fills the placeholders of text from fields. A placeholder without an
// explicit default falls back to "N/A".
func Expand(text string, fields map[string]string) string {
	return placeholder.ReplaceAllStringFunc(text, func(m string) string {
		parts := placeholder.FindStringSubmatch(m)
		if v := strings.TrimSpace(fields[parts[1]]); v != "" {
			return v
		}
		if strings.Contains(m, "|") {
			return parts[2]
		}
		return "N/A"
	})
}

const (
	pageWidth  = 210.0
	pageHeight = 297.0
)

var marksHeaders = []string{"SUBJECT", "THEORY", "PRACTICAL", "TOTAL", "RESULT"}
var marksColumns = []float64{30, 90, 115, 140, 165}

func schoolFooter() []Line {
	return []Line{
		{Text: "______________________", Size: 9, Align: "R", X: 150, Y: 257},
		{Text: "Controller of Examinations", Size: 9, Bold: true, Align: "R", X: 150, Y: 262},
		{Text: "Issue Date: {issue_date}", Size: 8, Align: "L", X: 25, Y: 275, Color: &grey},
		{Text: "This is a digitally generated certificate", Size: 8, Align: "L", X: 25, Y: 280, Color: &grey},
		{Text: "DIGITALLY VERIFIED", Size: 9, Bold: true, Align: "R", X: 150, Y: 275, Color: &verified},
	}
}

func schoolSummary() []Line {
	return []Line{
		{Text: "TOTAL MARKS : {total_marks|0}", Size: 11, Bold: true, Align: "L", X: 25, Y: 8},
		{Text: "PERCENTAGE : {percentage|0}%", Size: 10, Bold: true, Align: "L", X: 25, Y: 15},
		{Text: "GRADE : {grade}", Size: 10, Bold: true, Align: "L", X: 100, Y: 15},
	}
}

func certificateNumber() Line {
	return Line{Text: "Certificate No: {certificate_id}", Size: 9, Align: "R", X: 190, Y: 20}
}

var schoolQR = QRBox{X: 160, Y: 237, Size: 30, Caption: "Scan to Verify"}

var secondaryTemplate = &Template{
	Variant:    SecondaryLeaving,
	Suffix:     "10th",
	Theme:      RGB{0, 51, 102},
	DateLayout: "02-Jan-2006",
	Borders: []Border{
		{Inset: 10, Width: 1.0, Color: RGB{0, 51, 102}},
		{Inset: 12, Width: 0.35, Color: RGB{0, 51, 102}},
	},
	Header: []Line{
		certificateNumber(),
		{Text: "STATE BOARD OF SCHOOL EXAMINATIONS, TAMIL NADU", Size: 14, Bold: true, Y: 38},
		{Text: "DEPARTMENT OF GOVERNMENT EXAMINATIONS, CHENNAI - 600 006", Size: 10, Y: 45, Color: &black},
		{Text: "SECONDARY SCHOOL LEAVING CERTIFICATE", Size: 13, Bold: true, Y: 55},
		{Text: "X STANDARD", Size: 11, Bold: true, Y: 62},
	},
	Details: []Detail{
		{Label: "NAME OF THE CANDIDATE", Value: "{name}", Upper: true},
		{Label: "REGISTER NUMBER", Value: "{student_id}", Upper: true},
		{Label: "DATE OF BIRTH", Value: "{dob}"},
		{Label: "SESSION", Value: "{board|STATE BOARD} - {year_of_passing}", Upper: true},
		{Label: "SCHOOL NAME", Value: "{school_name}", Upper: true},
	},
	DetailsTop: 75,
	DetailGap:  11,
	Marks: &MarksTable{
		Headers: marksHeaders,
		Columns: marksColumns,
		Streams: map[string][]Subject{
			"general": {
				{Name: "TAMIL", Key: "tamil"},
				{Name: "ENGLISH", Key: "english"},
				{Name: "MATHEMATICS", Key: "mathematics"},
				{Name: "SCIENCE", Key: "science"},
				{Name: "SOCIAL SCIENCE", Key: "social_science"},
			},
		},
		DefaultStream: "general",
	},
	Summary: schoolSummary(),
	QR:      schoolQR,
	Footer:  schoolFooter(),
}

var higherSecondaryTemplate = &Template{
	Variant:    HigherSecondary,
	Suffix:     "12th",
	Theme:      RGB{139, 0, 0},
	DateLayout: "02-Jan-2006",
	Borders: []Border{
		{Inset: 10, Width: 1.0, Color: RGB{139, 0, 0}},
		{Inset: 12, Width: 0.35, Color: RGB{139, 0, 0}},
	},
	Header: []Line{
		certificateNumber(),
		{Text: "STATE BOARD OF HIGHER SECONDARY EXAMINATIONS", Size: 14, Bold: true, Y: 38},
		{Text: "DEPARTMENT OF GOVERNMENT EXAMINATIONS, TAMIL NADU", Size: 10, Y: 45, Color: &black},
		{Text: "HIGHER SECONDARY CERTIFICATE", Size: 13, Bold: true, Y: 55},
		{Text: "XII STANDARD", Size: 11, Bold: true, Y: 62},
	},
	Details: []Detail{
		{Label: "NAME OF THE CANDIDATE", Value: "{name}", Upper: true},
		{Label: "REGISTER NUMBER", Value: "{student_id}", Upper: true},
		{Label: "DATE OF BIRTH", Value: "{dob}"},
		{Label: "STREAM", Value: "{stream|SCIENCE}", Upper: true},
		{Label: "SESSION", Value: "{board|STATE BOARD} - {year_of_passing}", Upper: true},
		{Label: "SCHOOL NAME", Value: "{school_name}", Upper: true},
	},
	DetailsTop: 72,
	DetailGap:  10,
	Marks: &MarksTable{
		Headers: marksHeaders,
		Columns: marksColumns,
		Streams: map[string][]Subject{
			"science": {
				{Name: "TAMIL", Key: "tamil"},
				{Name: "ENGLISH", Key: "english"},
				{Name: "PHYSICS", Key: "physics"},
				{Name: "CHEMISTRY", Key: "chemistry"},
				{Name: "MATHEMATICS", Key: "mathematics"},
				{Name: "COMPUTER SCIENCE", Key: "computer_science"},
			},
			"commerce": {
				{Name: "TAMIL", Key: "tamil"},
				{Name: "ENGLISH", Key: "english"},
				{Name: "ACCOUNTANCY", Key: "accountancy"},
				{Name: "COMMERCE", Key: "commerce"},
				{Name: "ECONOMICS", Key: "economics"},
				{Name: "BUSINESS MATHEMATICS", Key: "business_mathematics"},
			},
		},
		StreamKey:     "stream",
		DefaultStream: "science",
	},
	Summary: schoolSummary(),
	QR:      schoolQR,
	Footer:  schoolFooter(),
}

var degreeTemplate = &Template{
	Variant:    Degree,
	Suffix:     "degree",
	Theme:      RGB{26, 35, 126},
	DateLayout: "02 January 2006",
	Borders: []Border{
		{Inset: 10, Width: 1.4, Color: RGB{26, 35, 126}},
		{Inset: 13, Width: 0.7, Color: gold},
		{Inset: 15, Width: 0.35, Color: RGB{26, 35, 126}},
	},
	Header: []Line{
		certificateNumber(),
		{Text: "{university}", Size: 18, Bold: true, Upper: true, Y: 40},
		{Text: "{college_name}", Size: 11, Upper: true, Y: 47, Color: &black},
		{Text: "DEGREE CERTIFICATE", Size: 16, Bold: true, Y: 60},
	},
	Body: []Line{
		{Text: "This is to certify that", Size: 12, Y: 80, Color: &black},
		{Text: "{name}", Size: 16, Bold: true, Upper: true, Y: 92},
		{Text: "Register No: {student_id}", Size: 11, Y: 102, Color: &black},
		{Text: "has successfully completed the degree of", Size: 12, Y: 114, Color: &black},
		{Text: "{degree}", Size: 14, Bold: true, Y: 126},
		{Text: "in {specialization}", Size: 13, Bold: true, Y: 134},
		{Text: "in the academic year ending {year_of_passing}", Size: 11, Y: 149, Color: &black},
		{Text: "CGPA: {cgpa|0} / 10.00", Size: 13, Bold: true, Y: 169},
		{Text: "Class: {class}", Size: 13, Bold: true, Y: 177},
	},
	QR: QRBox{X: 160, Y: 242, Size: 30, Caption: "Scan to Verify"},
	Footer: []Line{
		{Text: "Date of Issue: {issue_date}", Size: 9, Y: 257, Color: &black},
		{Text: "______________________", Size: 9, Align: "L", X: 25, Y: 267},
		{Text: "Principal", Size: 9, Bold: true, Align: "L", X: 25, Y: 272},
		{Text: "______________________", Size: 9, Align: "R", X: 150, Y: 267},
		{Text: "Controller of Examinations", Size: 9, Bold: true, Align: "R", X: 150, Y: 272},
		{Text: "This is a digitally generated certificate", Size: 8, Y: 280, Color: &grey},
		{Text: "DIGITALLY VERIFIED", Size: 9, Bold: true, Y: 285, Color: &verified},
	},
}

var templates = map[Variant]*Template{
	SecondaryLeaving: secondaryTemplate,
	HigherSecondary:  higherSecondaryTemplate,
	Degree:           degreeTemplate,
}

// TemplateFor returns the layout of v.
func TemplateFor(v Variant) (*Template, bool) {
	t, ok := templates[v]
	return t, ok
}
