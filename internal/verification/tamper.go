package verification

import (
	"bytes"
	"fmt"
	"math"

	"github.com/digitorus/pdf"
	"github.com/sunthewhat/academic-cert-api/internal/renderer"
)

// TamperReport is a structural look at a document whose hash did not match.
// Score runs from 0.5 (content differs, structure looks original) to 1
// (unreadable or clearly re-produced).
type TamperReport struct {
	Score     float64  `json:"score"`
	Parseable bool     `json:"parseable"`
	Pages     int      `json:"pages"`
	Producer  string   `json:"producer"`
	Revisions int      `json:"revisions"`
	Findings  []string `json:"findings"`
}

const (
	baseScore       = 0.5
	producerPenalty = 0.2
	pagesPenalty    = 0.3
	revisionPenalty = 0.2
)

// Analyze inspects data. It never fails; an unreadable document is itself the
// strongest finding.
func Analyze(data []byte) *TamperReport {
	report := &TamperReport{
		Score:     baseScore,
		Revisions: bytes.Count(data, []byte("%%EOF")),
		Findings:  []string{"content hash differs from the issued document"},
	}

	pages, producer, err := inspect(data)
	if err != nil {
		report.Score = 1
		report.Findings = append(report.Findings, "document structure cannot be parsed: "+err.Error())
		return report
	}
	report.Parseable = true
	report.Pages = pages
	report.Producer = producer

	if producer != renderer.Producer {
		report.Score += producerPenalty
		report.Findings = append(report.Findings, fmt.Sprintf("document was produced by %q", producer))
	}
	if pages != 1 {
		report.Score += pagesPenalty
		report.Findings = append(report.Findings, fmt.Sprintf("certificates have one page, found %d", pages))
	}
	if report.Revisions > 1 {
		report.Score += revisionPenalty
		report.Findings = append(report.Findings, fmt.Sprintf("document carries %d incremental revisions", report.Revisions))
	}
	report.Score = math.Min(report.Score, 1)
	return report
}

// inspect reads the page count and producer. The reader panics on some
// malformed input, which is reported as an error.
func inspect(data []byte) (pages int, producer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed document: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, "", err
	}
	producer = r.Trailer().Key("Info").Key("Producer").Text()
	return r.NumPage(), producer, nil
}
