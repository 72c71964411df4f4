package renderer

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issued = time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)

func plain() *Renderer {
	return &Renderer{}
}

func schoolInput() Input {
	return Input{
		Variant:       SecondaryLeaving,
		CertificateID: "10TH/2024/007/0001",
		Fields: map[string]string{
			"name":        "asha kumar",
			"student_id":  "STU0001",
			"school_name": "Govt Hr Sec School",
			"tamil":       "88",
			"english":     "20",
		},
		IssuedAt: issued,
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		tag     string
		want    Variant
		wantErr bool
	}{
		{tag: "10th", want: SecondaryLeaving},
		{tag: "10TH", want: SecondaryLeaving},
		{tag: "12th", want: HigherSecondary},
		{tag: " degree ", want: Degree},
		{tag: "7th", wantErr: true},
		{tag: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseVariant(tt.tag)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedVariant)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "10TH_2024_007_0001_10th.pdf", Filename("10TH/2024/007/0001", SecondaryLeaving))
	assert.Equal(t, "12TH_2024_007_0001_12th.pdf", Filename("12TH/2024/007/0001", HigherSecondary))
	assert.Equal(t, "DEGREE_2024_007_0001_degree.pdf", Filename("DEGREE/2024/007/0001", Degree))
	assert.Equal(t, "DEGREE_2024_007_0001_qr.png", QRFilename("DEGREE/2024/007/0001"))
	assert.Equal(t, "xyz_2024_007_0001_xyz.pdf", Filename("xyz/2024/007/0001", Variant("XYZ")), "unknown variants fall back to the lowered tag")

	tpl, ok := TemplateFor(Degree)
	require.True(t, ok)
	assert.Equal(t, "DEGREE_2024_007_0001_"+tpl.Suffix+".pdf", Filename("DEGREE/2024/007/0001", Degree))
	_, ok = TemplateFor(Variant("XYZ"))
	assert.False(t, ok)
}

func TestExpand(t *testing.T) {
	fields := map[string]string{"name": "Asha", "blank": "  "}

	assert.Equal(t, "Asha", Expand("{name}", fields))
	assert.Equal(t, "N/A", Expand("{dob}", fields))
	assert.Equal(t, "N/A", Expand("{blank}", fields))
	assert.Equal(t, "0", Expand("{cgpa|0}", fields))
	assert.Equal(t, "STATE BOARD - N/A", Expand("{board|STATE BOARD} - {year_of_passing}", fields))
	assert.Equal(t, "", Expand("{missing|}", fields))
}

func TestRender_Deterministic(t *testing.T) {
	r := New()
	qr, err := NewQREncoder().Encode(VerificationURL("http://localhost:8000", "10TH/2024/007/0001"))
	require.NoError(t, err)

	in := schoolInput()
	in.QR = qr

	first, err := r.Render(in)
	require.NoError(t, err)
	second, err := r.Render(in)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(first.Data, []byte("%PDF-")))
	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, "10TH_2024_007_0001_10th.pdf", first.Filename)
}

func TestRender_AllVariants(t *testing.T) {
	r := New()
	for _, v := range Variants {
		t.Run(string(v), func(t *testing.T) {
			doc, err := r.Render(Input{Variant: v, CertificateID: "X/2024/001/0001", IssuedAt: issued})
			require.NoError(t, err)
			assert.Equal(t, v, doc.Variant)
			assert.NotEmpty(t, doc.Data)
		})
	}
}

func TestRender_UnsupportedVariant(t *testing.T) {
	doc, err := New().Render(Input{Variant: "7th", CertificateID: "7TH/2024/001/0001", IssuedAt: issued})
	assert.ErrorIs(t, err, ErrUnsupportedVariant)
	assert.Nil(t, doc)
}

func TestRender_DifferentIDsDiffer(t *testing.T) {
	r := New()
	a := schoolInput()
	b := schoolInput()
	b.CertificateID = "10TH/2024/007/0002"

	da, err := r.Render(a)
	require.NoError(t, err)
	db, err := r.Render(b)
	require.NoError(t, err)
	assert.NotEqual(t, da.Data, db.Data)
}

func TestRender_SchoolContent(t *testing.T) {
	doc, err := plain().Render(schoolInput())
	require.NoError(t, err)
	body := string(doc.Data)

	assert.Contains(t, body, "(ASHA KUMAR)")
	assert.Contains(t, body, "(Certificate No: 10TH/2024/007/0001)")
	assert.Contains(t, body, "(SOCIAL SCIENCE)")
	assert.Contains(t, body, "(Issue Date: 05-Mar-2024)")
	assert.Contains(t, body, "(F)")
	assert.Contains(t, body, "(TOTAL MARKS : 0)")
}

func TestRender_MissingNameShowsPlaceholder(t *testing.T) {
	in := schoolInput()
	delete(in.Fields, "name")

	doc, err := plain().Render(in)
	require.NoError(t, err)
	assert.Contains(t, string(doc.Data), "(N/A)")
}

func TestRender_StreamSelectsSubjects(t *testing.T) {
	in := Input{
		Variant:       HigherSecondary,
		CertificateID: "12TH/2024/007/0001",
		Fields:        map[string]string{"name": "Ravi", "stream": "Commerce"},
		IssuedAt:      issued,
	}

	doc, err := plain().Render(in)
	require.NoError(t, err)
	body := string(doc.Data)
	assert.Contains(t, body, "(ACCOUNTANCY)")
	assert.Contains(t, body, "(COMMERCE)")
	assert.NotContains(t, body, "(PHYSICS)")

	in.Fields["stream"] = ""
	doc, err = plain().Render(in)
	require.NoError(t, err)
	assert.Contains(t, string(doc.Data), "(PHYSICS)")
	assert.Contains(t, string(doc.Data), "(SCIENCE)")
}

func TestRender_DegreeContent(t *testing.T) {
	doc, err := plain().Render(Input{
		Variant:       Degree,
		CertificateID: "DEGREE/2024/003/0001",
		Fields: map[string]string{
			"name":           "Meena",
			"university":     "anna university",
			"degree":         "Bachelor of Engineering",
			"specialization": "Civil Engineering",
		},
		IssuedAt: issued,
	})
	require.NoError(t, err)
	body := string(doc.Data)

	assert.Contains(t, body, "(ANNA UNIVERSITY)")
	assert.Contains(t, body, "(MEENA)")
	assert.Contains(t, body, "(in Civil Engineering)")
	assert.Contains(t, body, "(CGPA: 0 / 10.00)")
	assert.Contains(t, body, "(Date of Issue: 05 March 2024)")
}

func TestRender_UnreadableQRIsOmitted(t *testing.T) {
	r := New()
	without := schoolInput()
	withBad := schoolInput()
	withBad.QR = []byte("definitely not a png")

	a, err := r.Render(without)
	require.NoError(t, err)
	b, err := r.Render(withBad)
	require.NoError(t, err)
	assert.Equal(t, a.Data, b.Data)
}

func TestRender_QRIsEmbedded(t *testing.T) {
	r := New()
	qr, err := NewQREncoder().Encode("http://localhost:8000/verify/10TH/2024/007/0001")
	require.NoError(t, err)

	without := schoolInput()
	with := schoolInput()
	with.QR = qr

	a, err := r.Render(without)
	require.NoError(t, err)
	b, err := r.Render(with)
	require.NoError(t, err)
	assert.NotEqual(t, a.Data, b.Data)
	assert.Contains(t, string(b.Data), "/Subtype /Image")
}
