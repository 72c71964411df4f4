package sheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/academic-cert-api/internal/apperror"
	"github.com/xuri/excelize/v2"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Father Name", "father_name"},
		{"fathername", "father_name"},
		{"FATHER_NAME", "father_name"},
		{"  Father   Name ", "father_name"},
		{"Father-Name", "father_name"},
		{"Maths", "mathematics"},
		{"math", "mathematics"},
		{"Mathematics", "mathematics"},
		{"CS", "computer_science"},
		{"Computer Science", "computer_science"},
		{"Total", "total_marks"},
		{"Date of Birth", "dob"},
		{"Stu ID", "student_id"},
		{"Mobile", "phone"},
		{"House Name", "house_name"},
		{"E-mail", "email"},
		{"%%%", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonical(tt.header))
		})
	}
}

func TestFormatOf(t *testing.T) {
	f, err := FormatOf("students.CSV")
	require.NoError(t, err)
	assert.Equal(t, CSV, f)

	f, err = FormatOf("/tmp/upload/marks.xlsx")
	require.NoError(t, err)
	assert.Equal(t, XLSX, f)

	for _, name := range []string{"marks.xls", "marks.pdf", "marks"} {
		_, err := FormatOf(name)
		assert.ErrorIs(t, err, apperror.ErrFormat, name)
	}
}

func TestParse_CSV(t *testing.T) {
	input := "\xef\xbb\xbfName,Father Name,Maths,Email,Notes\n" +
		"Asha,Ravi,95,asha@example.com,\n" +
		",,,,\n" +
		"Bala,Kumar,88,,late entry\n"

	s, err := Parse("batch.csv", strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "father_name", "mathematics", "email", "notes"}, s.Columns)
	require.Equal(t, 2, s.Len())

	var rows []Row
	for row := range s.Rows() {
		rows = append(rows, row)
	}
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, map[string]string{
		"name":        "Asha",
		"father_name": "Ravi",
		"mathematics": "95",
		"email":       "asha@example.com",
	}, rows[0].Fields)

	assert.Equal(t, 2, rows[1].Index)
	_, hasEmail := rows[1].Get("email")
	assert.False(t, hasEmail)
	notes, _ := rows[1].Get("notes")
	assert.Equal(t, "late entry", notes)
}

func TestParse_RowsAreReiterable(t *testing.T) {
	s, err := Parse("batch.csv", strings.NewReader("name\nA\nB\nC\n"))
	require.NoError(t, err)

	count := func() int {
		n := 0
		for range s.Rows() {
			n++
		}
		return n
	}
	assert.Equal(t, 3, count())
	assert.Equal(t, 3, count())

	// Stopping early must not disturb a later pass.
	for row := range s.Rows() {
		if row.Index == 1 {
			break
		}
	}
	assert.Equal(t, 3, count())
}

func TestParse_ShortRecords(t *testing.T) {
	s, err := Parse("batch.csv", strings.NewReader("name,grade,cgpa\nAsha,A\n"))
	require.NoError(t, err)

	for row := range s.Rows() {
		assert.Equal(t, map[string]string{"name": "Asha", "grade": "A"}, row.Fields)
	}
}

func TestParse_XLSX(t *testing.T) {
	book := excelize.NewFile()
	defer book.Close()

	sheetName := book.GetSheetName(0)
	require.NoError(t, book.SetSheetRow(sheetName, "A1", &[]any{"Student Name", "FATHER_NAME", "Physics", "Stream"}))
	require.NoError(t, book.SetSheetRow(sheetName, "A2", &[]any{"Meena", "Arul", 91, "Science"}))
	require.NoError(t, book.SetSheetRow(sheetName, "A3", &[]any{"Kavin", "Siva", 78, "Commerce"}))

	buf, err := book.WriteToBuffer()
	require.NoError(t, err)

	s, err := ParseBytes("marks.xlsx", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "father_name", "physics", "stream"}, s.Columns)
	require.Equal(t, 2, s.Len())

	var first Row
	for row := range s.Rows() {
		first = row
		break
	}
	assert.Equal(t, "Meena", first.Fields["name"])
	assert.Equal(t, "Arul", first.Fields["father_name"])
	assert.Equal(t, "91", first.Fields["physics"])
}

func TestParse_UnsupportedFormat(t *testing.T) {
	s, err := Parse("marks.txt", strings.NewReader("name\nA\n"))
	assert.Nil(t, s)
	assert.ErrorIs(t, err, apperror.ErrFormat)
}

func TestParse_Empty(t *testing.T) {
	s, err := Parse("empty.csv", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}
