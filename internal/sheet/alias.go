package sheet

// Aliases maps a cleaned column name onto its canonical field name.
// Columns that are not listed keep their cleaned name.
var Aliases = map[string]string{
	"stu_id":     "student_id",
	"student_id": "student_id",
	"studentid":  "student_id",
	"reg_no":     "student_id",

	"name":         "name",
	"student_name": "name",

	"father_name": "father_name",
	"fathername":  "father_name",
	"mother_name": "mother_name",
	"mothername":  "mother_name",

	"dob":           "dob",
	"date_of_birth": "dob",
	"dateofbirth":   "dob",

	"email":  "email",
	"e_mail": "email",
	"phone":  "phone",
	"mobile": "phone",

	"school_name": "school_name",
	"schoolname":  "school_name",
	"board":       "board",

	"year_of_passing": "year_of_passing",
	"yearofpassing":   "year_of_passing",
	"passing_year":    "year_of_passing",

	"tamil":                "tamil",
	"english":              "english",
	"maths":                "mathematics",
	"math":                 "mathematics",
	"mathematics":          "mathematics",
	"science":              "science",
	"social":               "social_science",
	"social_science":       "social_science",
	"socialscience":        "social_science",
	"physics":              "physics",
	"chemistry":            "chemistry",
	"computer_science":     "computer_science",
	"computerscience":      "computer_science",
	"cs":                   "computer_science",
	"accountancy":          "accountancy",
	"accounts":             "accountancy",
	"commerce":             "commerce",
	"economics":            "economics",
	"business_maths":       "business_mathematics",
	"business_mathematics": "business_mathematics",

	"total":       "total_marks",
	"total_marks": "total_marks",
	"totalmarks":  "total_marks",
	"percentage":  "percentage",
	"percent":     "percentage",
	"grade":       "grade",

	"college_name":   "college_name",
	"collegename":    "college_name",
	"university":     "university",
	"degree":         "degree",
	"specialization": "specialization",
	"specialisation": "specialization",
	"cgpa":           "cgpa",
	"class":          "class",
	"stream":         "stream",
}
