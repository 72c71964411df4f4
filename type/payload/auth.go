package payload

type RegisterInstitutionPayload struct {
	Name     string `json:"institution_name" validate:"required,max=200"`
	Type     string `json:"institution_type" validate:"required,oneof=School College University"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Address  string `json:"address"`
	Phone    string `json:"phone" validate:"omitempty,max=15"`
}

type RegisterStudentPayload struct {
	StudentID string `json:"student_id" validate:"required,max=50"`
	Name      string `json:"name" validate:"required,max=200"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone" validate:"omitempty,max=15"`
	Dob       string `json:"dob" validate:"omitempty,max=20"`
}

type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=institution student"`
}
