package shared

import "github.com/golang-jwt/jwt/v4"

type UserClaims struct {
	SubjectId *uint   `json:"subjectId"`
	Role      *string `json:"role"`
	Email     *string `json:"email"`
	jwt.RegisteredClaims
}
