package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sunthewhat/academic-cert-api/common"
	"github.com/sunthewhat/academic-cert-api/type/shared"
)

const tokenLifetime = time.Hour * 24 * 2

var ErrInvalidClaims = errors.New("token does not carry a subject and role")

func GenerateAuthToken(p shared.Principal) (string, error) {
	return SignAuthToken([]byte(*common.Config.JWTSecret), p, time.Now())
}

// SignAuthToken issues an HS256 token for p valid from now for two days.
func SignAuthToken(secret []byte, p shared.Principal, now time.Time) (string, error) {
	role := string(p.Role)
	claims := &shared.UserClaims{
		SubjectId: &p.ID,
		Role:      &role,
		Email:     &p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secret)
}

// PrincipalFromClaims converts validated token claims into the caller identity.
func PrincipalFromClaims(claims *shared.UserClaims) (shared.Principal, error) {
	if claims == nil || claims.SubjectId == nil || claims.Role == nil {
		return shared.Principal{}, ErrInvalidClaims
	}
	role := shared.Role(*claims.Role)
	if role != shared.RoleInstitution && role != shared.RoleStudent {
		return shared.Principal{}, ErrInvalidClaims
	}
	p := shared.Principal{ID: *claims.SubjectId, Role: role}
	if claims.Email != nil {
		p.Email = *claims.Email
	}
	return p, nil
}

// ParseAuthToken validates tokenString with secret and returns its principal.
func ParseAuthToken(secret []byte, tokenString string) (shared.Principal, error) {
	claims := new(shared.UserClaims)
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return shared.Principal{}, err
	}
	return PrincipalFromClaims(claims)
}
