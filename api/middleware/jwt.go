package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sunthewhat/academic-cert-api/common/util"
	"github.com/sunthewhat/academic-cert-api/type/response"
	"github.com/sunthewhat/academic-cert-api/type/shared"
)

const (
	tokenKey     = "auth"
	principalKey = "principal"
)

// Jwt validates the bearer token and stores the caller as a shared.Principal.
func Jwt(secret []byte) fiber.Handler {
	conf := jwtware.Config{
		SigningKey:  secret,
		TokenLookup: "header:Authorization",
		AuthScheme:  "Bearer",
		ContextKey:  tokenKey,
		Claims:      new(shared.UserClaims),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Warn("JWT validation failure", "error", err, "path", c.Path(), "ip", c.IP())
			return response.SendUnauthorized(c, "JWT validation failure")
		},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals(tokenKey).(*jwt.Token)
			if !ok {
				return response.SendUnauthorized(c, "JWT validation failure")
			}
			claims, _ := token.Claims.(*shared.UserClaims)
			principal, err := util.PrincipalFromClaims(claims)
			if err != nil {
				slog.Warn("JWT claims rejected", "error", err, "path", c.Path())
				return response.SendUnauthorized(c, err.Error())
			}
			SetPrincipal(c, principal)
			return c.Next()
		},
	}
	return jwtware.New(conf)
}
