package middleware

import (
	"net/http"
	"strings"

	"github.com/alecruz/nacho-backend/pkg/jwtutil"
	"github.com/alecruz/nacho-backend/pkg/logger"
	"github.com/alecruz/nacho-backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const claimsContextKey = "user"

// RequireAuth validates the bearer token and stores the claims in the
// request context for downstream handlers.
func RequireAuth(jwt *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "error": "Token no proporcionado"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				log.Warn("Invalid Authorization header format")
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "error": "Formato de token inválido"})
			}

			claims, err := jwt.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid JWT token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "error": "Token inválido o expirado"})
			}

			c.Set(claimsContextKey, claims)
			log.Debug("Request authenticated",
				zap.Uint("user_id", claims.UserID),
				zap.Uint("cliente_id", claims.ClienteID),
				zap.String("rol", claims.Rol))

			return next(c)
		}
	}
}

// RequireRole rejects authenticated requests whose role is outside the
// allow-list. It must run after RequireAuth.
func RequireRole(permitidos ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok || claims.Rol == "" {
				logger.FromContext(c).Warn("Role missing from token claims")
				return c.JSON(http.StatusForbidden, echo.Map{"ok": false, "error": "Rol no disponible"})
			}
			if !IsAuthorized(claims.Rol, permitidos...) {
				logger.FromContext(c).Warn("Insufficient role",
					zap.String("rol", claims.Rol),
					zap.Strings("permitidos", permitidos))
				return c.JSON(http.StatusForbidden, echo.Map{"ok": false, "error": "Sin permisos"})
			}
			return next(c)
		}
	}
}

// IsAuthorized reports whether rol is in the allow-list
func IsAuthorized(rol string, permitidos ...string) bool {
	for _, p := range permitidos {
		if rol == p {
			return true
		}
	}
	return false
}

// ClaimsFrom retrieves the verified claims stored by RequireAuth
func ClaimsFrom(c echo.Context) (*jwtutil.Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*jwtutil.Claims)
	return claims, ok
}
