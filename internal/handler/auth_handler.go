package handler

import (
	"net/http"
	"time"

	"github.com/alecruz/nacho-backend/internal/middleware"
	"github.com/alecruz/nacho-backend/internal/repository"
	"github.com/alecruz/nacho-backend/pkg/jwtutil"
	"github.com/alecruz/nacho-backend/pkg/logger"
	"github.com/alecruz/nacho-backend/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves login against the externally provisioned credential
// store and exposes the verified claims on /me.
type AuthHandler struct {
	usuarios *repository.UsuarioRepo
	jwt      *jwtutil.JWTUtil
}

// NewAuthHandler creates the authentication handler
func NewAuthHandler(usuarios *repository.UsuarioRepo, jwt *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{usuarios: usuarios, jwt: jwt}
}

// Login verifies credentials and issues a bearer token. Unknown usernames
// and wrong passwords produce the same message so accounts cannot be
// enumerated.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Usuario  string `json:"usuario"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, http.StatusBadRequest, "usuario y password son obligatorios")
	}
	if req.Usuario == "" || req.Password == "" {
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, http.StatusBadRequest, "usuario y password son obligatorios")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.usuarios.FindByUsuario(c.Request().Context(), req.Usuario)
	if err != nil {
		if err == repository.ErrNotFound {
			log.Warn("Login for unknown username", zap.String("usuario", req.Usuario))
			prometheus.RecordAuthError("invalid_credentials")
			return respondError(c, http.StatusUnauthorized, "Credenciales inválidas")
		}
		log.Error("Failed to look up account", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "Error interno del servidor")
	}

	if !user.Activo {
		log.Warn("Login for disabled account", zap.String("usuario", user.Usuario))
		prometheus.RecordAuthError("account_disabled")
		return respondError(c, http.StatusForbidden, "Usuario deshabilitado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("usuario", user.Usuario))
		prometheus.RecordAuthError("invalid_credentials")
		return respondError(c, http.StatusUnauthorized, "Credenciales inválidas")
	}

	token, err := h.jwt.GenerateToken(user.ID, user.ClienteID, user.Rol, user.Usuario)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return respondError(c, http.StatusInternalServerError, "Error interno del servidor")
	}

	log.Info("User logged in",
		zap.String("usuario", user.Usuario),
		zap.Uint("cliente_id", user.ClienteID),
		zap.String("rol", user.Rol))

	return c.JSON(http.StatusOK, echo.Map{
		"ok":      true,
		"message": "Login exitoso",
		"token":   token,
		"user": echo.Map{
			"id":         user.ID,
			"cliente_id": user.ClienteID,
			"rol":        user.Rol,
			"usuario":    user.Usuario,
		},
	})
}

// Me returns the verified claims of the current token
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "Token no proporcionado")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ok": true,
		"user": echo.Map{
			"id":         claims.UserID,
			"cliente_id": claims.ClienteID,
			"rol":        claims.Rol,
			"usuario":    claims.Usuario,
		},
	})
}
