package handler

import (
	"net/http"

	"github.com/alecruz/nacho-backend/internal/middleware"
	"github.com/alecruz/nacho-backend/internal/model"
	"github.com/alecruz/nacho-backend/internal/repository"
	"github.com/alecruz/nacho-backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CampoRequest defines the payload for campo creation/update. Superficie
// binds loosely so a non-numeric value gets its own message instead of a
// generic bind failure.
type CampoRequest struct {
	Nombre        string      `json:"nombre"`
	Superficie    interface{} `json:"superficie"`
	Observaciones *string     `json:"observaciones"`
}

// CampoHandler serves the tenant's campos
type CampoHandler struct {
	campos *repository.CampoRepo
}

// NewCampoHandler creates the campo handler
func NewCampoHandler(campos *repository.CampoRepo) *CampoHandler {
	return &CampoHandler{campos: campos}
}

// validateCampo returns the trimmed name and parsed superficie, or a
// client-facing message when the payload is invalid.
func validateCampo(req *CampoRequest) (nombre string, superficie float64, msg string) {
	nombre, ok := trimRequired(req.Nombre)
	if !ok {
		return "", 0, "nombre es obligatorio"
	}
	if req.Superficie == nil {
		return "", 0, "superficie es obligatoria"
	}
	superficie, ok = req.Superficie.(float64)
	if !ok {
		return "", 0, "superficie debe ser un número"
	}
	if !validSuperficie(superficie) {
		return "", 0, "superficie debe ser mayor a 0"
	}
	return nombre, superficie, ""
}

// List returns the tenant's active campos, newest first
func (h *CampoHandler) List(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	campos, err := h.campos.List(c.Request().Context(), claims.ClienteID)
	if err != nil {
		return respondRepoError(c, err, "Campo no encontrado")
	}
	return respondData(c, http.StatusOK, campos)
}

// Get returns one active campo; inactive campos read as not found
func (h *CampoHandler) Get(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, ok := parseID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "id inválido")
	}

	campo, err := h.campos.FindByID(c.Request().Context(), claims.ClienteID, id)
	if err != nil {
		return respondRepoError(c, err, "Campo no encontrado")
	}
	if !campo.Activo {
		return respondError(c, http.StatusNotFound, "Campo no encontrado")
	}
	return respondData(c, http.StatusOK, campo)
}

// Create inserts a new active campo
func (h *CampoHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	var req CampoRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid campo payload", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "solicitud inválida")
	}

	nombre, superficie, msg := validateCampo(&req)
	if msg != "" {
		return respondError(c, http.StatusBadRequest, msg)
	}

	campo := model.Campo{
		ClienteID:     claims.ClienteID,
		Nombre:        nombre,
		Superficie:    superficie,
		Observaciones: trimOptional(req.Observaciones),
		Activo:        true,
	}
	if err := h.campos.Create(c.Request().Context(), &campo); err != nil {
		return respondRepoError(c, err, "Campo no encontrado")
	}

	log.Info("Campo created",
		zap.Uint("campo_id", campo.ID),
		zap.Uint("cliente_id", claims.ClienteID),
		zap.String("nombre", campo.Nombre))
	return respondData(c, http.StatusCreated, campo)
}

// Update applies a full-field update; id and cliente_id never change
func (h *CampoHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	id, ok := parseID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "id inválido")
	}

	var req CampoRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid campo payload", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "solicitud inválida")
	}

	campo, err := h.campos.FindByID(c.Request().Context(), claims.ClienteID, id)
	if err != nil {
		return respondRepoError(c, err, "Campo no encontrado")
	}

	nombre, superficie, msg := validateCampo(&req)
	if msg != "" {
		return respondError(c, http.StatusBadRequest, msg)
	}

	campo.Nombre = nombre
	campo.Superficie = superficie
	campo.Observaciones = trimOptional(req.Observaciones)
	if err := h.campos.Update(c.Request().Context(), campo); err != nil {
		return respondRepoError(c, err, "Campo no encontrado")
	}

	log.Info("Campo updated", zap.Uint("campo_id", campo.ID), zap.Uint("cliente_id", claims.ClienteID))
	return respondData(c, http.StatusOK, campo)
}

// Remove soft-deletes a campo; deactivating twice is a no-op success
func (h *CampoHandler) Remove(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	id, ok := parseID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "id inválido")
	}

	campo, err := h.campos.FindByID(c.Request().Context(), claims.ClienteID, id)
	if err != nil {
		return respondRepoError(c, err, "Campo no encontrado")
	}
	if !campo.Activo {
		return respondData(c, http.StatusOK, echo.Map{"id": campo.ID, "activo": false})
	}

	if err := h.campos.Deactivate(c.Request().Context(), claims.ClienteID, id); err != nil {
		return respondRepoError(c, err, "Campo no encontrado")
	}

	log.Info("Campo deactivated", zap.Uint("campo_id", id), zap.Uint("cliente_id", claims.ClienteID))
	return respondData(c, http.StatusOK, echo.Map{"id": campo.ID, "activo": false})
}
