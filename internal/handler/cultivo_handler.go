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

// CultivoRequest defines the payload for cultivo creation/update
type CultivoRequest struct {
	Nombre        string  `json:"nombre"`
	Observaciones *string `json:"observaciones"`
}

// CultivoHandler serves the tenant's cultivos
type CultivoHandler struct {
	cultivos *repository.RecursoRepo[model.Cultivo]
}

// NewCultivoHandler creates the cultivo handler
func NewCultivoHandler(cultivos *repository.RecursoRepo[model.Cultivo]) *CultivoHandler {
	return &CultivoHandler{cultivos: cultivos}
}

// List returns the tenant's active cultivos, newest first
func (h *CultivoHandler) List(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	cultivos, err := h.cultivos.List(c.Request().Context(), claims.ClienteID)
	if err != nil {
		return respondRepoError(c, err, "Cultivo no encontrado")
	}
	return respondData(c, http.StatusOK, cultivos)
}

// Create inserts a new active cultivo
func (h *CultivoHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	var req CultivoRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid cultivo payload", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "solicitud inválida")
	}

	nombre, ok := trimRequired(req.Nombre)
	if !ok {
		return respondError(c, http.StatusBadRequest, "nombre es obligatorio")
	}

	cultivo := model.Cultivo{
		ClienteID:     claims.ClienteID,
		Nombre:        nombre,
		Observaciones: trimOptional(req.Observaciones),
		Activo:        true,
	}
	if err := h.cultivos.Create(c.Request().Context(), &cultivo); err != nil {
		return respondRepoError(c, err, "Cultivo no encontrado")
	}

	log.Info("Cultivo created",
		zap.Uint("cultivo_id", cultivo.ID),
		zap.Uint("cliente_id", claims.ClienteID),
		zap.String("nombre", cultivo.Nombre))
	return respondData(c, http.StatusCreated, cultivo)
}

// Update applies a full-field update; id and cliente_id never change
func (h *CultivoHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	id, ok := parseID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "id inválido")
	}

	var req CultivoRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid cultivo payload", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "solicitud inválida")
	}

	cultivo, err := h.cultivos.FindByID(c.Request().Context(), claims.ClienteID, id)
	if err != nil {
		return respondRepoError(c, err, "Cultivo no encontrado")
	}

	nombre, ok := trimRequired(req.Nombre)
	if !ok {
		return respondError(c, http.StatusBadRequest, "nombre es obligatorio")
	}

	cultivo.Nombre = nombre
	cultivo.Observaciones = trimOptional(req.Observaciones)
	if err := h.cultivos.Update(c.Request().Context(), cultivo); err != nil {
		return respondRepoError(c, err, "Cultivo no encontrado")
	}

	log.Info("Cultivo updated", zap.Uint("cultivo_id", cultivo.ID), zap.Uint("cliente_id", claims.ClienteID))
	return respondData(c, http.StatusOK, cultivo)
}

// Remove soft-deletes a cultivo; deactivating twice is a no-op success
func (h *CultivoHandler) Remove(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	id, ok := parseID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "id inválido")
	}

	cultivo, err := h.cultivos.FindByID(c.Request().Context(), claims.ClienteID, id)
	if err != nil {
		return respondRepoError(c, err, "Cultivo no encontrado")
	}
	if !cultivo.Activo {
		return respondData(c, http.StatusOK, echo.Map{"id": cultivo.ID, "activo": false})
	}

	if err := h.cultivos.Deactivate(c.Request().Context(), claims.ClienteID, id); err != nil {
		return respondRepoError(c, err, "Cultivo no encontrado")
	}

	log.Info("Cultivo deactivated", zap.Uint("cultivo_id", id), zap.Uint("cliente_id", claims.ClienteID))
	return respondData(c, http.StatusOK, echo.Map{"id": cultivo.ID, "activo": false})
}
