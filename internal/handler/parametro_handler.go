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

// ParametroRequest defines the payload for parametro creation/update
type ParametroRequest struct {
	Nombre        string  `json:"nombre"`
	Observaciones *string `json:"observaciones"`
}

// ParametroHandler serves the tenant's parametros
type ParametroHandler struct {
	parametros *repository.RecursoRepo[model.Parametro]
}

// NewParametroHandler creates the parametro handler
func NewParametroHandler(parametros *repository.RecursoRepo[model.Parametro]) *ParametroHandler {
	return &ParametroHandler{parametros: parametros}
}

// List returns the tenant's active parametros, newest first
func (h *ParametroHandler) List(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	parametros, err := h.parametros.List(c.Request().Context(), claims.ClienteID)
	if err != nil {
		return respondRepoError(c, err, "Parámetro no encontrado")
	}
	return respondData(c, http.StatusOK, parametros)
}

// Create inserts a new active parametro
func (h *ParametroHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	var req ParametroRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid parametro payload", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "solicitud inválida")
	}

	nombre, ok := trimRequired(req.Nombre)
	if !ok {
		return respondError(c, http.StatusBadRequest, "nombre es obligatorio")
	}

	parametro := model.Parametro{
		ClienteID:     claims.ClienteID,
		Nombre:        nombre,
		Observaciones: trimOptional(req.Observaciones),
		Activo:        true,
	}
	if err := h.parametros.Create(c.Request().Context(), &parametro); err != nil {
		return respondRepoError(c, err, "Parámetro no encontrado")
	}

	log.Info("Parametro created",
		zap.Uint("parametro_id", parametro.ID),
		zap.Uint("cliente_id", claims.ClienteID),
		zap.String("nombre", parametro.Nombre))
	return respondData(c, http.StatusCreated, parametro)
}

// Update applies a full-field update; id and cliente_id never change
func (h *ParametroHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	id, ok := parseID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "id inválido")
	}

	var req ParametroRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid parametro payload", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "solicitud inválida")
	}

	parametro, err := h.parametros.FindByID(c.Request().Context(), claims.ClienteID, id)
	if err != nil {
		return respondRepoError(c, err, "Parámetro no encontrado")
	}

	nombre, ok := trimRequired(req.Nombre)
	if !ok {
		return respondError(c, http.StatusBadRequest, "nombre es obligatorio")
	}

	parametro.Nombre = nombre
	parametro.Observaciones = trimOptional(req.Observaciones)
	if err := h.parametros.Update(c.Request().Context(), parametro); err != nil {
		return respondRepoError(c, err, "Parámetro no encontrado")
	}

	log.Info("Parametro updated", zap.Uint("parametro_id", parametro.ID), zap.Uint("cliente_id", claims.ClienteID))
	return respondData(c, http.StatusOK, parametro)
}

// Remove soft-deletes a parametro; deactivating twice is a no-op success
func (h *ParametroHandler) Remove(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	id, ok := parseID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "id inválido")
	}

	parametro, err := h.parametros.FindByID(c.Request().Context(), claims.ClienteID, id)
	if err != nil {
		return respondRepoError(c, err, "Parámetro no encontrado")
	}
	if !parametro.Activo {
		return respondData(c, http.StatusOK, echo.Map{"id": parametro.ID, "activo": false})
	}

	if err := h.parametros.Deactivate(c.Request().Context(), claims.ClienteID, id); err != nil {
		return respondRepoError(c, err, "Parámetro no encontrado")
	}

	log.Info("Parametro deactivated", zap.Uint("parametro_id", id), zap.Uint("cliente_id", claims.ClienteID))
	return respondData(c, http.StatusOK, echo.Map{"id": parametro.ID, "activo": false})
}
