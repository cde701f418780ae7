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

// InsumoRequest defines the payload for insumo creation/update
type InsumoRequest struct {
	Nombre        string  `json:"nombre"`
	Categoria     *string `json:"categoria"`
	Unidad        *string `json:"unidad"`
	Observaciones *string `json:"observaciones"`
}

// InsumoHandler serves the tenant's insumos
type InsumoHandler struct {
	insumos *repository.RecursoRepo[model.Insumo]
}

// NewInsumoHandler creates the insumo handler
func NewInsumoHandler(insumos *repository.RecursoRepo[model.Insumo]) *InsumoHandler {
	return &InsumoHandler{insumos: insumos}
}

// List returns the tenant's active insumos, newest first
func (h *InsumoHandler) List(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	insumos, err := h.insumos.List(c.Request().Context(), claims.ClienteID)
	if err != nil {
		return respondRepoError(c, err, "Insumo no encontrado")
	}
	return respondData(c, http.StatusOK, insumos)
}

// Create inserts a new active insumo
func (h *InsumoHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	var req InsumoRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid insumo payload", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "solicitud inválida")
	}

	nombre, ok := trimRequired(req.Nombre)
	if !ok {
		return respondError(c, http.StatusBadRequest, "nombre es obligatorio")
	}

	insumo := model.Insumo{
		ClienteID:     claims.ClienteID,
		Nombre:        nombre,
		Categoria:     trimOptional(req.Categoria),
		Unidad:        trimOptional(req.Unidad),
		Observaciones: trimOptional(req.Observaciones),
		Activo:        true,
	}
	if err := h.insumos.Create(c.Request().Context(), &insumo); err != nil {
		return respondRepoError(c, err, "Insumo no encontrado")
	}

	log.Info("Insumo created",
		zap.Uint("insumo_id", insumo.ID),
		zap.Uint("cliente_id", claims.ClienteID),
		zap.String("nombre", insumo.Nombre))
	return respondData(c, http.StatusCreated, insumo)
}

// Update applies a full-field update; id and cliente_id never change
func (h *InsumoHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	id, ok := parseID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "id inválido")
	}

	var req InsumoRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid insumo payload", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "solicitud inválida")
	}

	insumo, err := h.insumos.FindByID(c.Request().Context(), claims.ClienteID, id)
	if err != nil {
		return respondRepoError(c, err, "Insumo no encontrado")
	}

	nombre, ok := trimRequired(req.Nombre)
	if !ok {
		return respondError(c, http.StatusBadRequest, "nombre es obligatorio")
	}

	insumo.Nombre = nombre
	insumo.Categoria = trimOptional(req.Categoria)
	insumo.Unidad = trimOptional(req.Unidad)
	insumo.Observaciones = trimOptional(req.Observaciones)
	if err := h.insumos.Update(c.Request().Context(), insumo); err != nil {
		return respondRepoError(c, err, "Insumo no encontrado")
	}

	log.Info("Insumo updated", zap.Uint("insumo_id", insumo.ID), zap.Uint("cliente_id", claims.ClienteID))
	return respondData(c, http.StatusOK, insumo)
}

// Remove soft-deletes an insumo; deactivating twice is a no-op success
func (h *InsumoHandler) Remove(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	id, ok := parseID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "id inválido")
	}

	insumo, err := h.insumos.FindByID(c.Request().Context(), claims.ClienteID, id)
	if err != nil {
		return respondRepoError(c, err, "Insumo no encontrado")
	}
	if !insumo.Activo {
		return respondData(c, http.StatusOK, echo.Map{"id": insumo.ID, "activo": false})
	}

	if err := h.insumos.Deactivate(c.Request().Context(), claims.ClienteID, id); err != nil {
		return respondRepoError(c, err, "Insumo no encontrado")
	}

	log.Info("Insumo deactivated", zap.Uint("insumo_id", id), zap.Uint("cliente_id", claims.ClienteID))
	return respondData(c, http.StatusOK, echo.Map{"id": insumo.ID, "activo": false})
}
