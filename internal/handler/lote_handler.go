package handler

import (
	"net/http"
	"strconv"

	"github.com/alecruz/nacho-backend/internal/middleware"
	"github.com/alecruz/nacho-backend/internal/model"
	"github.com/alecruz/nacho-backend/internal/repository"
	"github.com/alecruz/nacho-backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// superficieTolerance absorbs floating rounding when comparing the
// allocation sum against the lote's area.
const superficieTolerance = 1e-9

// CultivoLoteRequest is one allocation element in a lote payload
type CultivoLoteRequest struct {
	CultivoID *uint    `json:"cultivo_id"`
	HaCultivo *float64 `json:"ha_cultivo"`
}

// LoteRequest defines the payload for lote creation/update. Cultivos is a
// pointer so an omitted array (leave allocations alone on update) can be
// told apart from an explicit empty one (remove them all). Superficie binds
// loosely so a non-numeric value reaches the validation message.
type LoteRequest struct {
	CampoID       *uint                 `json:"campo_id"`
	Nombre        string                `json:"nombre"`
	Superficie    interface{}           `json:"superficie"`
	Observaciones *string               `json:"observaciones"`
	Cultivos      *[]CultivoLoteRequest `json:"cultivos"`
}

// LoteHandler serves land units and their crop allocations
type LoteHandler struct {
	lotes  *repository.LoteRepo
	campos *repository.CampoRepo
}

// NewLoteHandler creates the lote handler
func NewLoteHandler(lotes *repository.LoteRepo, campos *repository.CampoRepo) *LoteHandler {
	return &LoteHandler{lotes: lotes, campos: campos}
}

// validateCultivosLote checks every allocation element and the area-sum
// invariant against the given superficie.
func validateCultivosLote(cultivos []CultivoLoteRequest, superficie float64) ([]model.LoteCultivo, string) {
	rows := make([]model.LoteCultivo, 0, len(cultivos))
	var total float64
	for _, cu := range cultivos {
		if cu.CultivoID == nil || *cu.CultivoID == 0 {
			return nil, "cultivo_id inválido"
		}
		if cu.HaCultivo == nil || !validSuperficie(*cu.HaCultivo) {
			return nil, "ha_cultivo debe ser un número mayor a 0"
		}
		total += *cu.HaCultivo
		rows = append(rows, model.LoteCultivo{CultivoID: *cu.CultivoID, HaCultivo: *cu.HaCultivo})
	}
	if total > superficie+superficieTolerance {
		return nil, "la suma de ha_cultivo supera la superficie del lote"
	}
	return rows, ""
}

// List returns the tenant's active lotes ascending by id, optionally
// filtered by campo_id
func (h *LoteHandler) List(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	var campoID *uint
	if raw := c.QueryParam("campo_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 {
			return respondError(c, http.StatusBadRequest, "campo_id inválido")
		}
		id := uint(parsed)
		campoID = &id
	}

	lotes, err := h.lotes.List(c.Request().Context(), claims.ClienteID, campoID)
	if err != nil {
		return respondRepoError(c, err, "Lote no encontrado")
	}
	return respondData(c, http.StatusOK, lotes)
}

// Get returns one lote with its allocation set
func (h *LoteHandler) Get(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)

	id, ok := parseID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "id inválido")
	}

	lote, err := h.lotes.FindByID(c.Request().Context(), claims.ClienteID, id)
	if err != nil {
		return respondRepoError(c, err, "Lote no encontrado")
	}
	return respondData(c, http.StatusOK, lote)
}

// Create inserts a lote and its allocations as one atomic unit
func (h *LoteHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	var req LoteRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid lote payload", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "solicitud inválida")
	}

	if req.CampoID == nil || *req.CampoID == 0 {
		return respondError(c, http.StatusBadRequest, "campo_id es obligatorio")
	}
	nombre, ok := trimRequired(req.Nombre)
	if !ok {
		return respondError(c, http.StatusBadRequest, "nombre es obligatorio")
	}
	superficie, ok := req.Superficie.(float64)
	if !ok || !validSuperficie(superficie) {
		return respondError(c, http.StatusBadRequest, "superficie debe ser un número mayor a 0")
	}

	// The campo must exist, be active and belong to the caller's tenant
	campo, err := h.campos.FindByID(c.Request().Context(), claims.ClienteID, *req.CampoID)
	if err != nil || !campo.Activo {
		if err != nil && err != repository.ErrNotFound {
			return respondRepoError(c, err, "Lote no encontrado")
		}
		return respondError(c, http.StatusBadRequest, "campo_id inválido")
	}

	var cultivos []model.LoteCultivo
	if req.Cultivos != nil {
		var msg string
		cultivos, msg = validateCultivosLote(*req.Cultivos, superficie)
		if msg != "" {
			return respondError(c, http.StatusBadRequest, msg)
		}
	}

	lote := model.Lote{
		CampoID:       campo.ID,
		Nombre:        nombre,
		Superficie:    superficie,
		Observaciones: trimOptional(req.Observaciones),
		Activo:        true,
	}
	if err := h.lotes.Create(c.Request().Context(), &lote, cultivos); err != nil {
		return respondRepoError(c, err, "Lote no encontrado")
	}

	created, err := h.lotes.FindByID(c.Request().Context(), claims.ClienteID, lote.ID)
	if err != nil {
		return respondRepoError(c, err, "Lote no encontrado")
	}

	log.Info("Lote created",
		zap.Uint("lote_id", lote.ID),
		zap.Uint("campo_id", campo.ID),
		zap.Uint("cliente_id", claims.ClienteID),
		zap.Int("cultivos", len(cultivos)))
	return respondData(c, http.StatusCreated, created)
}

// Update applies a full-field update. The allocation set has three-way
// semantics: omitted keeps it, empty clears it, non-empty replaces it
// atomically. campo_id and id never change.
func (h *LoteHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	id, ok := parseID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "id inválido")
	}

	var req LoteRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Invalid lote payload", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "solicitud inválida")
	}

	lote, err := h.lotes.FindByID(c.Request().Context(), claims.ClienteID, id)
	if err != nil {
		return respondRepoError(c, err, "Lote no encontrado")
	}

	nombre, ok := trimRequired(req.Nombre)
	if !ok {
		return respondError(c, http.StatusBadRequest, "nombre es obligatorio")
	}
	superficie, ok := req.Superficie.(float64)
	if !ok || !validSuperficie(superficie) {
		return respondError(c, http.StatusBadRequest, "superficie debe ser un número mayor a 0")
	}

	// Area-sum validation runs against the new superficie whenever the
	// allocation set is not omitted
	var cultivos *[]model.LoteCultivo
	if req.Cultivos != nil {
		rows, msg := validateCultivosLote(*req.Cultivos, superficie)
		if msg != "" {
			return respondError(c, http.StatusBadRequest, msg)
		}
		cultivos = &rows
	}

	lote.Nombre = nombre
	lote.Superficie = superficie
	lote.Observaciones = trimOptional(req.Observaciones)
	lote.Cultivos = nil
	if err := h.lotes.Update(c.Request().Context(), lote, cultivos); err != nil {
		return respondRepoError(c, err, "Lote no encontrado")
	}

	updated, err := h.lotes.FindByID(c.Request().Context(), claims.ClienteID, lote.ID)
	if err != nil {
		return respondRepoError(c, err, "Lote no encontrado")
	}

	log.Info("Lote updated", zap.Uint("lote_id", lote.ID), zap.Uint("cliente_id", claims.ClienteID))
	return respondData(c, http.StatusOK, updated)
}

// Remove soft-deletes a lote and returns the now-inactive row
func (h *LoteHandler) Remove(c echo.Context) error {
	log := logger.FromContext(c)
	claims, _ := middleware.ClaimsFrom(c)

	id, ok := parseID(c)
	if !ok {
		return respondError(c, http.StatusBadRequest, "id inválido")
	}

	lote, err := h.lotes.Deactivate(c.Request().Context(), claims.ClienteID, id)
	if err != nil {
		return respondRepoError(c, err, "Lote no encontrado")
	}

	log.Info("Lote deactivated", zap.Uint("lote_id", id), zap.Uint("cliente_id", claims.ClienteID))
	return respondData(c, http.StatusOK, lote)
}
