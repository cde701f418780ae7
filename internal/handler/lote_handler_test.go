package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/alecruz/nacho-backend/internal/model"
	"github.com/stretchr/testify/require"
)

// seedCampoYCultivos inserts an active campo plus two cultivos for the
// tenant, returning their ids.
func (s *testServer) seedCampoYCultivos(t *testing.T, clienteID uint) (campoID, soja, maiz uint) {
	t.Helper()
	campo := model.Campo{ClienteID: clienteID, Nombre: "Base", Superficie: 400, Activo: true}
	require.NoError(t, s.db.Create(&campo).Error)
	c1 := model.Cultivo{ClienteID: clienteID, Nombre: "Soja", Activo: true}
	c2 := model.Cultivo{ClienteID: clienteID, Nombre: "Maíz", Activo: true}
	require.NoError(t, s.db.Create(&c1).Error)
	require.NoError(t, s.db.Create(&c2).Error)
	return campo.ID, c1.ID, c2.ID
}

func cultivosOf(t *testing.T, data map[string]interface{}) []interface{} {
	t.Helper()
	list, ok := data["cultivos"].([]interface{})
	require.True(t, ok, "expected cultivos array, got %v", data["cultivos"])
	return list
}

func TestLoteCreateWithAllocations(t *testing.T) {
	s := setupServer(t)
	token := s.token(t, 1, model.RolAdmin)
	campoID, soja, maiz := s.seedCampoYCultivos(t, 1)

	body := fmt.Sprintf(`{"campo_id":%d,"nombre":"Lote 1","superficie":100,"cultivos":[{"cultivo_id":%d,"ha_cultivo":60},{"cultivo_id":%d,"ha_cultivo":40}]}`, campoID, soja, maiz)
	rec := s.request(t, http.MethodPost, "/lotes", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	data := dataOf(t, rec)
	require.Equal(t, "Lote 1", data["nombre"])
	require.Len(t, cultivosOf(t, data), 2)

	// allocations come back with the cultivo name resolved
	first := cultivosOf(t, data)[0].(map[string]interface{})
	require.NotEmpty(t, first["cultivo_nombre"])
	require.NotZero(t, first["ha_cultivo"])
}

func TestLoteCreateValidation(t *testing.T) {
	s := setupServer(t)
	token := s.token(t, 1, model.RolAdmin)
	campoID, soja, _ := s.seedCampoYCultivos(t, 1)

	cases := []struct {
		body string
		msg  string
	}{
		{`{"nombre":"L","superficie":10}`, "campo_id es obligatorio"},
		{fmt.Sprintf(`{"campo_id":%d,"superficie":10}`, campoID), "nombre es obligatorio"},
		{fmt.Sprintf(`{"campo_id":%d,"nombre":"L"}`, campoID), "superficie debe ser un número mayor a 0"},
		{fmt.Sprintf(`{"campo_id":%d,"nombre":"L","superficie":"diez"}`, campoID), "superficie debe ser un número mayor a 0"},
		{fmt.Sprintf(`{"campo_id":%d,"nombre":"L","superficie":-2}`, campoID), "superficie debe ser un número mayor a 0"},
		{fmt.Sprintf(`{"campo_id":%d,"nombre":"L","superficie":10,"cultivos":[{"ha_cultivo":5}]}`, campoID), "cultivo_id inválido"},
		{fmt.Sprintf(`{"campo_id":%d,"nombre":"L","superficie":10,"cultivos":[{"cultivo_id":%d}]}`, campoID, soja), "ha_cultivo debe ser un número mayor a 0"},
		{fmt.Sprintf(`{"campo_id":%d,"nombre":"L","superficie":10,"cultivos":[{"cultivo_id":%d,"ha_cultivo":0}]}`, campoID, soja), "ha_cultivo debe ser un número mayor a 0"},
		{fmt.Sprintf(`{"campo_id":%d,"nombre":"L","superficie":10,"cultivos":[{"cultivo_id":%d,"ha_cultivo":11}]}`, campoID, soja), "la suma de ha_cultivo supera la superficie del lote"},
		{`{"campo_id":9999,"nombre":"L","superficie":10}`, "campo_id inválido"},
	}
	for _, tc := range cases {
		rec := s.request(t, http.MethodPost, "/lotes", token, tc.body)
		require.Equal(t, http.StatusBadRequest, rec.Code, tc.body)
		resp := decodeBody(t, rec)
		require.Equal(t, tc.msg, resp["error"], tc.body)
	}
}

func TestLoteCreateRejectsForeignOrInactiveCampo(t *testing.T) {
	s := setupServer(t)
	tokenA := s.token(t, 1, model.RolAdmin)
	tokenB := s.token(t, 2, model.RolAdmin)
	campoID, _, _ := s.seedCampoYCultivos(t, 1)

	// another tenant's campo reads as invalid, not as forbidden
	body := fmt.Sprintf(`{"campo_id":%d,"nombre":"Ajeno","superficie":10}`, campoID)
	rec := s.request(t, http.MethodPost, "/lotes", tokenB, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "campo_id inválido", decodeBody(t, rec)["error"])

	// a deactivated campo cannot take new lotes either
	rec = s.request(t, http.MethodDelete, fmt.Sprintf("/campos/%d", campoID), tokenA, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.request(t, http.MethodPost, "/lotes", tokenA, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "campo_id inválido", decodeBody(t, rec)["error"])
}

func TestLoteUpdateAllocationSemantics(t *testing.T) {
	s := setupServer(t)
	token := s.token(t, 1, model.RolAdmin)
	campoID, soja, maiz := s.seedCampoYCultivos(t, 1)

	body := fmt.Sprintf(`{"campo_id":%d,"nombre":"Lote 2","superficie":100,"cultivos":[{"cultivo_id":%d,"ha_cultivo":50}]}`, campoID, soja)
	rec := s.request(t, http.MethodPost, "/lotes", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := uint(dataOf(t, rec)["id"].(float64))

	// omitted cultivos leaves the allocation set untouched
	rec = s.request(t, http.MethodPut, fmt.Sprintf("/lotes/%d", id), token, `{"nombre":"Lote 2 bis","superficie":100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataOf(t, rec)
	require.Equal(t, "Lote 2 bis", data["nombre"])
	require.Len(t, cultivosOf(t, data), 1)

	// a non-empty set replaces it wholesale
	body = fmt.Sprintf(`{"nombre":"Lote 2 bis","superficie":100,"cultivos":[{"cultivo_id":%d,"ha_cultivo":30},{"cultivo_id":%d,"ha_cultivo":70}]}`, soja, maiz)
	rec = s.request(t, http.MethodPut, fmt.Sprintf("/lotes/%d", id), token, body)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, cultivosOf(t, dataOf(t, rec)), 2)

	// shrinking the superficie below the proposed sum is rejected
	body = fmt.Sprintf(`{"nombre":"Lote 2 bis","superficie":50,"cultivos":[{"cultivo_id":%d,"ha_cultivo":60}]}`, soja)
	rec = s.request(t, http.MethodPut, fmt.Sprintf("/lotes/%d", id), token, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "la suma de ha_cultivo supera la superficie del lote", decodeBody(t, rec)["error"])

	// an explicit empty array clears everything
	rec = s.request(t, http.MethodPut, fmt.Sprintf("/lotes/%d", id), token, `{"nombre":"Lote 2 bis","superficie":100,"cultivos":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, cultivosOf(t, dataOf(t, rec)))
}

func TestLoteListFilterByCampo(t *testing.T) {
	s := setupServer(t)
	token := s.token(t, 1, model.RolAdmin)
	campoID, _, _ := s.seedCampoYCultivos(t, 1)

	otro := model.Campo{ClienteID: 1, Nombre: "Otro", Superficie: 200, Activo: true}
	require.NoError(t, s.db.Create(&otro).Error)

	for i, campo := range []uint{campoID, campoID, otro.ID} {
		body := fmt.Sprintf(`{"campo_id":%d,"nombre":"Lote %d","superficie":10}`, campo, i)
		rec := s.request(t, http.MethodPost, "/lotes", token, body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := s.request(t, http.MethodGet, "/lotes", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody(t, rec)["data"].([]interface{}), 3)

	rec = s.request(t, http.MethodGet, fmt.Sprintf("/lotes?campo_id=%d", campoID), token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody(t, rec)["data"].([]interface{}), 2)

	rec = s.request(t, http.MethodGet, "/lotes?campo_id=abc", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "campo_id inválido", decodeBody(t, rec)["error"])
}

func TestLoteRemoveReturnsInactiveRow(t *testing.T) {
	s := setupServer(t)
	token := s.token(t, 1, model.RolAdmin)
	campoID, _, _ := s.seedCampoYCultivos(t, 1)

	body := fmt.Sprintf(`{"campo_id":%d,"nombre":"Para baja","superficie":10}`, campoID)
	rec := s.request(t, http.MethodPost, "/lotes", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := uint(dataOf(t, rec)["id"].(float64))

	rec = s.request(t, http.MethodDelete, fmt.Sprintf("/lotes/%d", id), token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := dataOf(t, rec)
	require.Equal(t, false, data["activo"])
	require.Equal(t, "Para baja", data["nombre"])

	// repeated removal still answers with the row
	rec = s.request(t, http.MethodDelete, fmt.Sprintf("/lotes/%d", id), token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, dataOf(t, rec)["activo"])

	// the name is free again within the campo
	rec = s.request(t, http.MethodPost, "/lotes", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestLoteDuplicateNameWithinCampo(t *testing.T) {
	s := setupServer(t)
	token := s.token(t, 1, model.RolAdmin)
	campoID, _, _ := s.seedCampoYCultivos(t, 1)

	otro := model.Campo{ClienteID: 1, Nombre: "Otro", Superficie: 200, Activo: true}
	require.NoError(t, s.db.Create(&otro).Error)

	body := fmt.Sprintf(`{"campo_id":%d,"nombre":"Norte","superficie":10}`, campoID)
	rec := s.request(t, http.MethodPost, "/lotes", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.request(t, http.MethodPost, "/lotes", token, fmt.Sprintf(`{"campo_id":%d,"nombre":"norte","superficie":5}`, campoID))
	require.Equal(t, http.StatusConflict, rec.Code)
	conflict := decodeBody(t, rec)
	require.Equal(t, "LOTE_DUPLICADO", conflict["code"])

	// same name under a different campo is fine
	rec = s.request(t, http.MethodPost, "/lotes", token, fmt.Sprintf(`{"campo_id":%d,"nombre":"Norte","superficie":5}`, otro.ID))
	require.Equal(t, http.StatusCreated, rec.Code)
}
