package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/alecruz/nacho-backend/internal/model"
	"github.com/stretchr/testify/require"
)

func TestCampoCreateDeactivateReuseName(t *testing.T) {
	s := setupServer(t)
	token := s.token(t, 1, model.RolAdmin)

	rec := s.request(t, http.MethodPost, "/campos", token, `{"nombre":"La Esperanza","superficie":120.5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := dataOf(t, rec)
	id := uint(created["id"].(float64))
	require.Equal(t, "La Esperanza", created["nombre"])
	require.Equal(t, 120.5, created["superficie"])
	require.Equal(t, true, created["activo"])

	// same name, different casing, while active
	rec = s.request(t, http.MethodPost, "/campos", token, `{"nombre":"la esperanza","superficie":80}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	conflict := decodeBody(t, rec)
	require.Equal(t, false, conflict["ok"])
	require.Equal(t, "CAMPO_DUPLICADO", conflict["code"])
	require.NotEmpty(t, conflict["message"])

	rec = s.request(t, http.MethodDelete, fmt.Sprintf("/campos/%d", id), token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	removed := dataOf(t, rec)
	require.Equal(t, false, removed["activo"])

	// deactivation frees the name
	rec = s.request(t, http.MethodPost, "/campos", token, `{"nombre":"La Esperanza","superficie":90}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// repeated delete stays a success
	rec = s.request(t, http.MethodDelete, fmt.Sprintf("/campos/%d", id), token, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCampoValidation(t *testing.T) {
	s := setupServer(t)
	token := s.token(t, 1, model.RolAdmin)

	cases := []struct {
		body string
		msg  string
	}{
		{`{"superficie":10}`, "nombre es obligatorio"},
		{`{"nombre":"   ","superficie":10}`, "nombre es obligatorio"},
		{`{"nombre":"Norte"}`, "superficie es obligatoria"},
		{`{"nombre":"Norte","superficie":"mucha"}`, "superficie debe ser un número"},
		{`{"nombre":"Norte","superficie":0}`, "superficie debe ser mayor a 0"},
		{`{"nombre":"Norte","superficie":-5}`, "superficie debe ser mayor a 0"},
	}
	for _, tc := range cases {
		rec := s.request(t, http.MethodPost, "/campos", token, tc.body)
		require.Equal(t, http.StatusBadRequest, rec.Code, tc.body)
		resp := decodeBody(t, rec)
		require.Equal(t, tc.msg, resp["error"], tc.body)
	}
}

func TestCampoTenantIsolation(t *testing.T) {
	s := setupServer(t)
	tokenA := s.token(t, 1, model.RolAdmin)
	tokenB := s.token(t, 2, model.RolAdmin)

	rec := s.request(t, http.MethodPost, "/campos", tokenA, `{"nombre":"Sur","superficie":50}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := uint(dataOf(t, rec)["id"].(float64))

	// the other tenant cannot read, update or delete it
	rec = s.request(t, http.MethodGet, fmt.Sprintf("/campos/%d", id), tokenB, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.request(t, http.MethodPut, fmt.Sprintf("/campos/%d", id), tokenB, `{"nombre":"Robado","superficie":1}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.request(t, http.MethodDelete, fmt.Sprintf("/campos/%d", id), tokenB, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	// and may reuse the same name
	rec = s.request(t, http.MethodPost, "/campos", tokenB, `{"nombre":"Sur","superficie":30}`)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestCampoMutationsRequireAdmin(t *testing.T) {
	s := setupServer(t)
	admin := s.token(t, 1, model.RolAdmin)
	operario := s.token(t, 1, "OPERARIO")

	rec := s.request(t, http.MethodPost, "/campos", admin, `{"nombre":"Oeste","superficie":40}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := uint(dataOf(t, rec)["id"].(float64))

	// reads are open to any authenticated role
	rec = s.request(t, http.MethodGet, "/campos", operario, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.request(t, http.MethodGet, fmt.Sprintf("/campos/%d", id), operario, "")
	require.Equal(t, http.StatusOK, rec.Code)

	for _, req := range []struct{ method, path, body string }{
		{http.MethodPost, "/campos", `{"nombre":"Este","superficie":10}`},
		{http.MethodPut, fmt.Sprintf("/campos/%d", id), `{"nombre":"Este","superficie":10}`},
		{http.MethodDelete, fmt.Sprintf("/campos/%d", id), ""},
	} {
		rec = s.request(t, req.method, req.path, operario, req.body)
		require.Equal(t, http.StatusForbidden, rec.Code)
		resp := decodeBody(t, rec)
		require.Equal(t, "Sin permisos", resp["error"])
	}
}

func TestCampoGetInactiveIsNotFound(t *testing.T) {
	s := setupServer(t)
	token := s.token(t, 1, model.RolAdmin)

	rec := s.request(t, http.MethodPost, "/campos", token, `{"nombre":"Bajo","superficie":15}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := uint(dataOf(t, rec)["id"].(float64))

	rec = s.request(t, http.MethodDelete, fmt.Sprintf("/campos/%d", id), token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.request(t, http.MethodGet, fmt.Sprintf("/campos/%d", id), token, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	// and it no longer shows up in the listing
	rec = s.request(t, http.MethodGet, "/campos", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	list, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Empty(t, list)
}
