package repository

import (
	"context"
	"testing"

	"github.com/alecruz/nacho-backend/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, model.Migrate(db))
	return db
}

func strptr(s string) *string { return &s }

func TestCampoLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCampoRepo(db)
	ctx := context.Background()

	campo := model.Campo{ClienteID: 1, Nombre: "Norte", Superficie: 120, Activo: true}
	require.NoError(t, repo.Create(ctx, &campo))
	assert.NotZero(t, campo.ID)

	// visible to the owning tenant
	list, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Norte", list[0].Nombre)

	// invisible to any other tenant
	list, err = repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.FindByID(ctx, 2, campo.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// full-field update keeps tenant and id
	campo.Nombre = "Norte Grande"
	campo.Superficie = 150
	campo.Observaciones = strptr("ampliado")
	require.NoError(t, repo.Update(ctx, &campo))

	got, err := repo.FindByID(ctx, 1, campo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Norte Grande", got.Nombre)
	assert.Equal(t, uint(1), got.ClienteID)

	// deactivate removes it from List
	require.NoError(t, repo.Deactivate(ctx, 1, campo.ID))
	list, err = repo.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err = repo.FindByID(ctx, 1, campo.ID)
	require.NoError(t, err)
	assert.False(t, got.Activo)
}

func TestListOrderNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCultivoRepo(db)
	ctx := context.Background()

	for _, nombre := range []string{"Soja", "Maíz", "Trigo"} {
		require.NoError(t, repo.Create(ctx, &model.Cultivo{ClienteID: 1, Nombre: nombre, Activo: true}))
	}

	list, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Trigo", list[0].Nombre)
	assert.Equal(t, "Soja", list[2].Nombre)
}

func TestDuplicateNameCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewInsumoRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Insumo{ClienteID: 1, Nombre: "Urea", Activo: true}))

	err := repo.Create(ctx, &model.Insumo{ClienteID: 1, Nombre: "UREA", Activo: true})
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "INSUMO_DUPLICADO", dup.Code)

	// same name under another tenant is fine
	require.NoError(t, repo.Create(ctx, &model.Insumo{ClienteID: 2, Nombre: "Urea", Activo: true}))
}

func TestNameReusableAfterDeactivate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParametroRepo(db)
	ctx := context.Background()

	first := model.Parametro{ClienteID: 1, Nombre: "Humedad", Activo: true}
	require.NoError(t, repo.Create(ctx, &first))
	require.NoError(t, repo.Deactivate(ctx, 1, first.ID))

	// the deactivated row no longer blocks the name
	second := model.Parametro{ClienteID: 1, Nombre: "humedad", Activo: true}
	require.NoError(t, repo.Create(ctx, &second))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestDeactivateUnknownOrForeign(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCampoRepo(db)
	ctx := context.Background()

	campo := model.Campo{ClienteID: 1, Nombre: "Sur", Superficie: 40, Activo: true}
	require.NoError(t, repo.Create(ctx, &campo))

	assert.ErrorIs(t, repo.Deactivate(ctx, 1, 999), ErrNotFound)
	assert.ErrorIs(t, repo.Deactivate(ctx, 2, campo.ID), ErrNotFound)
}

func TestUpdateToConflictingName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCultivoRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Cultivo{ClienteID: 1, Nombre: "Soja", Activo: true}))
	girasol := model.Cultivo{ClienteID: 1, Nombre: "Girasol", Activo: true}
	require.NoError(t, repo.Create(ctx, &girasol))

	girasol.Nombre = "soja"
	err := repo.Update(ctx, &girasol)
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "CULTIVO_DUPLICADO", dup.Code)
}

func TestCampoHardDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCampoRepo(db)
	ctx := context.Background()

	campo := model.Campo{ClienteID: 1, Nombre: "Este", Superficie: 10, Activo: true}
	require.NoError(t, repo.Create(ctx, &campo))

	// foreign tenant cannot hard-delete
	assert.ErrorIs(t, repo.HardDelete(ctx, 2, campo.ID), ErrNotFound)

	require.NoError(t, repo.HardDelete(ctx, 1, campo.ID))
	_, err := repo.FindByID(ctx, 1, campo.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
