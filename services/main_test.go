package services

import (
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	dbpkg "cadastro/db"
	"cadastro/models"

	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/require"
)

// newTestDB abre um sqlite novo no diretório temporário do teste, já migrado.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dbpkg.OpenSQLite(filepath.Join(t.TempDir(), "teste.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func requireStatus(t *testing.T, err error, status int) *Error {
	t.Helper()
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e), "esperava *services.Error, veio %T: %v", err, err)
	require.Equal(t, status, e.Status, e.Message)
	return e
}

func requireField(t *testing.T, err error, campo string) {
	t.Helper()
	e := requireStatus(t, err, http.StatusBadRequest)
	fields, ok := e.Details.([]FieldError)
	require.True(t, ok, "details deveria ser []FieldError")
	for _, f := range fields {
		if f.Campo == campo {
			return
		}
	}
	t.Fatalf("campo %q ausente em %+v", campo, fields)
}

func ptr(s string) *string { return &s }

func count(t *testing.T, db *gorm.DB, model any) int {
	t.Helper()
	var n int
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func mustFaccao(t *testing.T, db *gorm.DB, nome string) *models.Faccao {
	t.Helper()
	f, err := CreateFaccao(db, &models.Faccao{Nome: nome})
	require.NoError(t, err)
	return f
}
