package services

import (
	"net/http"
	"testing"

	"cadastro/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaccaoUniqueName(t *testing.T) {
	db := newTestDB(t)
	mustFaccao(t, db, "Primeira")

	_, err := CreateFaccao(db, &models.Faccao{Nome: " Primeira "})
	requireStatus(t, err, http.StatusConflict)

	_, err = CreateFaccao(db, &models.Faccao{})
	requireField(t, err, "nome")

	items, err := ListFaccoes(db, "prim")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestDeleteFaccaoUnlinksRecords(t *testing.T) {
	db := newTestDB(t)
	f := mustFaccao(t, db, "Removida")

	p, err := CreatePessoa(db, &models.Pessoa{Nome: "Fulano", FaccaoID: ptr(f.ID)}, nil)
	require.NoError(t, err)
	e, err := CreateEntidade(db, &models.Entidade{Nome: "Grupo", FaccaoID: ptr(f.ID)}, nil)
	require.NoError(t, err)

	require.NoError(t, DeleteFaccao(db, f.ID))

	gotP, err := GetPessoa(db, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gotP.FaccaoID)
	gotE, err := GetEntidade(db, e.ID)
	require.NoError(t, err)
	assert.Nil(t, gotE.FaccaoID)
}
