package services

import (
	"net/http"
	"testing"

	"cadastro/models"
	"cadastro/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntidadeLiderancasRoundTrip(t *testing.T) {
	db := newTestDB(t)
	lider, err := CreatePessoa(db, &models.Pessoa{Nome: "Chefe"}, nil)
	require.NoError(t, err)

	in := &models.Entidade{
		Nome:  "Associação Vila Nova",
		Sigla: "avn",
		Tipo:  "Associação",
		Liderancas: []models.Lideranca{
			{Nome: "Chefe", Cargo: "Presidente", PessoaID: ptr(lider.ID)},
			{Nome: " ", Cargo: ""},
		},
		Telefones: []models.EntidadeTelefone{{TelefoneDados: models.TelefoneDados{Numero: "81 3333-4444"}}},
	}
	e, err := CreateEntidade(db, in, []models.FotoDados{{Caminho: "/uploads/entidades/a.png"}})
	require.NoError(t, err)

	assert.Equal(t, "AVN", e.Sigla)
	assert.Equal(t, "associação", e.Tipo)
	require.Len(t, e.Liderancas, 1)
	assert.Equal(t, "Presidente", e.Liderancas[0].Cargo)
	assert.Equal(t, lider.ID, *e.Liderancas[0].PessoaID)
	require.Len(t, e.Fotos, 1)
	assert.Equal(t, "8133334444", e.Telefones[0].Numero)

	items, total, err := ListEntidades(db, EntidadeFiltro{Q: "presidente", Tipo: "ASSOCIACAO", Page: search.NewPage(0, 0)})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items[0].Liderancas, 1)
}

func TestEntidadeLiderancaValidation(t *testing.T) {
	db := newTestDB(t)
	_, err := CreateEntidade(db, &models.Entidade{
		Nome:       "X",
		Liderancas: []models.Lideranca{{Cargo: "Tesoureiro", PessoaID: ptr("nao-existe")}},
	}, nil)
	requireField(t, err, "liderancas[0].nome")
	requireField(t, err, "liderancas[0].pessoaId")
}

func TestUpdateAndDeleteEntidade(t *testing.T) {
	db := newTestDB(t)
	e, err := CreateEntidade(db, &models.Entidade{
		Nome:      "Torcida",
		Enderecos: []models.EntidadeEndereco{{EnderecoDados: models.EnderecoDados{Cidade: "Olinda"}}},
	}, []models.FotoDados{{Caminho: "/uploads/entidades/t.jpg"}})
	require.NoError(t, err)

	got, removed, err := UpdateEntidade(db, e.ID, &models.Entidade{Nome: "Torcida Jovem"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/entidades/t.jpg"}, removed)
	assert.Equal(t, "Torcida Jovem", got.Nome)
	assert.Empty(t, got.Enderecos)
	assert.Empty(t, got.Fotos)
	assert.Empty(t, got.Liderancas)

	_, err = DeleteEntidade(db, e.ID)
	require.NoError(t, err)
	_, err = GetEntidade(db, e.ID)
	requireStatus(t, err, http.StatusNotFound)
}
