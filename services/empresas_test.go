package services

import (
	"net/http"
	"testing"

	"cadastro/models"
	"cadastro/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novaEmpresa() *models.Empresa {
	return &models.Empresa{
		RazaoSocial: "Transportes Ltda",
		CNPJ:        ptr("11.222.333/0001-81"),
		Situacao:    "ATIVA",
		Socios: []models.Socio{
			{Nome: "Ana", CPF: "529.982.247-25", Participacao: 60},
			{Nome: "Bruno", Participacao: 40},
		},
		Veiculos: []models.EmpresaVeiculo{{VeiculoDados: models.VeiculoDados{Placa: "XYZ9A88", Modelo: "Actros"}}},
	}
}

func TestCreateEmpresa(t *testing.T) {
	db := newTestDB(t)

	e, err := CreateEmpresa(db, novaEmpresa())
	require.NoError(t, err)
	assert.Equal(t, "11222333000181", *e.CNPJ)
	assert.Equal(t, models.EMPRESA_SITUACAO_ATIVA, e.Situacao)
	require.Len(t, e.Socios, 2)
	assert.Equal(t, "52998224725", e.Socios[0].CPF)
	assert.Equal(t, 1, e.Socios[1].Ordem)
	require.Len(t, e.Veiculos, 1)

	_, err = CreateEmpresa(db, novaEmpresa())
	requireStatus(t, err, http.StatusConflict)

	items, total, err := ListEmpresas(db, EmpresaFiltro{Q: "bruno", CNPJ: "11222333", Page: search.NewPage(0, 0)})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, e.ID, items[0].ID)
}

func TestEmpresaSocioValidation(t *testing.T) {
	db := newTestDB(t)

	in := novaEmpresa()
	in.Socios[0].CPF = "123"
	in.Socios[1].Participacao = 50
	in.Situacao = "falida"
	_, err := CreateEmpresa(db, in)
	requireField(t, err, "socios[0].cpf")
	requireField(t, err, "socios")
	requireField(t, err, "situacao")
}

func TestUpdateEmpresaReplacesChildren(t *testing.T) {
	db := newTestDB(t)
	in := novaEmpresa()
	in.Enderecos = []models.EmpresaEndereco{{EnderecoDados: models.EnderecoDados{Cidade: "Recife"}}}
	in.Telefones = []models.EmpresaTelefone{{TelefoneDados: models.TelefoneDados{Numero: "81 3333-4444"}}}
	e, err := CreateEmpresa(db, in)
	require.NoError(t, err)
	criado := e.CriadoEm

	upd := novaEmpresa()
	upd.NomeFantasia = "Transportes Rápidos"
	upd.Enderecos = []models.EmpresaEndereco{
		{EnderecoDados: models.EnderecoDados{Cidade: "Olinda"}},
		{EnderecoDados: models.EnderecoDados{Cidade: "Paulista"}},
	}
	upd.Telefones = nil
	upd.Socios = []models.Socio{{Nome: "Carla", Participacao: 100}}
	upd.Veiculos = []models.EmpresaVeiculo{{VeiculoDados: models.VeiculoDados{Placa: "ABC1D23"}}}

	got, err := UpdateEmpresa(db, e.ID, upd)
	require.NoError(t, err)

	assert.True(t, got.CriadoEm.Equal(criado))
	assert.Equal(t, "Transportes Rápidos", got.NomeFantasia)
	require.Len(t, got.Enderecos, 2)
	assert.Equal(t, "Olinda", got.Enderecos[0].Cidade)
	assert.Equal(t, "Paulista", got.Enderecos[1].Cidade)
	assert.Empty(t, got.Telefones)
	require.Len(t, got.Socios, 1)
	assert.Equal(t, "Carla", got.Socios[0].Nome)
	require.Len(t, got.Veiculos, 1)
	assert.Equal(t, "ABC1D23", got.Veiculos[0].Placa)

	assert.Equal(t, 2, count(t, db, &models.EmpresaEndereco{}))
	assert.Equal(t, 0, count(t, db, &models.EmpresaTelefone{}))
	assert.Equal(t, 1, count(t, db, &models.Socio{}))
	assert.Equal(t, 1, count(t, db, &models.EmpresaVeiculo{}))
}

func TestDeleteEmpresaCascades(t *testing.T) {
	db := newTestDB(t)
	e, err := CreateEmpresa(db, novaEmpresa())
	require.NoError(t, err)

	require.NoError(t, DeleteEmpresa(db, e.ID))
	assert.Equal(t, 0, count(t, db, &models.Empresa{}))
	assert.Equal(t, 0, count(t, db, &models.Socio{}))
	assert.Equal(t, 0, count(t, db, &models.EmpresaVeiculo{}))

	requireStatus(t, DeleteEmpresa(db, e.ID), http.StatusNotFound)
}
