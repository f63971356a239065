package services

import (
	"net/http"
	"testing"

	"cadastro/models"
	"cadastro/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novaPessoa() *models.Pessoa {
	return &models.Pessoa{
		Nome: "  João   da Silva ",
		CPF:  ptr("529.982.247-25"),
		Sexo: "m",
		Enderecos: []models.Endereco{
			{EnderecoDados: models.EnderecoDados{Logradouro: "Rua A", Bairro: "Centro", Cidade: "São Paulo", UF: "sp", CEP: "01001-000"}},
			{},
		},
		Telefones: []models.Telefone{{TelefoneDados: models.TelefoneDados{Numero: "(11) 98765-4321", Tipo: "Celular"}}},
		Emails:    []models.Email{{Endereco: " JOAO@Exemplo.com "}},
		Veiculos:  []models.PessoaVeiculo{{VeiculoDados: models.VeiculoDados{Placa: "abc-1234", Modelo: "Gol"}}},
	}
}

func TestCreatePessoaSanitizesAndSavesChildren(t *testing.T) {
	db := newTestDB(t)

	p, err := CreatePessoa(db, novaPessoa(), []models.FotoDados{{Caminho: "/uploads/pessoas/a.jpg", Mime: "image/jpeg"}})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CriadoEm.IsZero())
	assert.Equal(t, "João da Silva", p.Nome)
	assert.Equal(t, "52998224725", *p.CPF)
	assert.Equal(t, "M", p.Sexo)

	require.Len(t, p.Enderecos, 1, "linha vazia deve ser descartada")
	assert.Equal(t, "SP", p.Enderecos[0].UF)
	assert.Equal(t, "01001000", p.Enderecos[0].CEP)
	assert.Equal(t, p.ID, p.Enderecos[0].PessoaID)

	require.Len(t, p.Telefones, 1)
	assert.Equal(t, "11987654321", p.Telefones[0].Numero)
	assert.Equal(t, "joao@exemplo.com", p.Emails[0].Endereco)
	assert.Equal(t, "ABC1234", p.Veiculos[0].Placa)

	require.Len(t, p.Fotos, 1)
	assert.True(t, p.Fotos[0].Principal)
}

func TestCreatePessoaValidation(t *testing.T) {
	db := newTestDB(t)

	in := novaPessoa()
	in.Nome = ""
	in.CPF = ptr("111.111.111-11")
	in.FaccaoID = ptr("nao-existe")
	_, err := CreatePessoa(db, in, nil)
	requireField(t, err, "nome")
	requireField(t, err, "cpf")
	requireField(t, err, "faccaoId")
	assert.Equal(t, 0, count(t, db, &models.Pessoa{}))
}

func TestCreatePessoaDuplicateCPF(t *testing.T) {
	db := newTestDB(t)

	_, err := CreatePessoa(db, novaPessoa(), nil)
	require.NoError(t, err)

	_, err = CreatePessoa(db, novaPessoa(), nil)
	requireStatus(t, err, http.StatusConflict)
}

func TestCreatePessoaRollsBackOnChildFailure(t *testing.T) {
	db := newTestDB(t)
	foto := []models.FotoDados{{Caminho: "/uploads/pessoas/repetida.jpg"}}

	_, err := CreatePessoa(db, novaPessoa(), foto)
	require.NoError(t, err)

	outra := novaPessoa()
	outra.CPF = nil
	_, err = CreatePessoa(db, outra, foto)
	require.Error(t, err)

	assert.Equal(t, 1, count(t, db, &models.Pessoa{}))
	assert.Equal(t, 1, count(t, db, &models.Endereco{}))
	assert.Equal(t, 1, count(t, db, &models.Telefone{}))
}

func TestUpdatePessoaReplacesChildrenAndFotos(t *testing.T) {
	db := newTestDB(t)

	p, err := CreatePessoa(db, novaPessoa(), []models.FotoDados{
		{Caminho: "/uploads/pessoas/1.jpg"},
		{Caminho: "/uploads/pessoas/2.jpg"},
	})
	require.NoError(t, err)
	criado := p.CriadoEm

	in := novaPessoa()
	in.Enderecos = []models.Endereco{{EnderecoDados: models.EnderecoDados{Cidade: "Campinas"}}}
	in.Telefones = nil
	in.Fotos = []models.PessoaFoto{{FotoDados: models.FotoDados{Caminho: "/uploads/pessoas/2.jpg", Principal: true}}}

	got, removed, err := UpdatePessoa(db, p.ID, in, []models.FotoDados{{Caminho: "/uploads/pessoas/3.jpg"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"/uploads/pessoas/1.jpg"}, removed)
	assert.True(t, got.CriadoEm.Equal(criado))
	require.Len(t, got.Enderecos, 1)
	assert.Equal(t, "Campinas", got.Enderecos[0].Cidade)
	assert.Empty(t, got.Telefones)
	require.Len(t, got.Fotos, 2)
	assert.Equal(t, "/uploads/pessoas/2.jpg", got.Fotos[0].Caminho)
	assert.True(t, got.Fotos[0].Principal)
	assert.False(t, got.Fotos[1].Principal)

	assert.Equal(t, 1, count(t, db, &models.Endereco{}))
	assert.Equal(t, 0, count(t, db, &models.Telefone{}))
	assert.Equal(t, 2, count(t, db, &models.PessoaFoto{}))
}

func TestUpdatePessoaRejectsForeignFoto(t *testing.T) {
	db := newTestDB(t)
	p, err := CreatePessoa(db, novaPessoa(), nil)
	require.NoError(t, err)

	in := novaPessoa()
	in.Fotos = []models.PessoaFoto{{FotoDados: models.FotoDados{Caminho: "/uploads/outro/x.jpg"}}}
	_, _, err = UpdatePessoa(db, p.ID, in, nil)
	requireField(t, err, "fotos[0].caminho")
}

func TestUpdatePessoaSelfVinculo(t *testing.T) {
	db := newTestDB(t)
	p, err := CreatePessoa(db, novaPessoa(), nil)
	require.NoError(t, err)

	in := novaPessoa()
	in.Vinculos = []models.Vinculo{{VinculadoID: ptr(p.ID), Tipo: "irmão"}}
	_, _, err = UpdatePessoa(db, p.ID, in, nil)
	requireField(t, err, "vinculos[0].vinculadoId")
}

func TestDeletePessoaCascadesAndUnlinks(t *testing.T) {
	db := newTestDB(t)

	alvo, err := CreatePessoa(db, novaPessoa(), []models.FotoDados{{Caminho: "/uploads/pessoas/f.jpg"}})
	require.NoError(t, err)

	outra := novaPessoa()
	outra.CPF = nil
	outra.Vinculos = []models.Vinculo{{VinculadoID: ptr(alvo.ID), Tipo: "comparsa"}}
	outraSalva, err := CreatePessoa(db, outra, nil)
	require.NoError(t, err)

	paths, err := DeletePessoa(db, alvo.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/pessoas/f.jpg"}, paths)

	assert.Equal(t, 1, count(t, db, &models.Pessoa{}))
	assert.Equal(t, 0, count(t, db, &models.PessoaFoto{}))

	got, err := GetPessoa(db, outraSalva.ID)
	require.NoError(t, err)
	require.Len(t, got.Vinculos, 1)
	assert.Nil(t, got.Vinculos[0].VinculadoID)

	_, err = GetPessoa(db, alvo.ID)
	requireStatus(t, err, http.StatusNotFound)
}

func TestDeletePessoaKeepsVinculoNameForResave(t *testing.T) {
	db := newTestDB(t)

	alvo, err := CreatePessoa(db, &models.Pessoa{Nome: "Fulano Apagado"}, nil)
	require.NoError(t, err)
	outra, err := CreatePessoa(db, &models.Pessoa{
		Nome:     "Ciclano",
		Vinculos: []models.Vinculo{{VinculadoID: ptr(alvo.ID), Tipo: "irmão"}},
	}, nil)
	require.NoError(t, err)

	_, err = DeletePessoa(db, alvo.ID)
	require.NoError(t, err)

	got, err := GetPessoa(db, outra.ID)
	require.NoError(t, err)
	require.Len(t, got.Vinculos, 1)
	assert.Nil(t, got.Vinculos[0].VinculadoID)
	assert.Equal(t, "Fulano Apagado", got.Vinculos[0].Nome)

	// regravar o cadastro sem mudanças continua válido
	_, _, err = UpdatePessoa(db, got.ID, got, nil)
	require.NoError(t, err)
}

func TestDeletePessoaUnlinksLiderancas(t *testing.T) {
	db := newTestDB(t)

	lider, err := CreatePessoa(db, &models.Pessoa{Nome: "Chefe"}, nil)
	require.NoError(t, err)
	outro, err := CreatePessoa(db, &models.Pessoa{Nome: "Vice"}, nil)
	require.NoError(t, err)
	e, err := CreateEntidade(db, &models.Entidade{
		Nome: "Associação",
		Liderancas: []models.Lideranca{
			{Nome: "Chefe", Cargo: "Presidente", PessoaID: ptr(lider.ID)},
			{Nome: "Vice", Cargo: "Vice", PessoaID: ptr(outro.ID)},
		},
	}, nil)
	require.NoError(t, err)

	_, err = DeletePessoa(db, lider.ID)
	require.NoError(t, err)

	got, err := GetEntidade(db, e.ID)
	require.NoError(t, err)
	require.Len(t, got.Liderancas, 2)
	assert.Equal(t, "Chefe", got.Liderancas[0].Nome)
	assert.Nil(t, got.Liderancas[0].PessoaID)
	require.NotNil(t, got.Liderancas[1].PessoaID)
	assert.Equal(t, outro.ID, *got.Liderancas[1].PessoaID)

	_, _, err = UpdateEntidade(db, got.ID, got, nil)
	require.NoError(t, err)
}

func TestUpdatePessoaRollsBackOnFotoFailure(t *testing.T) {
	db := newTestDB(t)

	_, err := CreatePessoa(db, &models.Pessoa{Nome: "Dona da Foto"}, []models.FotoDados{{Caminho: "/uploads/pessoas/a.jpg"}})
	require.NoError(t, err)
	p, err := CreatePessoa(db, &models.Pessoa{
		Nome:      "Original",
		Enderecos: []models.Endereco{{EnderecoDados: models.EnderecoDados{Cidade: "Recife"}}},
	}, []models.FotoDados{{Caminho: "/uploads/pessoas/b.jpg"}})
	require.NoError(t, err)

	in := &models.Pessoa{
		Nome:      "Alterado",
		Enderecos: []models.Endereco{{EnderecoDados: models.EnderecoDados{Cidade: "Olinda"}}},
		Fotos:     []models.PessoaFoto{{FotoDados: models.FotoDados{Caminho: "/uploads/pessoas/b.jpg"}}},
	}
	_, _, err = UpdatePessoa(db, p.ID, in, []models.FotoDados{{Caminho: "/uploads/pessoas/a.jpg"}})
	require.Error(t, err)

	got, err := GetPessoa(db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Nome)
	require.Len(t, got.Enderecos, 1)
	assert.Equal(t, "Recife", got.Enderecos[0].Cidade)
	require.Len(t, got.Fotos, 1)
	assert.Equal(t, "/uploads/pessoas/b.jpg", got.Fotos[0].Caminho)
	assert.Equal(t, 2, count(t, db, &models.PessoaFoto{}))
}

func TestListPessoasFilters(t *testing.T) {
	db := newTestDB(t)
	faccao := mustFaccao(t, db, "Comando Teste")

	a := novaPessoa()
	a.Nome = "José Antônio"
	a.FaccaoID = ptr(faccao.ID)
	_, err := CreatePessoa(db, a, nil)
	require.NoError(t, err)

	b := novaPessoa()
	b.Nome = "Maria Souza"
	b.CPF = nil
	b.Enderecos = []models.Endereco{{EnderecoDados: models.EnderecoDados{Cidade: "Recife", Bairro: "Boa Viagem"}}}
	b.Veiculos = []models.PessoaVeiculo{{VeiculoDados: models.VeiculoDados{Placa: "BRA2E19"}}}
	_, err = CreatePessoa(db, b, nil)
	require.NoError(t, err)

	page := search.NewPage(0, 0)

	items, total, err := ListPessoas(db, PessoaFiltro{Q: "jose antonio", Page: page})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "José Antônio", items[0].Nome)

	_, total, err = ListPessoas(db, PessoaFiltro{CPF: "529.982", Page: page})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	items, total, err = ListPessoas(db, PessoaFiltro{FaccaoID: faccao.ID, Page: page})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.NotNil(t, items[0].Faccao)
	assert.Equal(t, "Comando Teste", items[0].Faccao.Nome)

	items, total, err = ListPessoas(db, PessoaFiltro{Cidade: "recife", Bairro: "viagem", Placa: "bra-2e19", Page: page})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Maria Souza", items[0].Nome)

	items, total, err = ListPessoas(db, PessoaFiltro{Page: search.NewPage(1, 1)})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Maria Souza", items[0].Nome)
}
