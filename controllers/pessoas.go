package controllers

import (
	"net/http"

	"cadastro/models"
	"cadastro/services"
	"cadastro/storage"

	"github.com/gin-gonic/gin"
)

const UPLOAD_PESSOAS = "pessoas"

func GetPessoas(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	p := page(c)
	items, total, err := services.ListPessoas(db, services.PessoaFiltro{
		Q:        c.Query("q"),
		CPF:      c.Query("cpf"),
		FaccaoID: c.Query("faccaoId"),
		Cidade:   c.Query("cidade"),
		Bairro:   c.Query("bairro"),
		Placa:    c.Query("placa"),
		Page:     p,
	})
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, listResponse("pessoas", items, total, p))
}

func GetPessoaByID(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	p, err := services.GetPessoa(db, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, p)
}

func CreatePessoa(c *gin.Context) {
	var in models.Pessoa
	files, err := bindRecord(c, &in)
	if err != nil {
		fail(c, err)
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	store := storage.Instance(c)
	uploads, err := saveUploads(store, UPLOAD_PESSOAS, files)
	if err != nil {
		fail(c, err)
		return
	}

	p, err := services.CreatePessoa(db, &in, uploads)
	if err != nil {
		store.RemoveFotos(uploads)
		fail(c, err)
		return
	}
	RespondCreated(c, p)
}

func UpdatePessoa(c *gin.Context) {
	var in models.Pessoa
	files, err := bindRecord(c, &in)
	if err != nil {
		fail(c, err)
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	store := storage.Instance(c)
	uploads, err := saveUploads(store, UPLOAD_PESSOAS, files)
	if err != nil {
		fail(c, err)
		return
	}

	p, removed, err := services.UpdatePessoa(db, c.Param("id"), &in, uploads)
	if err != nil {
		store.RemoveFotos(uploads)
		fail(c, err)
		return
	}
	removeUploads(store, removed...)
	RespondSuccess(c, p)
}

func DeletePessoa(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	paths, err := services.DeletePessoa(db, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	removeUploads(storage.Instance(c), paths...)
	c.Status(http.StatusNoContent)
}
