package controllers

import (
	"net/http"

	"cadastro/models"
	"cadastro/services"
	"cadastro/storage"

	"github.com/gin-gonic/gin"
)

const UPLOAD_ENTIDADES = "entidades"

func GetEntidades(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	p := page(c)
	items, total, err := services.ListEntidades(db, services.EntidadeFiltro{
		Q:        c.Query("q"),
		Tipo:     c.Query("tipo"),
		FaccaoID: c.Query("faccaoId"),
		Cidade:   c.Query("cidade"),
		Page:     p,
	})
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, listResponse("entidades", items, total, p))
}

func GetEntidadeByID(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	e, err := services.GetEntidade(db, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, e)
}

func CreateEntidade(c *gin.Context) {
	var in models.Entidade
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
	uploads, err := saveUploads(store, UPLOAD_ENTIDADES, files)
	if err != nil {
		fail(c, err)
		return
	}

	e, err := services.CreateEntidade(db, &in, uploads)
	if err != nil {
		store.RemoveFotos(uploads)
		fail(c, err)
		return
	}
	RespondCreated(c, e)
}

func UpdateEntidade(c *gin.Context) {
	var in models.Entidade
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
	uploads, err := saveUploads(store, UPLOAD_ENTIDADES, files)
	if err != nil {
		fail(c, err)
		return
	}

	e, removed, err := services.UpdateEntidade(db, c.Param("id"), &in, uploads)
	if err != nil {
		store.RemoveFotos(uploads)
		fail(c, err)
		return
	}
	removeUploads(store, removed...)
	RespondSuccess(c, e)
}

func DeleteEntidade(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	paths, err := services.DeleteEntidade(db, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	removeUploads(storage.Instance(c), paths...)
	c.Status(http.StatusNoContent)
}
