package controllers

import (
	"net/http"

	"cadastro/models"
	"cadastro/services"

	"github.com/gin-gonic/gin"
)

func GetEmpresas(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	p := page(c)
	items, total, err := services.ListEmpresas(db, services.EmpresaFiltro{
		Q:        c.Query("q"),
		CNPJ:     c.Query("cnpj"),
		Situacao: c.Query("situacao"),
		Cidade:   c.Query("cidade"),
		Page:     p,
	})
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, listResponse("empresas", items, total, p))
}

func GetEmpresaByID(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	e, err := services.GetEmpresa(db, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, e)
}

func CreateEmpresa(c *gin.Context) {
	var in models.Empresa
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, bindError(err))
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	e, err := services.CreateEmpresa(db, &in)
	if err != nil {
		fail(c, err)
		return
	}
	RespondCreated(c, e)
}

func UpdateEmpresa(c *gin.Context) {
	var in models.Empresa
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, bindError(err))
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	e, err := services.UpdateEmpresa(db, c.Param("id"), &in)
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, e)
}

func DeleteEmpresa(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	if err := services.DeleteEmpresa(db, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
