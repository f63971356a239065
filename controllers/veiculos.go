package controllers

import (
	"net/http"

	"cadastro/models"
	"cadastro/services"

	"github.com/gin-gonic/gin"
)

func GetVeiculos(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	p := page(c)
	items, total, err := services.ListVeiculos(db, services.VeiculoFiltro{
		Q:     c.Query("q"),
		Placa: c.Query("placa"),
		Marca: c.Query("marca"),
		Cor:   c.Query("cor"),
		Page:  p,
	})
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, listResponse("veiculos", items, total, p))
}

func GetVeiculoByID(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	v, err := services.GetVeiculo(db, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, v)
}

func CreateVeiculo(c *gin.Context) {
	var in models.Veiculo
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, bindError(err))
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	v, err := services.CreateVeiculo(db, &in)
	if err != nil {
		fail(c, err)
		return
	}
	RespondCreated(c, v)
}

func UpdateVeiculo(c *gin.Context) {
	var in models.Veiculo
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, bindError(err))
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	v, err := services.UpdateVeiculo(db, c.Param("id"), &in)
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, v)
}

func DeleteVeiculo(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	if err := services.DeleteVeiculo(db, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
