package controllers

import (
	"net/http"

	"cadastro/models"
	"cadastro/services"

	"github.com/gin-gonic/gin"
)

func GetFaccoes(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	items, err := services.ListFaccoes(db, c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, gin.H{"total": len(items), "faccoes": items})
}

func GetFaccaoByID(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	f, err := services.GetFaccao(db, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, f)
}

func CreateFaccao(c *gin.Context) {
	var in models.Faccao
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, bindError(err))
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	f, err := services.CreateFaccao(db, &in)
	if err != nil {
		fail(c, err)
		return
	}
	RespondCreated(c, f)
}

func UpdateFaccao(c *gin.Context) {
	var in models.Faccao
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, bindError(err))
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	f, err := services.UpdateFaccao(db, c.Param("id"), &in)
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, f)
}

func DeleteFaccao(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	if err := services.DeleteFaccao(db, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
