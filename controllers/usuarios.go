package controllers

import (
	"net/http"

	"cadastro/services"

	"github.com/gin-gonic/gin"
)

func GetUsuarios(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	items, err := services.ListUsuarios(db)
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, gin.H{"total": len(items), "usuarios": items})
}

func GetUsuarioByID(c *gin.Context) {
	db, ok := database(c)
	if !ok {
		return
	}
	u, err := services.GetUsuario(db, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, u)
}

func CreateUsuario(c *gin.Context) {
	var in services.UsuarioInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, bindError(err))
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	u, err := services.CreateUsuario(db, in)
	if err != nil {
		fail(c, err)
		return
	}
	RespondCreated(c, u)
}

func UpdateUsuario(c *gin.Context) {
	actor, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "autenticação necessária", http.StatusUnauthorized)
		return
	}
	var in services.UsuarioInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, bindError(err))
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	u, err := services.UpdateUsuario(db, actor, c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	RespondSuccess(c, u)
}

func DeleteUsuario(c *gin.Context) {
	actor, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "autenticação necessária", http.StatusUnauthorized)
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	if err := services.DeleteUsuario(db, actor, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
