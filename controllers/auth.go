package controllers

import (
	"errors"
	"net/http"
	"time"

	"cadastro/models"
	"cadastro/services"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email string `json:"email" form:"email" binding:"required"`
	Senha string `json:"senha" form:"senha" binding:"required"`
}

type LoginResponse struct {
	Token    string         `json:"token"`
	ExpiraEm time.Time      `json:"expiraEm"`
	Usuario  models.Usuario `json:"usuario"`
}

type ChangePasswordRequest struct {
	SenhaAtual string `json:"senhaAtual" binding:"required"`
	NovaSenha  string `json:"novaSenha" binding:"required"`
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		fail(c, bindError(err))
		return
	}

	db, ok := database(c)
	if !ok {
		return
	}
	session := sessionInstance(c)
	if session == nil {
		fail(c, errors.New("sessão não configurada"))
		return
	}

	user, err := services.Authenticate(db, req.Email, req.Senha)
	if err != nil {
		fail(c, err)
		return
	}
	signed, exp, err := session.Tokens.Issue(*user)
	if err != nil {
		fail(c, err)
		return
	}

	setSessionCookie(c, session, signed, exp)
	RespondSuccess(c, LoginResponse{Token: signed, ExpiraEm: exp, Usuario: *user})
}

func Logout(c *gin.Context) {
	if session := sessionInstance(c); session != nil {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(session.CookieName, "", -1, "/", "", session.CookieSecure, true)
	}
	c.Status(http.StatusNoContent)
}

func Me(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "autenticação necessária", http.StatusUnauthorized)
		return
	}
	RespondSuccess(c, gin.H{"usuario": user})
}

func ChangePassword(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "autenticação necessária", http.StatusUnauthorized)
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	db, ok := database(c)
	if !ok {
		return
	}
	if err := services.ChangePassword(db, user, req.SenhaAtual, req.NovaSenha); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
