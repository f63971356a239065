package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type RefreshResponse struct {
	Token    string    `json:"token"`
	ExpiraEm time.Time `json:"expiraEm"`
}

// Refresh emite um novo token para o usuário já autenticado e regrava o cookie.
// O token antigo continua válido até expirar.
func Refresh(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "autenticação necessária", http.StatusUnauthorized)
		return
	}
	session := sessionInstance(c)
	if session == nil {
		fail(c, errors.New("sessão não configurada"))
		return
	}

	signed, exp, err := session.Tokens.Issue(user)
	if err != nil {
		fail(c, err)
		return
	}
	setSessionCookie(c, session, signed, exp)
	RespondSuccess(c, RefreshResponse{Token: signed, ExpiraEm: exp})
}

func setSessionCookie(c *gin.Context, session *Session, token string, exp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, int(time.Until(exp).Seconds()), "/", "", session.CookieSecure, true)
}
