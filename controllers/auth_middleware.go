package controllers

import (
	"net/http"
	"strings"

	"cadastro/models"
	"cadastro/services"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "auth_user"
const ctxSessionKey = "auth_session"

// Session reúne o emissor de tokens e as opções do cookie de sessão.
type Session struct {
	Tokens       *services.Tokens
	CookieName   string
	CookieSecure bool
}

func SetSessionToContext(s *Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxSessionKey, s)
		c.Next()
	}
}

func sessionInstance(c *gin.Context) *Session {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}

// AuthRequired valida o token (Bearer ou cookie) e coloca o usuário no contexto.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionInstance(c)
		if session == nil {
			RespondError(c, "sessão não configurada", http.StatusInternalServerError)
			return
		}

		token := bearerToken(c)
		if token == "" {
			token, _ = c.Cookie(session.CookieName)
		}
		if token == "" {
			RespondError(c, "autenticação necessária", http.StatusUnauthorized)
			return
		}

		claims, err := session.Tokens.Parse(token)
		if err != nil {
			fail(c, err)
			return
		}

		db, ok := database(c)
		if !ok {
			return
		}
		user, err := services.GetUsuario(db, claims.Subject)
		if err != nil {
			RespondError(c, "usuário não encontrado", http.StatusUnauthorized)
			return
		}
		if !user.Ativo {
			RespondError(c, "usuário inativo", http.StatusForbidden)
			return
		}

		c.Set(ctxUserKey, *user)
		c.Next()
	}
}

// GetUserLogged devolve o usuário carregado por AuthRequired.
func GetUserLogged(c *gin.Context) (models.Usuario, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return models.Usuario{}, false
	}
	user, ok := v.(models.Usuario)
	return user, ok
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) < len("bearer ") || !strings.EqualFold(h[:len("bearer ")], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[len("bearer "):])
}
