package router

import (
	"net/http"

	"cadastro/controllers"

	"github.com/gin-gonic/gin"
)

// Authorizer bloqueia escrita para perfis somente leitura.
func Authorizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := controllers.GetUserLogged(c)
		if !ok {
			controllers.RespondError(c, "autenticação necessária", http.StatusUnauthorized)
			return
		}
		if !user.CanWrite() {
			controllers.RespondError(c, "perfil sem permissão de escrita", http.StatusForbidden)
			return
		}
		c.Next()
	}
}
