package router

import (
	"net/http"

	"cadastro/controllers"

	"github.com/gin-gonic/gin"
)

// Adminizer blocks access when user is not admin.
func Adminizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := controllers.GetUserLogged(c)
		if !ok {
			controllers.RespondError(c, "autenticação necessária", http.StatusUnauthorized)
			return
		}
		if !user.IsAdmin() {
			controllers.RespondError(c, "acesso restrito a administradores", http.StatusForbidden)
			return
		}
		c.Next()
	}
}
