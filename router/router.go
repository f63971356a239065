package router

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cadastro/config"
	"cadastro/controllers"
	dbpkg "cadastro/db"
	"cadastro/middleware"
	"cadastro/services"
	"cadastro/storage"
	"cadastro/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"go.uber.org/zap"
)

// Initialize registra middlewares e rotas.
// Três níveis: autenticado (leitura), Authorizer (escrita: admin/operador) e Adminizer (exclusões e usuários).
func Initialize(r *gin.Engine, cfg config.Configuration, database *gorm.DB, store *storage.Store) {
	tools.RegisterValidators()

	session := &controllers.Session{
		Tokens:       services.NewTokens(cfg.Security.JwtSecret, cfg.TokenTTL()),
		CookieName:   cfg.Security.CookieName,
		CookieSecure: cfg.Security.CookieSecure,
	}

	r.Use(middleware.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.Security.CorsOrigin))
	r.Use(Logger())
	r.Use(middleware.ErrorHandler())
	r.Use(dbpkg.SetDBtoContext(database))
	r.Use(storage.SetStoreToContext(store))
	r.Use(controllers.SetSessionToContext(session))

	api := r.Group("/api")

	// Public (no auth)
	api.POST("/auth/login", controllers.Login)
	api.POST("/auth/logout", controllers.Logout)

	// Authenticated routes (token required): leitura
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())
	auth.GET("/auth/me", controllers.Me)
	auth.POST("/auth/refresh", controllers.Refresh)
	auth.PUT("/auth/senha", controllers.ChangePassword)
	auth.GET("/dashboard", controllers.GetDashboard)

	auth.GET("/pessoas", controllers.GetPessoas)
	auth.GET("/pessoas/:id", controllers.GetPessoaByID)
	auth.GET("/entidades", controllers.GetEntidades)
	auth.GET("/entidades/:id", controllers.GetEntidadeByID)
	auth.GET("/empresas", controllers.GetEmpresas)
	auth.GET("/empresas/:id", controllers.GetEmpresaByID)
	auth.GET("/veiculos", controllers.GetVeiculos)
	auth.GET("/veiculos/:id", controllers.GetVeiculoByID)
	auth.GET("/faccoes", controllers.GetFaccoes)
	auth.GET("/faccoes/:id", controllers.GetFaccaoByID)

	// Writer routes (admin ou operador)
	writer := auth.Group("")
	writer.Use(Authorizer())
	writer.POST("/pessoas", controllers.CreatePessoa)
	writer.PUT("/pessoas/:id", controllers.UpdatePessoa)
	writer.POST("/entidades", controllers.CreateEntidade)
	writer.PUT("/entidades/:id", controllers.UpdateEntidade)
	writer.POST("/empresas", controllers.CreateEmpresa)
	writer.PUT("/empresas/:id", controllers.UpdateEmpresa)
	writer.POST("/veiculos", controllers.CreateVeiculo)
	writer.PUT("/veiculos/:id", controllers.UpdateVeiculo)
	writer.POST("/faccoes", controllers.CreateFaccao)
	writer.PUT("/faccoes/:id", controllers.UpdateFaccao)

	// Admin routes
	admin := auth.Group("")
	admin.Use(Adminizer())
	admin.DELETE("/pessoas/:id", controllers.DeletePessoa)
	admin.DELETE("/entidades/:id", controllers.DeleteEntidade)
	admin.DELETE("/empresas/:id", controllers.DeleteEmpresa)
	admin.DELETE("/veiculos/:id", controllers.DeleteVeiculo)
	admin.DELETE("/faccoes/:id", controllers.DeleteFaccao)

	admin.GET("/usuarios", controllers.GetUsuarios)
	admin.GET("/usuarios/:id", controllers.GetUsuarioByID)
	admin.POST("/usuarios", controllers.CreateUsuario)
	admin.PUT("/usuarios/:id", controllers.UpdateUsuario)
	admin.DELETE("/usuarios/:id", controllers.DeleteUsuario)

	// Uploads (apenas autenticado)
	files := r.Group(storage.URL_PREFIX)
	files.Use(controllers.AuthRequired())
	files.Static("/", store.Dir)

	r.NoRoute(publicFiles(cfg.PublicDir))

	zap.L().Info("rotas inicializadas", zap.String("public_dir", cfg.PublicDir))
}

// publicFiles serve o front (SPA) a partir de dir para rotas fora de /api e /uploads.
// Caminhos sem arquivo caem no index.html. Upload inexistente chega aqui pelo
// Static e responde 404.
func publicFiles(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		if dir == "" || strings.HasPrefix(p, "/api/") || p == "/api" ||
			strings.HasPrefix(p, storage.URL_PREFIX+"/") ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			controllers.RespondError(c, "rota não encontrada", http.StatusNotFound)
			return
		}

		file := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+p)))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		controllers.RespondError(c, "rota não encontrada", http.StatusNotFound)
	}
}
