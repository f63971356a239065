package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cadastro/config"
	dbpkg "cadastro/db"
	"cadastro/logging"
	"cadastro/models"
	"cadastro/router"
	"cadastro/services"
	"cadastro/storage"
	"cadastro/workers"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	conf   config.Configuration
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "cadastro",
	Short:         "API de cadastro de pessoas, entidades, empresas e veículos",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		conf, err = config.Get(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(conf.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe a API HTTP (padrão quando nenhum comando é informado)",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Cria/atualiza as tabelas do banco",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()
		logger.Info("migração concluída")
		return nil
	},
}

var (
	adminNome  string
	adminEmail string
	adminSenha string
)

var createAdminCmd = &cobra.Command{
	Use:     "create-admin",
	Short:   "Cria um usuário administrador",
	Example: `  cadastro create-admin --nome "Administrador" --email admin@exemplo.com --senha segredo123`,
	RunE:    runCreateAdmin,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "arquivo de configuração (JSON com comentários)")

	createAdminCmd.Flags().StringVar(&adminNome, "nome", "Administrador", "nome do usuário")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "e-mail de login")
	createAdminCmd.Flags().StringVar(&adminSenha, "senha", "", "senha inicial")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("senha")

	rootCmd.AddCommand(serveCmd, migrateCmd, createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

func openDatabase() (*gorm.DB, error) {
	db, err := dbpkg.Connect(conf)
	if err != nil {
		return nil, err
	}
	if err := dbpkg.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	warnDefaultSecret(logger, conf)

	if err := os.MkdirAll(conf.Upload.Dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	store := storage.New(conf.Upload.Dir, conf.Upload.MaxBytes)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	janitor := &workers.UploadJanitor{
		DB:       db,
		Store:    store,
		Interval: conf.JanitorInterval(),
		Grace:    conf.JanitorGrace(),
	}
	janitor.Start(ctx)

	if conf.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	router.Initialize(r, conf, db, store)

	srv := &http.Server{
		Addr:              ":" + conf.ApiPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("cadastro escutando", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func warnDefaultSecret(l *zap.Logger, c config.Configuration) {
	if c.DefaultSecret() {
		l.Warn("jwt_secret padrão em uso: defina security.jwt_secret ou CADASTRO_JWT_SECRET")
	}
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	u, err := services.CreateUsuario(db, services.UsuarioInput{
		Nome:   adminNome,
		Email:  adminEmail,
		Senha:  adminSenha,
		Perfil: models.PERFIL_ADMIN,
	})
	if err != nil {
		var svcErr *services.Error
		if errors.As(err, &svcErr) && svcErr.Details != nil {
			return fmt.Errorf("%s: %v", svcErr.Message, svcErr.Details)
		}
		return err
	}
	logger.Info("administrador criado", zap.String("id", u.ID), zap.String("email", u.Email))
	fmt.Fprintf(cmd.OutOrStdout(), "administrador criado: %s (%s)\n", u.Email, u.ID)
	return nil
}
