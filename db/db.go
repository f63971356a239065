package db

import (
	"fmt"
	"os"
	"path/filepath"

	"cadastro/config"
	"cadastro/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"go.uber.org/zap"
)

// Connect abre conexão com o banco (sqlite3 por padrão, postgres opcional).
func Connect(conf config.Configuration) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch conf.Database {
	case "postgres", "postgresql":
		zap.L().Info("utilizando conexão com o postgresql", zap.String("host", conf.DbHost), zap.String("db", conf.DbName))
		path := "host=" + conf.DbHost + " port=" + conf.DbPort
		path += " user=" + conf.DbUser + " dbname=" + conf.DbName
		path += " password=" + conf.DbPass + " sslmode=disable"
		db, err = gorm.Open("postgres", path)
	case "sqlite3", "sqlite":
		zap.L().Info("utilizando conexão com o sqlite3", zap.String("path", conf.DbPath))
		if dir := filepath.Dir(conf.DbPath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		db, err = OpenSQLite(conf.DbPath)
	default:
		return nil, fmt.Errorf("database não suportado: %q", conf.Database)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.LogMode(conf.DbLog)
	return db, nil
}

// OpenSQLite abre o arquivo sqlite com uma única conexão: escritas concorrentes
// ficam serializadas no pool em vez de falhar com "database is locked".
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	db.DB().SetMaxOpenConns(1)
	return db, nil
}

// Migrate cria/atualiza as tabelas de todos os modelos.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Usuario{},
		&models.Faccao{},
		&models.Pessoa{},
		&models.Endereco{},
		&models.Telefone{},
		&models.Email{},
		&models.RedeSocial{},
		&models.Vinculo{},
		&models.PessoaVeiculo{},
		&models.PessoaFoto{},
		&models.Entidade{},
		&models.EntidadeEndereco{},
		&models.EntidadeTelefone{},
		&models.EntidadeFoto{},
		&models.Empresa{},
		&models.EmpresaEndereco{},
		&models.EmpresaTelefone{},
		&models.Socio{},
		&models.EmpresaVeiculo{},
		&models.Veiculo{},
	).Error
	if err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
