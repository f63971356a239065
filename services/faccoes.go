package services

import (
	"fmt"
	"strings"
	"time"

	"cadastro/models"
	"cadastro/search"
	"cadastro/tools"

	"github.com/jinzhu/gorm"
)

func ListFaccoes(db *gorm.DB, q string) ([]models.Faccao, error) {
	var all []models.Faccao
	if err := db.Order("nome asc").Find(&all).Error; err != nil {
		return nil, fmt.Errorf("list faccoes: %w", err)
	}
	query := search.Parse(q)
	items, _ := search.Filter(all, search.Page{Limit: len(all)}, func(f models.Faccao) bool {
		return query.Match(f.Nome, f.Sigla, f.Descricao)
	})
	return items, nil
}

func GetFaccao(db *gorm.DB, id string) (*models.Faccao, error) {
	var f models.Faccao
	if err := db.Where("id = ?", id).First(&f).Error; err != nil {
		return nil, notFoundOr(err, "facção não encontrada")
	}
	return &f, nil
}

func CreateFaccao(db *gorm.DB, in *models.Faccao) (*models.Faccao, error) {
	sanitizeFaccao(in)
	if err := validateFaccao(db, in, ""); err != nil {
		return nil, err
	}
	in.ID = ""
	in.CriadoEm = time.Time{}
	in.Touch(time.Now())
	if err := db.Create(in).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("já existe facção com este nome")
		}
		return nil, fmt.Errorf("insert faccao: %w", err)
	}
	return in, nil
}

func UpdateFaccao(db *gorm.DB, id string, in *models.Faccao) (*models.Faccao, error) {
	current, err := GetFaccao(db, id)
	if err != nil {
		return nil, err
	}
	sanitizeFaccao(in)
	if err := validateFaccao(db, in, id); err != nil {
		return nil, err
	}
	in.ID = id
	in.CriadoEm = current.CriadoEm
	in.Touch(time.Now())
	if err := db.Save(in).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("já existe facção com este nome")
		}
		return nil, fmt.Errorf("update faccao: %w", err)
	}
	return in, nil
}

// DeleteFaccao apaga a facção e desliga pessoas e entidades que apontavam para ela.
func DeleteFaccao(db *gorm.DB, id string) error {
	if _, err := GetFaccao(db, id); err != nil {
		return err
	}
	return withTx(db, func(tx *gorm.DB) error {
		for _, model := range []any{&models.Pessoa{}, &models.Entidade{}} {
			if err := tx.Model(model).Where("faccao_id = ?", id).
				UpdateColumn("faccao_id", gorm.Expr("NULL")).Error; err != nil {
				return fmt.Errorf("unlink faccao: %w", err)
			}
		}
		if err := tx.Where("id = ?", id).Delete(&models.Faccao{}).Error; err != nil {
			return fmt.Errorf("delete faccao: %w", err)
		}
		return nil
	})
}

func sanitizeFaccao(f *models.Faccao) {
	f.Nome = tools.CollapseSpaces(f.Nome)
	f.Sigla = strings.ToUpper(tools.CollapseSpaces(f.Sigla))
	f.Descricao = strings.TrimSpace(f.Descricao)
}

func validateFaccao(db *gorm.DB, f *models.Faccao, selfID string) error {
	if f.Nome == "" {
		v := &Validation{}
		v.Add("nome", "nome é obrigatório")
		return v.Err()
	}
	dup, err := taken(db, &models.Faccao{}, "nome", f.Nome, selfID)
	if err != nil {
		return err
	}
	if dup {
		return Conflict("já existe facção com este nome")
	}
	return nil
}
