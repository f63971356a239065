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

type VeiculoFiltro struct {
	Q     string
	Placa string
	Marca string
	Cor   string
	Page  search.Page
}

func ListVeiculos(db *gorm.DB, f VeiculoFiltro) ([]models.Veiculo, int, error) {
	var all []models.Veiculo
	if err := db.Order("placa asc").Find(&all).Error; err != nil {
		return nil, 0, fmt.Errorf("list veiculos: %w", err)
	}

	q := search.Parse(f.Q)
	placa := tools.NormalizePlaca(f.Placa)
	items, total := search.Filter(all, f.Page, func(v models.Veiculo) bool {
		if placa != "" && !strings.Contains(v.Placa, placa) {
			return false
		}
		if !search.Contains(v.Marca, f.Marca) || !search.Contains(v.Cor, f.Cor) {
			return false
		}
		return q.Match(v.Placa, v.Marca, v.Modelo, v.Cor, v.Chassi, v.Renavam, v.Proprietario)
	})
	return items, total, nil
}

func GetVeiculo(db *gorm.DB, id string) (*models.Veiculo, error) {
	var v models.Veiculo
	if err := db.Where("id = ?", id).First(&v).Error; err != nil {
		return nil, notFoundOr(err, "veículo não encontrado")
	}
	return &v, nil
}

func CreateVeiculo(db *gorm.DB, in *models.Veiculo) (*models.Veiculo, error) {
	sanitizeVeiculo(in)
	if err := validateVeiculo(db, in, ""); err != nil {
		return nil, err
	}

	in.ID = ""
	in.CriadoEm = time.Time{}
	in.Touch(time.Now())
	if err := db.Create(in).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("já existe veículo com esta placa")
		}
		return nil, fmt.Errorf("insert veiculo: %w", err)
	}
	return in, nil
}

func UpdateVeiculo(db *gorm.DB, id string, in *models.Veiculo) (*models.Veiculo, error) {
	current, err := GetVeiculo(db, id)
	if err != nil {
		return nil, err
	}
	sanitizeVeiculo(in)
	if err := validateVeiculo(db, in, id); err != nil {
		return nil, err
	}

	in.ID = id
	in.CriadoEm = current.CriadoEm
	in.Touch(time.Now())
	if err := db.Save(in).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("já existe veículo com esta placa")
		}
		return nil, fmt.Errorf("update veiculo: %w", err)
	}
	return in, nil
}

func DeleteVeiculo(db *gorm.DB, id string) error {
	if _, err := GetVeiculo(db, id); err != nil {
		return err
	}
	if err := db.Where("id = ?", id).Delete(&models.Veiculo{}).Error; err != nil {
		return fmt.Errorf("delete veiculo: %w", err)
	}
	return nil
}

func sanitizeVeiculo(v *models.Veiculo) {
	v.Placa = tools.NormalizePlaca(v.Placa)
	v.Marca = tools.CollapseSpaces(v.Marca)
	v.Modelo = tools.CollapseSpaces(v.Modelo)
	v.Cor = tools.CollapseSpaces(v.Cor)
	v.Chassi = strings.ToUpper(tools.CollapseSpaces(v.Chassi))
	v.Renavam = tools.OnlyDigits(v.Renavam)
	v.Proprietario = tools.CollapseSpaces(v.Proprietario)
	v.Observacoes = strings.TrimSpace(v.Observacoes)
}

func validateVeiculo(db *gorm.DB, in *models.Veiculo, selfID string) error {
	v := &Validation{}
	if in.Placa == "" {
		v.Add("placa", "placa é obrigatória")
	} else if !tools.IsPlacaValid(in.Placa) {
		v.Add("placa", "placa inválida: %s", in.Placa)
	}
	if in.AnoFabricacao != 0 && in.AnoModelo != 0 && in.AnoModelo < in.AnoFabricacao {
		v.Add("anoModelo", "ano do modelo anterior ao ano de fabricação")
	}
	if err := v.Err(); err != nil {
		return err
	}

	dup, err := taken(db, &models.Veiculo{}, "placa", in.Placa, selfID)
	if err != nil {
		return err
	}
	if dup {
		return Conflict("já existe veículo com esta placa")
	}
	return nil
}
