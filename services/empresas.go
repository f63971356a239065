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

type EmpresaFiltro struct {
	Q        string
	CNPJ     string
	Situacao string
	Cidade   string
	Page     search.Page
}

func preloadEmpresa(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Enderecos", byOrdem).
		Preload("Telefones", byOrdem).
		Preload("Socios", byOrdem).
		Preload("Veiculos", byOrdem)
}

func ListEmpresas(db *gorm.DB, f EmpresaFiltro) ([]models.Empresa, int, error) {
	var all []models.Empresa
	if err := preloadEmpresa(db).Order("razao_social asc").Find(&all).Error; err != nil {
		return nil, 0, fmt.Errorf("list empresas: %w", err)
	}

	q := search.Parse(f.Q)
	cnpj := tools.OnlyDigits(f.CNPJ)
	items, total := search.Filter(all, f.Page, func(e models.Empresa) bool {
		if cnpj != "" && (e.CNPJ == nil || !strings.Contains(*e.CNPJ, cnpj)) {
			return false
		}
		if f.Situacao != "" && !search.Equal(e.Situacao, f.Situacao) {
			return false
		}
		if f.Cidade != "" {
			found := false
			for _, end := range e.Enderecos {
				if search.Contains(end.Cidade, f.Cidade) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return q.Match(empresaSearchFields(e)...)
	})
	return items, total, nil
}

func empresaSearchFields(e models.Empresa) []string {
	fields := []string{e.RazaoSocial, e.NomeFantasia, e.Atividade}
	if e.CNPJ != nil {
		fields = append(fields, *e.CNPJ)
	}
	for _, s := range e.Socios {
		fields = append(fields, s.Nome, s.CPF)
	}
	for _, end := range e.Enderecos {
		fields = append(fields, end.Logradouro, end.Bairro, end.Cidade)
	}
	for _, t := range e.Telefones {
		fields = append(fields, t.Numero)
	}
	for _, v := range e.Veiculos {
		fields = append(fields, v.Placa, v.Modelo)
	}
	return fields
}

func GetEmpresa(db *gorm.DB, id string) (*models.Empresa, error) {
	var e models.Empresa
	if err := preloadEmpresa(db).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, notFoundOr(err, "empresa não encontrada")
	}
	return &e, nil
}

func CreateEmpresa(db *gorm.DB, in *models.Empresa) (*models.Empresa, error) {
	v := &Validation{}
	sanitizeEmpresa(in, v)
	if err := validateEmpresa(db, in, "", v); err != nil {
		return nil, err
	}

	now := time.Now()
	in.ID = ""
	in.CriadoEm = time.Time{}
	in.Touch(now)

	if err := withTx(db, func(tx *gorm.DB) error {
		if err := parentOnly(tx).Create(in).Error; err != nil {
			if isUniqueViolation(err) {
				return Conflict("já existe empresa com este CNPJ")
			}
			return fmt.Errorf("insert empresa: %w", err)
		}
		return saveEmpresaChildren(tx, in, now)
	}); err != nil {
		return nil, err
	}
	return GetEmpresa(db, in.ID)
}

func UpdateEmpresa(db *gorm.DB, id string, in *models.Empresa) (*models.Empresa, error) {
	current, err := GetEmpresa(db, id)
	if err != nil {
		return nil, err
	}

	v := &Validation{}
	sanitizeEmpresa(in, v)
	if err := validateEmpresa(db, in, id, v); err != nil {
		return nil, err
	}

	now := time.Now()
	in.ID = id
	in.CriadoEm = current.CriadoEm
	in.Touch(now)

	if err := withTx(db, func(tx *gorm.DB) error {
		if err := parentOnly(tx).Save(in).Error; err != nil {
			if isUniqueViolation(err) {
				return Conflict("já existe empresa com este CNPJ")
			}
			return fmt.Errorf("update empresa: %w", err)
		}
		return saveEmpresaChildren(tx, in, now)
	}); err != nil {
		return nil, err
	}
	return GetEmpresa(db, id)
}

func DeleteEmpresa(db *gorm.DB, id string) error {
	if _, err := GetEmpresa(db, id); err != nil {
		return err
	}
	return withTx(db, func(tx *gorm.DB) error {
		if err := deleteChildren(tx, "empresa_id", id,
			&models.EmpresaEndereco{}, &models.EmpresaTelefone{}, &models.Socio{}, &models.EmpresaVeiculo{},
		); err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&models.Empresa{}).Error; err != nil {
			return fmt.Errorf("delete empresa: %w", err)
		}
		return nil
	})
}

func saveEmpresaChildren(tx *gorm.DB, e *models.Empresa, now time.Time) error {
	if err := replaceChildren(tx, "empresa_id", e.ID, e.Enderecos, now); err != nil {
		return fmt.Errorf("enderecos: %w", err)
	}
	if err := replaceChildren(tx, "empresa_id", e.ID, e.Telefones, now); err != nil {
		return fmt.Errorf("telefones: %w", err)
	}
	if err := replaceChildren(tx, "empresa_id", e.ID, e.Socios, now); err != nil {
		return fmt.Errorf("socios: %w", err)
	}
	if err := replaceChildren(tx, "empresa_id", e.ID, e.Veiculos, now); err != nil {
		return fmt.Errorf("veiculos: %w", err)
	}
	return nil
}

func sanitizeEmpresa(e *models.Empresa, v *Validation) {
	e.RazaoSocial = tools.CollapseSpaces(e.RazaoSocial)
	e.NomeFantasia = tools.CollapseSpaces(e.NomeFantasia)
	e.CNPJ = tools.OptionalDigits(e.CNPJ)
	e.Situacao = strings.ToLower(strings.TrimSpace(e.Situacao))
	e.Atividade = tools.CollapseSpaces(e.Atividade)
	e.DataAbertura = strings.TrimSpace(e.DataAbertura)
	e.Observacoes = strings.TrimSpace(e.Observacoes)

	e.Enderecos = cleanEnderecos(e.Enderecos, func(x *models.EmpresaEndereco) *models.EnderecoDados { return &x.EnderecoDados }, v, "enderecos")
	e.Telefones = cleanTelefones(e.Telefones, func(x *models.EmpresaTelefone) *models.TelefoneDados { return &x.TelefoneDados }, v, "telefones")
	e.Veiculos = cleanVeiculos(e.Veiculos, func(x *models.EmpresaVeiculo) *models.VeiculoDados { return &x.VeiculoDados }, v, "veiculos")

	socios := make([]models.Socio, 0, len(e.Socios))
	for _, s := range e.Socios {
		s.Nome = tools.CollapseSpaces(s.Nome)
		s.CPF = tools.OnlyDigits(s.CPF)
		s.Qualificacao = tools.CollapseSpaces(s.Qualificacao)
		s.PessoaID = tools.OptionalID(s.PessoaID)
		if s.Nome == "" && s.CPF == "" && s.PessoaID == nil {
			continue
		}
		socios = append(socios, s)
	}
	e.Socios = socios
}

func validateEmpresa(db *gorm.DB, e *models.Empresa, selfID string, v *Validation) error {
	if e.RazaoSocial == "" {
		v.Add("razaoSocial", "razão social é obrigatória")
	}
	if e.CNPJ != nil && !tools.IsCnpjValid(*e.CNPJ) {
		v.Add("cnpj", "CNPJ inválido")
	}
	if !models.IsSituacaoValid(e.Situacao) {
		v.Add("situacao", "situação inválida: %s", e.Situacao)
	}
	if e.DataAbertura != "" && !tools.IsDateValid(e.DataAbertura) {
		v.Add("dataAbertura", "data inválida (use YYYY-MM-DD)")
	}

	var participacao float64
	for i, s := range e.Socios {
		campo := fmt.Sprintf("socios[%d]", i)
		if s.Nome == "" {
			v.Add(campo+".nome", "nome do sócio é obrigatório")
		}
		if s.CPF != "" && !tools.IsCpfValid(s.CPF) {
			v.Add(campo+".cpf", "CPF inválido")
		}
		if s.Participacao < 0 || s.Participacao > 100 {
			v.Add(campo+".participacao", "participação deve estar entre 0 e 100")
		}
		participacao += s.Participacao
		if err := checkPessoa(db, s.PessoaID, v, campo+".pessoaId"); err != nil {
			return err
		}
	}
	if participacao > 100.0001 {
		v.Add("socios", "a soma das participações passa de 100%%")
	}

	if err := v.Err(); err != nil {
		return err
	}
	if e.CNPJ != nil {
		dup, err := taken(db, &models.Empresa{}, "cnpj", *e.CNPJ, selfID)
		if err != nil {
			return err
		}
		if dup {
			return Conflict("já existe empresa com este CNPJ")
		}
	}
	return nil
}
