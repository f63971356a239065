package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cadastro/models"
	"cadastro/search"
	"cadastro/tools"

	"github.com/jinzhu/gorm"
)

type EntidadeFiltro struct {
	Q        string
	Tipo     string
	FaccaoID string
	Cidade   string
	Page     search.Page
}

func preloadEntidade(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Faccao").
		Preload("Enderecos", byOrdem).
		Preload("Telefones", byOrdem).
		Preload("Fotos", byOrdem)
}

func ListEntidades(db *gorm.DB, f EntidadeFiltro) ([]models.Entidade, int, error) {
	var all []models.Entidade
	if err := preloadEntidade(db).Order("nome asc").Find(&all).Error; err != nil {
		return nil, 0, fmt.Errorf("list entidades: %w", err)
	}

	q := search.Parse(f.Q)
	items, total := search.Filter(all, f.Page, func(e models.Entidade) bool {
		if f.Tipo != "" && !search.Equal(e.Tipo, f.Tipo) {
			return false
		}
		if f.FaccaoID != "" && (e.FaccaoID == nil || *e.FaccaoID != f.FaccaoID) {
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
		return q.Match(entidadeSearchFields(e)...)
	})
	return items, total, nil
}

func entidadeSearchFields(e models.Entidade) []string {
	fields := []string{e.Nome, e.Sigla, e.Tipo, e.AreaAtuacao, e.Descricao}
	if e.CNPJ != nil {
		fields = append(fields, *e.CNPJ)
	}
	if e.Faccao != nil {
		fields = append(fields, e.Faccao.Nome, e.Faccao.Sigla)
	}
	for _, l := range e.Liderancas {
		fields = append(fields, l.Nome, l.Cargo)
	}
	for _, end := range e.Enderecos {
		fields = append(fields, end.Logradouro, end.Bairro, end.Cidade)
	}
	for _, t := range e.Telefones {
		fields = append(fields, t.Numero)
	}
	return fields
}

func GetEntidade(db *gorm.DB, id string) (*models.Entidade, error) {
	var e models.Entidade
	if err := preloadEntidade(db).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, notFoundOr(err, "entidade não encontrada")
	}
	return &e, nil
}

func CreateEntidade(db *gorm.DB, in *models.Entidade, uploads []models.FotoDados) (*models.Entidade, error) {
	v := &Validation{}
	sanitizeEntidade(in, v)
	fotos, _ := mergeFotos(nil, nil, uploads, v, "fotos")
	in.Fotos = entidadeFotos(fotos)
	if err := validateEntidade(db, in, v); err != nil {
		return nil, err
	}

	now := time.Now()
	in.ID = ""
	in.CriadoEm = time.Time{}
	in.Touch(now)

	if err := withTx(db, func(tx *gorm.DB) error {
		if err := parentOnly(tx).Create(in).Error; err != nil {
			return fmt.Errorf("insert entidade: %w", err)
		}
		return saveEntidadeChildren(tx, in, now)
	}); err != nil {
		return nil, err
	}
	return GetEntidade(db, in.ID)
}

func UpdateEntidade(db *gorm.DB, id string, in *models.Entidade, uploads []models.FotoDados) (*models.Entidade, []string, error) {
	current, err := GetEntidade(db, id)
	if err != nil {
		return nil, nil, err
	}

	v := &Validation{}
	sanitizeEntidade(in, v)
	currentFotos := make([]models.FotoDados, 0, len(current.Fotos))
	for _, f := range current.Fotos {
		currentFotos = append(currentFotos, f.FotoDados)
	}
	submitted := make([]models.FotoDados, 0, len(in.Fotos))
	for _, f := range in.Fotos {
		submitted = append(submitted, f.FotoDados)
	}
	fotos, removed := mergeFotos(currentFotos, submitted, uploads, v, "fotos")
	in.Fotos = entidadeFotos(fotos)
	if err := validateEntidade(db, in, v); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	in.ID = id
	in.CriadoEm = current.CriadoEm
	in.Touch(now)

	if err := withTx(db, func(tx *gorm.DB) error {
		if err := parentOnly(tx).Save(in).Error; err != nil {
			return fmt.Errorf("update entidade: %w", err)
		}
		return saveEntidadeChildren(tx, in, now)
	}); err != nil {
		return nil, nil, err
	}

	e, err := GetEntidade(db, id)
	if err != nil {
		return nil, nil, err
	}
	return e, removed, nil
}

func DeleteEntidade(db *gorm.DB, id string) ([]string, error) {
	current, err := GetEntidade(db, id)
	if err != nil {
		return nil, err
	}

	err = withTx(db, func(tx *gorm.DB) error {
		if err := deleteChildren(tx, "entidade_id", id,
			&models.EntidadeEndereco{}, &models.EntidadeTelefone{}, &models.EntidadeFoto{},
		); err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&models.Entidade{}).Error; err != nil {
			return fmt.Errorf("delete entidade: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(current.Fotos))
	for _, f := range current.Fotos {
		paths = append(paths, f.Caminho)
	}
	return paths, nil
}

func saveEntidadeChildren(tx *gorm.DB, e *models.Entidade, now time.Time) error {
	if err := replaceChildren(tx, "entidade_id", e.ID, e.Enderecos, now); err != nil {
		return fmt.Errorf("enderecos: %w", err)
	}
	if err := replaceChildren(tx, "entidade_id", e.ID, e.Telefones, now); err != nil {
		return fmt.Errorf("telefones: %w", err)
	}
	if err := replaceChildren(tx, "entidade_id", e.ID, e.Fotos, now); err != nil {
		return fmt.Errorf("fotos: %w", err)
	}
	return nil
}

func entidadeFotos(dados []models.FotoDados) []models.EntidadeFoto {
	out := make([]models.EntidadeFoto, 0, len(dados))
	for _, d := range dados {
		out = append(out, models.EntidadeFoto{FotoDados: d})
	}
	return out
}

func sanitizeEntidade(e *models.Entidade, v *Validation) {
	e.Nome = tools.CollapseSpaces(e.Nome)
	e.Sigla = strings.ToUpper(tools.CollapseSpaces(e.Sigla))
	e.Tipo = strings.ToLower(tools.CollapseSpaces(e.Tipo))
	e.CNPJ = tools.OptionalDigits(e.CNPJ)
	e.Descricao = strings.TrimSpace(e.Descricao)
	e.AreaAtuacao = tools.CollapseSpaces(e.AreaAtuacao)
	e.FaccaoID = tools.OptionalID(e.FaccaoID)
	e.Faccao = nil

	e.Enderecos = cleanEnderecos(e.Enderecos, func(x *models.EntidadeEndereco) *models.EnderecoDados { return &x.EnderecoDados }, v, "enderecos")
	e.Telefones = cleanTelefones(e.Telefones, func(x *models.EntidadeTelefone) *models.TelefoneDados { return &x.TelefoneDados }, v, "telefones")

	liderancas := make([]models.Lideranca, 0, len(e.Liderancas))
	for _, l := range e.Liderancas {
		l.Nome = tools.CollapseSpaces(l.Nome)
		l.Cargo = tools.CollapseSpaces(l.Cargo)
		l.PessoaID = tools.OptionalID(l.PessoaID)
		if l.Nome == "" && l.Cargo == "" && l.PessoaID == nil {
			continue
		}
		liderancas = append(liderancas, l)
	}
	e.Liderancas = liderancas
}

func validateEntidade(db *gorm.DB, e *models.Entidade, v *Validation) error {
	if e.Nome == "" {
		v.Add("nome", "nome é obrigatório")
	}
	if e.CNPJ != nil && !tools.IsCnpjValid(*e.CNPJ) {
		v.Add("cnpj", "CNPJ inválido")
	}
	if err := checkFaccao(db, e.FaccaoID, v, "faccaoId"); err != nil {
		return err
	}
	for i, l := range e.Liderancas {
		campo := fmt.Sprintf("liderancas[%d]", i)
		if l.Nome == "" {
			v.Add(campo+".nome", "nome da liderança é obrigatório")
		}
		if err := checkPessoa(db, l.PessoaID, v, campo+".pessoaId"); err != nil {
			return err
		}
	}
	if err := v.Err(); err != nil {
		return err
	}

	b, err := json.Marshal(e.Liderancas)
	if err != nil {
		return fmt.Errorf("encode liderancas: %w", err)
	}
	e.LiderancasJSON = string(b)
	return nil
}

// unlinkLiderancas tira pessoaID das lideranças que apontam para ela. A liderança
// continua com o nome gravado.
func unlinkLiderancas(tx *gorm.DB, pessoaID string) error {
	var entidades []models.Entidade
	if err := tx.Where("liderancas_json LIKE ?", "%"+pessoaID+"%").Find(&entidades).Error; err != nil {
		return fmt.Errorf("load liderancas: %w", err)
	}
	for _, e := range entidades {
		changed := false
		for i, l := range e.Liderancas {
			if l.PessoaID != nil && *l.PessoaID == pessoaID {
				e.Liderancas[i].PessoaID = nil
				changed = true
			}
		}
		if !changed {
			continue
		}
		b, err := json.Marshal(e.Liderancas)
		if err != nil {
			return fmt.Errorf("encode liderancas: %w", err)
		}
		if err := tx.Model(&models.Entidade{}).Where("id = ?", e.ID).
			UpdateColumn("liderancas_json", string(b)).Error; err != nil {
			return fmt.Errorf("unlink liderancas: %w", err)
		}
	}
	return nil
}
