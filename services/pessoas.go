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

// PessoaFiltro são os filtros da tela de consulta de pessoas.
type PessoaFiltro struct {
	Q        string
	CPF      string
	FaccaoID string
	Cidade   string
	Bairro   string
	Placa    string
	Page     search.Page
}

func preloadPessoa(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Faccao").
		Preload("Enderecos", byOrdem).
		Preload("Telefones", byOrdem).
		Preload("Emails", byOrdem).
		Preload("RedesSociais", byOrdem).
		Preload("Vinculos", byOrdem).
		Preload("Veiculos", byOrdem).
		Preload("Fotos", byOrdem)
}

// ListPessoas carrega as pessoas e filtra em memória.
func ListPessoas(db *gorm.DB, f PessoaFiltro) ([]models.Pessoa, int, error) {
	var all []models.Pessoa
	err := db.
		Preload("Faccao").
		Preload("Enderecos", byOrdem).
		Preload("Telefones", byOrdem).
		Preload("Veiculos", byOrdem).
		Preload("Fotos", byOrdem).
		Order("nome asc").
		Find(&all).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list pessoas: %w", err)
	}

	q := search.Parse(f.Q)
	cpf := tools.OnlyDigits(f.CPF)
	placa := tools.NormalizePlaca(f.Placa)

	items, total := search.Filter(all, f.Page, func(p models.Pessoa) bool {
		if cpf != "" && (p.CPF == nil || !strings.Contains(*p.CPF, cpf)) {
			return false
		}
		if f.FaccaoID != "" && (p.FaccaoID == nil || *p.FaccaoID != f.FaccaoID) {
			return false
		}
		if f.Cidade != "" || f.Bairro != "" {
			found := false
			for _, e := range p.Enderecos {
				if search.Contains(e.Cidade, f.Cidade) && search.Contains(e.Bairro, f.Bairro) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		if placa != "" {
			found := false
			for _, v := range p.Veiculos {
				if strings.Contains(v.Placa, placa) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return q.Match(pessoaSearchFields(p)...)
	})
	return items, total, nil
}

func pessoaSearchFields(p models.Pessoa) []string {
	fields := []string{p.Nome, p.Alcunha, p.RG, p.NomeMae, p.NomePai, p.Naturalidade}
	if p.CPF != nil {
		fields = append(fields, *p.CPF)
	}
	if p.Faccao != nil {
		fields = append(fields, p.Faccao.Nome, p.Faccao.Sigla)
	}
	for _, e := range p.Enderecos {
		fields = append(fields, e.Logradouro, e.Bairro, e.Cidade)
	}
	for _, t := range p.Telefones {
		fields = append(fields, t.Numero)
	}
	for _, v := range p.Veiculos {
		fields = append(fields, v.Placa, v.Modelo)
	}
	return fields
}

func GetPessoa(db *gorm.DB, id string) (*models.Pessoa, error) {
	var p models.Pessoa
	if err := preloadPessoa(db).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFoundOr(err, "pessoa não encontrada")
	}
	return &p, nil
}

// CreatePessoa grava a pessoa e todas as coleções filhas numa única transação.
// uploads são as fotos já gravadas em disco pelo controller.
func CreatePessoa(db *gorm.DB, in *models.Pessoa, uploads []models.FotoDados) (*models.Pessoa, error) {
	v := &Validation{}
	sanitizePessoa(in, v)
	fotos, _ := mergeFotos(nil, nil, uploads, v, "fotos")
	in.Fotos = pessoaFotos(fotos)
	if err := validatePessoa(db, in, "", v); err != nil {
		return nil, err
	}

	now := time.Now()
	in.ID = ""
	in.CriadoEm = time.Time{}
	in.Touch(now)

	if err := withTx(db, func(tx *gorm.DB) error {
		if err := parentOnly(tx).Create(in).Error; err != nil {
			if isUniqueViolation(err) {
				return Conflict("já existe pessoa com este CPF")
			}
			return fmt.Errorf("insert pessoa: %w", err)
		}
		return savePessoaChildren(tx, in, now)
	}); err != nil {
		return nil, err
	}
	return GetPessoa(db, in.ID)
}

// UpdatePessoa substitui os dados e todas as coleções filhas da pessoa.
// Devolve os caminhos de fotos que deixaram de ser usados.
func UpdatePessoa(db *gorm.DB, id string, in *models.Pessoa, uploads []models.FotoDados) (*models.Pessoa, []string, error) {
	current, err := GetPessoa(db, id)
	if err != nil {
		return nil, nil, err
	}

	v := &Validation{}
	sanitizePessoa(in, v)
	currentFotos := make([]models.FotoDados, 0, len(current.Fotos))
	for _, f := range current.Fotos {
		currentFotos = append(currentFotos, f.FotoDados)
	}
	submitted := make([]models.FotoDados, 0, len(in.Fotos))
	for _, f := range in.Fotos {
		submitted = append(submitted, f.FotoDados)
	}
	fotos, removed := mergeFotos(currentFotos, submitted, uploads, v, "fotos")
	in.Fotos = pessoaFotos(fotos)
	if err := validatePessoa(db, in, id, v); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	in.ID = id
	in.CriadoEm = current.CriadoEm
	in.Touch(now)

	if err := withTx(db, func(tx *gorm.DB) error {
		if err := parentOnly(tx).Save(in).Error; err != nil {
			if isUniqueViolation(err) {
				return Conflict("já existe pessoa com este CPF")
			}
			return fmt.Errorf("update pessoa: %w", err)
		}
		return savePessoaChildren(tx, in, now)
	}); err != nil {
		return nil, nil, err
	}

	p, err := GetPessoa(db, id)
	if err != nil {
		return nil, nil, err
	}
	return p, removed, nil
}

// DeletePessoa apaga a pessoa e os filhos e solta as referências de outros cadastros.
// Devolve os caminhos das fotos apagadas.
func DeletePessoa(db *gorm.DB, id string) ([]string, error) {
	current, err := GetPessoa(db, id)
	if err != nil {
		return nil, err
	}

	err = withTx(db, func(tx *gorm.DB) error {
		if err := deleteChildren(tx, "pessoa_id", id,
			&models.Endereco{}, &models.Telefone{}, &models.Email{}, &models.RedeSocial{},
			&models.Vinculo{}, &models.PessoaVeiculo{}, &models.PessoaFoto{},
		); err != nil {
			return err
		}
		// vínculo sem nome herda o nome da pessoa apagada
		if err := tx.Model(&models.Vinculo{}).Where("vinculado_id = ? AND (nome IS NULL OR nome = '')", id).
			UpdateColumn("nome", current.Nome).Error; err != nil {
			return fmt.Errorf("name vinculos: %w", err)
		}
		if err := tx.Model(&models.Vinculo{}).Where("vinculado_id = ?", id).
			UpdateColumn("vinculado_id", gorm.Expr("NULL")).Error; err != nil {
			return fmt.Errorf("unlink vinculos: %w", err)
		}
		if err := unlinkLiderancas(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Socio{}).Where("pessoa_id = ?", id).
			UpdateColumn("pessoa_id", gorm.Expr("NULL")).Error; err != nil {
			return fmt.Errorf("unlink socios: %w", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Pessoa{}).Error; err != nil {
			return fmt.Errorf("delete pessoa: %w", err)
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

func savePessoaChildren(tx *gorm.DB, p *models.Pessoa, now time.Time) error {
	if err := replaceChildren(tx, "pessoa_id", p.ID, p.Enderecos, now); err != nil {
		return fmt.Errorf("enderecos: %w", err)
	}
	if err := replaceChildren(tx, "pessoa_id", p.ID, p.Telefones, now); err != nil {
		return fmt.Errorf("telefones: %w", err)
	}
	if err := replaceChildren(tx, "pessoa_id", p.ID, p.Emails, now); err != nil {
		return fmt.Errorf("emails: %w", err)
	}
	if err := replaceChildren(tx, "pessoa_id", p.ID, p.RedesSociais, now); err != nil {
		return fmt.Errorf("redes sociais: %w", err)
	}
	if err := replaceChildren(tx, "pessoa_id", p.ID, p.Vinculos, now); err != nil {
		return fmt.Errorf("vinculos: %w", err)
	}
	if err := replaceChildren(tx, "pessoa_id", p.ID, p.Veiculos, now); err != nil {
		return fmt.Errorf("veiculos: %w", err)
	}
	if err := replaceChildren(tx, "pessoa_id", p.ID, p.Fotos, now); err != nil {
		return fmt.Errorf("fotos: %w", err)
	}
	return nil
}

func pessoaFotos(dados []models.FotoDados) []models.PessoaFoto {
	out := make([]models.PessoaFoto, 0, len(dados))
	for _, d := range dados {
		out = append(out, models.PessoaFoto{FotoDados: d})
	}
	return out
}

func sanitizePessoa(p *models.Pessoa, v *Validation) {
	p.Nome = tools.CollapseSpaces(p.Nome)
	p.Alcunha = tools.CollapseSpaces(p.Alcunha)
	p.CPF = tools.OptionalDigits(p.CPF)
	p.RG = strings.ToUpper(strings.TrimSpace(p.RG))
	p.DataNascimento = strings.TrimSpace(p.DataNascimento)
	p.Sexo = strings.ToUpper(strings.TrimSpace(p.Sexo))
	p.NomeMae = tools.CollapseSpaces(p.NomeMae)
	p.NomePai = tools.CollapseSpaces(p.NomePai)
	p.Naturalidade = tools.CollapseSpaces(p.Naturalidade)
	p.Observacoes = strings.TrimSpace(p.Observacoes)
	p.FaccaoID = tools.OptionalID(p.FaccaoID)
	p.Faccao = nil

	p.Enderecos = cleanEnderecos(p.Enderecos, func(e *models.Endereco) *models.EnderecoDados { return &e.EnderecoDados }, v, "enderecos")
	p.Telefones = cleanTelefones(p.Telefones, func(t *models.Telefone) *models.TelefoneDados { return &t.TelefoneDados }, v, "telefones")
	p.Veiculos = cleanVeiculos(p.Veiculos, func(x *models.PessoaVeiculo) *models.VeiculoDados { return &x.VeiculoDados }, v, "veiculos")

	emails := make([]models.Email, 0, len(p.Emails))
	for _, e := range p.Emails {
		e.Endereco = strings.ToLower(strings.TrimSpace(e.Endereco))
		if e.Endereco == "" {
			continue
		}
		if !tools.ValidateEmail(e.Endereco) {
			v.Add(fmt.Sprintf("emails[%d].endereco", len(emails)), "e-mail inválido: %s", e.Endereco)
		}
		emails = append(emails, e)
	}
	p.Emails = emails

	redes := make([]models.RedeSocial, 0, len(p.RedesSociais))
	for _, r := range p.RedesSociais {
		r.Rede = strings.ToLower(strings.TrimSpace(r.Rede))
		r.Perfil = strings.TrimSpace(r.Perfil)
		r.URL = strings.TrimSpace(r.URL)
		if r.Rede == "" && r.Perfil == "" && r.URL == "" {
			continue
		}
		if r.Rede == "" {
			v.Add(fmt.Sprintf("redesSociais[%d].rede", len(redes)), "rede é obrigatória")
		}
		redes = append(redes, r)
	}
	p.RedesSociais = redes

	vinculos := make([]models.Vinculo, 0, len(p.Vinculos))
	for _, vi := range p.Vinculos {
		vi.VinculadoID = tools.OptionalID(vi.VinculadoID)
		vi.Nome = tools.CollapseSpaces(vi.Nome)
		vi.Tipo = strings.ToLower(strings.TrimSpace(vi.Tipo))
		vi.Observacao = strings.TrimSpace(vi.Observacao)
		if vi.VinculadoID == nil && vi.Nome == "" && vi.Tipo == "" {
			continue
		}
		vinculos = append(vinculos, vi)
	}
	p.Vinculos = vinculos
}

// validatePessoa acumula os erros de campo em v; só devolve erro de infraestrutura
// ou de conflito (CPF duplicado).
func validatePessoa(db *gorm.DB, p *models.Pessoa, selfID string, v *Validation) error {
	if p.Nome == "" {
		v.Add("nome", "nome é obrigatório")
	}
	if p.CPF != nil && !tools.IsCpfValid(*p.CPF) {
		v.Add("cpf", "CPF inválido")
	}
	if p.DataNascimento != "" && !tools.IsDateValid(p.DataNascimento) {
		v.Add("dataNascimento", "data inválida (use YYYY-MM-DD)")
	}
	switch p.Sexo {
	case models.SEXO_MASCULINO, models.SEXO_FEMININO, models.SEXO_NAO_INFORMADO:
	default:
		v.Add("sexo", "sexo deve ser M ou F")
	}
	if err := checkFaccao(db, p.FaccaoID, v, "faccaoId"); err != nil {
		return err
	}
	for i, vi := range p.Vinculos {
		campo := fmt.Sprintf("vinculos[%d]", i)
		if vi.Tipo == "" {
			v.Add(campo+".tipo", "tipo do vínculo é obrigatório")
		}
		if vi.VinculadoID == nil {
			if vi.Nome == "" {
				v.Add(campo+".nome", "informe o nome ou a pessoa vinculada")
			}
			continue
		}
		if selfID != "" && *vi.VinculadoID == selfID {
			v.Add(campo+".vinculadoId", "uma pessoa não pode ser vinculada a si mesma")
			continue
		}
		if err := checkPessoa(db, vi.VinculadoID, v, campo+".vinculadoId"); err != nil {
			return err
		}
	}

	if err := v.Err(); err != nil {
		return err
	}
	if p.CPF != nil {
		dup, err := taken(db, &models.Pessoa{}, "cpf", *p.CPF, selfID)
		if err != nil {
			return err
		}
		if dup {
			return Conflict("já existe pessoa com este CPF")
		}
	}
	return nil
}
