package services

import (
	"fmt"
	"strings"

	"cadastro/models"
	"cadastro/tools"

	"github.com/jinzhu/gorm"
)

// Os cadastros de pessoa, entidade e empresa compartilham blocos de endereço,
// telefone, veículo e foto. As funções abaixo limpam cada coleção, descartam
// linhas vazias (o formulário costuma mandar linhas em branco) e validam o resto.

func cleanEnderecos[T any](items []T, get func(*T) *models.EnderecoDados, v *Validation, campo string) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		e := get(&items[i])
		e.Logradouro = tools.CollapseSpaces(e.Logradouro)
		e.Numero = strings.TrimSpace(e.Numero)
		e.Complemento = strings.TrimSpace(e.Complemento)
		e.Bairro = tools.CollapseSpaces(e.Bairro)
		e.Cidade = tools.CollapseSpaces(e.Cidade)
		e.UF = strings.ToUpper(strings.TrimSpace(e.UF))
		e.CEP = tools.OnlyDigits(e.CEP)
		e.Referencia = strings.TrimSpace(e.Referencia)

		if *e == (models.EnderecoDados{}) {
			continue
		}
		field := fmt.Sprintf("%s[%d]", campo, len(out))
		if e.UF != "" && !tools.IsUFValid(e.UF) {
			v.Add(field+".uf", "UF inválida: %s", e.UF)
		}
		if e.CEP != "" && len(e.CEP) != 8 {
			v.Add(field+".cep", "CEP deve ter 8 dígitos")
		}
		out = append(out, items[i])
	}
	return out
}

func cleanTelefones[T any](items []T, get func(*T) *models.TelefoneDados, v *Validation, campo string) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		t := get(&items[i])
		t.Tipo = strings.ToLower(strings.TrimSpace(t.Tipo))
		t.Observacao = strings.TrimSpace(t.Observacao)
		if strings.TrimSpace(t.Numero) == "" {
			continue
		}
		field := fmt.Sprintf("%s[%d].numero", campo, len(out))
		n, err := tools.NormalizePhone(t.Numero)
		if err != nil {
			v.Add(field, "%s", err.Error())
		} else {
			t.Numero = n
		}
		out = append(out, items[i])
	}
	return out
}

func cleanVeiculos[T any](items []T, get func(*T) *models.VeiculoDados, v *Validation, campo string) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		d := get(&items[i])
		d.Placa = tools.NormalizePlaca(d.Placa)
		d.Marca = tools.CollapseSpaces(d.Marca)
		d.Modelo = tools.CollapseSpaces(d.Modelo)
		d.Cor = tools.CollapseSpaces(d.Cor)
		d.Observacao = strings.TrimSpace(d.Observacao)
		if *d == (models.VeiculoDados{}) {
			continue
		}
		field := fmt.Sprintf("%s[%d]", campo, len(out))
		if d.Placa == "" && d.Modelo == "" {
			v.Add(field+".placa", "informe a placa ou o modelo")
		}
		if d.Placa != "" && !tools.IsPlacaValid(d.Placa) {
			v.Add(field+".placa", "placa inválida: %s", d.Placa)
		}
		if d.Ano != 0 && (d.Ano < 1900 || d.Ano > 2100) {
			v.Add(field+".ano", "ano inválido: %d", d.Ano)
		}
		out = append(out, items[i])
	}
	return out
}

// mergeFotos monta a coleção final de fotos de um cadastro:
// as fotos atuais que o cliente manteve (identificadas pelo caminho) mais os uploads novos.
// Devolve também os caminhos que deixaram de ser usados.
func mergeFotos(current, submitted, uploads []models.FotoDados, v *Validation, campo string) ([]models.FotoDados, []string) {
	byPath := make(map[string]models.FotoDados, len(current))
	for _, f := range current {
		byPath[f.Caminho] = f
	}

	kept := make(map[string]bool, len(submitted))
	out := make([]models.FotoDados, 0, len(submitted)+len(uploads))
	for i, s := range submitted {
		path := strings.TrimSpace(s.Caminho)
		if path == "" {
			continue
		}
		f, ok := byPath[path]
		if !ok {
			v.Add(fmt.Sprintf("%s[%d].caminho", campo, i), "foto não pertence a este cadastro")
			continue
		}
		if kept[path] {
			continue
		}
		kept[path] = true
		f.Principal = s.Principal
		out = append(out, f)
	}
	out = append(out, uploads...)

	var removed []string
	for _, f := range current {
		if !kept[f.Caminho] {
			removed = append(removed, f.Caminho)
		}
	}
	return ensureOnePrincipal(out), removed
}

// ensureOnePrincipal garante no máximo uma foto principal; sem nenhuma marcada, a primeira vira principal.
func ensureOnePrincipal(fotos []models.FotoDados) []models.FotoDados {
	seen := false
	for i := range fotos {
		if fotos[i].Principal {
			if seen {
				fotos[i].Principal = false
			}
			seen = true
		}
	}
	if !seen && len(fotos) > 0 {
		fotos[0].Principal = true
	}
	return fotos
}

func checkFaccao(db *gorm.DB, id *string, v *Validation, campo string) error {
	if id == nil {
		return nil
	}
	ok, err := exists(db, &models.Faccao{}, *id)
	if err != nil {
		return err
	}
	if !ok {
		v.Add(campo, "facção não encontrada")
	}
	return nil
}

func checkPessoa(db *gorm.DB, id *string, v *Validation, campo string) error {
	if id == nil {
		return nil
	}
	ok, err := exists(db, &models.Pessoa{}, *id)
	if err != nil {
		return err
	}
	if !ok {
		v.Add(campo, "pessoa não encontrada")
	}
	return nil
}

func exists(db *gorm.DB, model any, id string) (bool, error) {
	var count int
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check exists: %w", err)
	}
	return count > 0, nil
}

// taken informa se já existe outro registro (id diferente de selfID) com column = value.
func taken(db *gorm.DB, model any, column, value, selfID string) (bool, error) {
	var count int
	q := db.Model(model).Where(column+" = ?", value)
	if selfID != "" {
		q = q.Where("id <> ?", selfID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check unique %s: %w", column, err)
	}
	return count > 0, nil
}
