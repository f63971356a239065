package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Lideranca é gravada desnormalizada em entidades.liderancas_json.
type Lideranca struct {
	Nome     string  `json:"nome"`
	Cargo    string  `json:"cargo"`
	PessoaID *string `json:"pessoaId,omitempty"`
}

// Entidade representa uma organização (associação, igreja, torcida, grupo...).
type Entidade struct {
	Base
	Nome           string  `gorm:"not null;index" json:"nome" form:"nome"`
	Sigla          string  `json:"sigla" form:"sigla"`
	Tipo           string  `gorm:"index" json:"tipo" form:"tipo"`
	CNPJ           *string `gorm:"column:cnpj;index" json:"cnpj" form:"cnpj" binding:"omitempty,cnpj"`
	Descricao      string  `gorm:"type:text" json:"descricao" form:"descricao"`
	AreaAtuacao    string  `gorm:"column:area_atuacao" json:"areaAtuacao" form:"areaAtuacao"`
	FaccaoID       *string `gorm:"column:faccao_id;index" json:"faccaoId" form:"faccaoId"`
	LiderancasJSON string  `gorm:"column:liderancas_json;type:text" json:"-"`

	Liderancas []Lideranca        `gorm:"-" json:"liderancas"`
	Faccao     *Faccao            `gorm:"association_autoupdate:false;association_autocreate:false" json:"faccao,omitempty"`
	Enderecos  []EntidadeEndereco `json:"enderecos" binding:"dive"`
	Telefones  []EntidadeTelefone `json:"telefones"`
	Fotos      []EntidadeFoto     `json:"fotos"`
}

func (Entidade) TableName() string { return "entidades" }

// AfterFind decodifica liderancas_json. Conteúdo inválido vira lista vazia.
func (e *Entidade) AfterFind() error {
	e.Liderancas = []Lideranca{}
	if strings.TrimSpace(e.LiderancasJSON) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(e.LiderancasJSON), &e.Liderancas); err != nil {
		e.Liderancas = []Lideranca{}
	}
	return nil
}

type EntidadeEndereco struct {
	ChildBase
	EntidadeID string `gorm:"column:entidade_id;not null;index" json:"entidadeId"`
	EnderecoDados
}

func (EntidadeEndereco) TableName() string { return "entidades_enderecos" }

func (e *EntidadeEndereco) Attach(parentID string, ordem int, now time.Time) {
	e.reset(ordem, now)
	e.EntidadeID = parentID
}

type EntidadeTelefone struct {
	ChildBase
	EntidadeID string `gorm:"column:entidade_id;not null;index" json:"entidadeId"`
	TelefoneDados
}

func (EntidadeTelefone) TableName() string { return "entidades_telefones" }

func (t *EntidadeTelefone) Attach(parentID string, ordem int, now time.Time) {
	t.reset(ordem, now)
	t.EntidadeID = parentID
}

type EntidadeFoto struct {
	ChildBase
	EntidadeID string `gorm:"column:entidade_id;not null;index" json:"entidadeId"`
	FotoDados
}

func (EntidadeFoto) TableName() string { return "entidades_fotos" }

func (f *EntidadeFoto) Attach(parentID string, ordem int, now time.Time) {
	f.reset(ordem, now)
	f.EntidadeID = parentID
}
