package models

import "time"

/************************************************
/**** MARK: SITUAÇÃO CADASTRAL ****/
/************************************************/
const EMPRESA_SITUACAO_ATIVA = "ativa"
const EMPRESA_SITUACAO_BAIXADA = "baixada"
const EMPRESA_SITUACAO_SUSPENSA = "suspensa"
const EMPRESA_SITUACAO_INAPTA = "inapta"

type Empresa struct {
	Base
	RazaoSocial  string  `gorm:"column:razao_social;not null;index" json:"razaoSocial" form:"razaoSocial"`
	NomeFantasia string  `gorm:"column:nome_fantasia" json:"nomeFantasia" form:"nomeFantasia"`
	CNPJ         *string `gorm:"column:cnpj;unique_index" json:"cnpj" form:"cnpj" binding:"omitempty,cnpj"`
	Situacao     string  `gorm:"index" json:"situacao" form:"situacao"`
	Atividade    string  `json:"atividade" form:"atividade"`
	DataAbertura string  `gorm:"column:data_abertura" json:"dataAbertura" form:"dataAbertura"` // YYYY-MM-DD
	Observacoes  string  `gorm:"type:text" json:"observacoes" form:"observacoes"`

	Enderecos []EmpresaEndereco `json:"enderecos" binding:"dive"`
	Telefones []EmpresaTelefone `json:"telefones"`
	Socios    []Socio           `json:"socios" binding:"dive"`
	Veiculos  []EmpresaVeiculo  `json:"veiculos"`
}

func (Empresa) TableName() string { return "empresas" }

func IsSituacaoValid(situacao string) bool {
	switch situacao {
	case "", EMPRESA_SITUACAO_ATIVA, EMPRESA_SITUACAO_BAIXADA, EMPRESA_SITUACAO_SUSPENSA, EMPRESA_SITUACAO_INAPTA:
		return true
	}
	return false
}

type EmpresaEndereco struct {
	ChildBase
	EmpresaID string `gorm:"column:empresa_id;not null;index" json:"empresaId"`
	EnderecoDados
}

func (EmpresaEndereco) TableName() string { return "empresas_enderecos" }

func (e *EmpresaEndereco) Attach(parentID string, ordem int, now time.Time) {
	e.reset(ordem, now)
	e.EmpresaID = parentID
}

type EmpresaTelefone struct {
	ChildBase
	EmpresaID string `gorm:"column:empresa_id;not null;index" json:"empresaId"`
	TelefoneDados
}

func (EmpresaTelefone) TableName() string { return "empresas_telefones" }

func (t *EmpresaTelefone) Attach(parentID string, ordem int, now time.Time) {
	t.reset(ordem, now)
	t.EmpresaID = parentID
}

// Socio pode apontar para uma Pessoa já cadastrada (PessoaID) ou só registrar nome/CPF.
type Socio struct {
	ChildBase
	EmpresaID    string  `gorm:"column:empresa_id;not null;index" json:"empresaId"`
	PessoaID     *string `gorm:"column:pessoa_id;index" json:"pessoaId" form:"pessoaId"`
	Nome         string  `gorm:"not null" json:"nome" form:"nome"`
	CPF          string  `gorm:"column:cpf;index" json:"cpf" form:"cpf" binding:"omitempty,cpf"`
	Qualificacao string  `json:"qualificacao" form:"qualificacao"`
	Participacao float64 `json:"participacao" form:"participacao"` // percentual do capital
}

func (Socio) TableName() string { return "socios" }

func (s *Socio) Attach(parentID string, ordem int, now time.Time) {
	s.reset(ordem, now)
	s.EmpresaID = parentID
}

type EmpresaVeiculo struct {
	ChildBase
	EmpresaID string `gorm:"column:empresa_id;not null;index" json:"empresaId"`
	VeiculoDados
}

func (EmpresaVeiculo) TableName() string { return "veiculos_empresas" }

func (v *EmpresaVeiculo) Attach(parentID string, ordem int, now time.Time) {
	v.reset(ordem, now)
	v.EmpresaID = parentID
}
