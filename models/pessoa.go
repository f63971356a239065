package models

import "time"

/************************************************
/**** MARK: SEXO ****/
/************************************************/
const SEXO_MASCULINO = "M"
const SEXO_FEMININO = "F"
const SEXO_NAO_INFORMADO = ""

// Pessoa é o cadastro principal: dados pessoais mais as coleções filhas,
// gravadas e substituídas na mesma transação do registro pai.
type Pessoa struct {
	Base
	Nome           string  `gorm:"not null;index" json:"nome" form:"nome"`
	Alcunha        string  `json:"alcunha" form:"alcunha"`
	CPF            *string `gorm:"column:cpf;unique_index" json:"cpf" form:"cpf" binding:"omitempty,cpf"` // apenas dígitos; NULL quando não informado
	RG             string  `gorm:"column:rg" json:"rg" form:"rg"`
	DataNascimento string  `gorm:"column:data_nascimento" json:"dataNascimento" form:"dataNascimento"` // YYYY-MM-DD
	Sexo           string  `json:"sexo" form:"sexo"`
	NomeMae        string  `gorm:"column:nome_mae" json:"nomeMae" form:"nomeMae"`
	NomePai        string  `gorm:"column:nome_pai" json:"nomePai" form:"nomePai"`
	Naturalidade   string  `json:"naturalidade" form:"naturalidade"`
	Observacoes    string  `gorm:"type:text" json:"observacoes" form:"observacoes"`
	FaccaoID       *string `gorm:"column:faccao_id;index" json:"faccaoId" form:"faccaoId"`

	Faccao       *Faccao         `gorm:"association_autoupdate:false;association_autocreate:false" json:"faccao,omitempty"`
	Enderecos    []Endereco      `json:"enderecos" binding:"dive"`
	Telefones    []Telefone      `json:"telefones"`
	Emails       []Email         `json:"emails"`
	RedesSociais []RedeSocial    `json:"redesSociais"`
	Vinculos     []Vinculo       `json:"vinculos"`
	Veiculos     []PessoaVeiculo `json:"veiculos"`
	Fotos        []PessoaFoto    `json:"fotos"`
}

func (Pessoa) TableName() string { return "pessoas" }

type Endereco struct {
	ChildBase
	PessoaID string `gorm:"column:pessoa_id;not null;index" json:"pessoaId"`
	EnderecoDados
}

func (Endereco) TableName() string { return "enderecos" }

func (e *Endereco) Attach(parentID string, ordem int, now time.Time) {
	e.reset(ordem, now)
	e.PessoaID = parentID
}

type Telefone struct {
	ChildBase
	PessoaID string `gorm:"column:pessoa_id;not null;index" json:"pessoaId"`
	TelefoneDados
}

func (Telefone) TableName() string { return "telefones" }

func (t *Telefone) Attach(parentID string, ordem int, now time.Time) {
	t.reset(ordem, now)
	t.PessoaID = parentID
}

type Email struct {
	ChildBase
	PessoaID string `gorm:"column:pessoa_id;not null;index" json:"pessoaId"`
	Endereco string `gorm:"not null" json:"endereco" form:"endereco"`
}

func (Email) TableName() string { return "emails" }

func (e *Email) Attach(parentID string, ordem int, now time.Time) {
	e.reset(ordem, now)
	e.PessoaID = parentID
}

type RedeSocial struct {
	ChildBase
	PessoaID string `gorm:"column:pessoa_id;not null;index" json:"pessoaId"`
	Rede     string `gorm:"not null" json:"rede" form:"rede"` // instagram, facebook, tiktok...
	Perfil   string `json:"perfil" form:"perfil"`
	URL      string `gorm:"column:url" json:"url" form:"url"`
}

func (RedeSocial) TableName() string { return "redes_sociais" }

func (r *RedeSocial) Attach(parentID string, ordem int, now time.Time) {
	r.reset(ordem, now)
	r.PessoaID = parentID
}

// Vinculo liga uma pessoa a outra (parente, comparsa...). VinculadoID é opcional:
// o vínculo pode citar só um nome ainda sem cadastro.
type Vinculo struct {
	ChildBase
	PessoaID    string  `gorm:"column:pessoa_id;not null;index" json:"pessoaId"`
	VinculadoID *string `gorm:"column:vinculado_id;index" json:"vinculadoId" form:"vinculadoId"`
	Nome        string  `json:"nome" form:"nome"`
	Tipo        string  `gorm:"not null" json:"tipo" form:"tipo"`
	Observacao  string  `json:"observacao" form:"observacao"`
}

func (Vinculo) TableName() string { return "vinculos_pessoas" }

func (v *Vinculo) Attach(parentID string, ordem int, now time.Time) {
	v.reset(ordem, now)
	v.PessoaID = parentID
}

type PessoaVeiculo struct {
	ChildBase
	PessoaID string `gorm:"column:pessoa_id;not null;index" json:"pessoaId"`
	VeiculoDados
}

func (PessoaVeiculo) TableName() string { return "veiculos_pessoas" }

func (v *PessoaVeiculo) Attach(parentID string, ordem int, now time.Time) {
	v.reset(ordem, now)
	v.PessoaID = parentID
}

type PessoaFoto struct {
	ChildBase
	PessoaID string `gorm:"column:pessoa_id;not null;index" json:"pessoaId"`
	FotoDados
}

func (PessoaFoto) TableName() string { return "pessoas_fotos" }

func (f *PessoaFoto) Attach(parentID string, ordem int, now time.Time) {
	f.reset(ordem, now)
	f.PessoaID = parentID
}
