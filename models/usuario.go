package models

import "time"

/************************************************
/**** MARK: PERFIS ****/
/************************************************/
const PERFIL_ADMIN = "admin"
const PERFIL_OPERADOR = "operador"
const PERFIL_CONSULTA = "consulta"

// Usuario representa um usuário do sistema.
type Usuario struct {
	Base
	Nome        string     `gorm:"not null" json:"nome" form:"nome"`
	Email       string     `gorm:"not null;unique_index" json:"email" form:"email"`
	SenhaHash   string     `gorm:"column:senha_hash;not null" json:"-"`
	Perfil      string     `gorm:"not null" json:"perfil" form:"perfil"`
	Ativo       bool       `gorm:"not null" json:"ativo" form:"ativo"` // sem default: o gorm omitiria o false no insert
	UltimoLogin *time.Time `gorm:"column:ultimo_login" json:"ultimoLogin"`
}

func (Usuario) TableName() string { return "usuarios" }

func (u Usuario) IsAdmin() bool {
	return u.Perfil == PERFIL_ADMIN
}

// CanWrite informa se o perfil pode criar/alterar registros.
func (u Usuario) CanWrite() bool {
	return u.Perfil == PERFIL_ADMIN || u.Perfil == PERFIL_OPERADOR
}

func IsPerfilValid(perfil string) bool {
	switch perfil {
	case PERFIL_ADMIN, PERFIL_OPERADOR, PERFIL_CONSULTA:
		return true
	}
	return false
}
