package models

import (
	"time"

	"github.com/google/uuid"
)

// Base reúne as colunas presentes em todas as tabelas.
// O ID (UUID) e os timestamps são sempre preenchidos pela aplicação, nunca pelo banco.
type Base struct {
	ID           string    `gorm:"primary_key;type:varchar(36)" json:"id"`
	CriadoEm     time.Time `gorm:"column:criado_em;not null" json:"criadoEm"`
	AtualizadoEm time.Time `gorm:"column:atualizado_em;not null" json:"atualizadoEm"`
}

// Touch gera o ID quando ausente e atualiza os timestamps.
func (b *Base) Touch(now time.Time) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CriadoEm.IsZero() {
		b.CriadoEm = now
	}
	b.AtualizadoEm = now
}

// Child é implementado pelas tabelas filhas (endereços, telefones, fotos...).
// Attach vincula a linha ao pai e gera um novo ID: filhos são sempre reinseridos.
type Child interface {
	Attach(parentID string, ordem int, now time.Time)
}

// ChildBase é a Base das tabelas filhas, com a posição dentro da coleção.
type ChildBase struct {
	ID           string    `gorm:"primary_key;type:varchar(36)" json:"id"`
	Ordem        int       `gorm:"not null;default:0" json:"ordem"`
	CriadoEm     time.Time `gorm:"column:criado_em;not null" json:"criadoEm"`
	AtualizadoEm time.Time `gorm:"column:atualizado_em;not null" json:"atualizadoEm"`
}

func (b *ChildBase) reset(ordem int, now time.Time) {
	b.ID = uuid.NewString()
	b.Ordem = ordem
	b.CriadoEm = now
	b.AtualizadoEm = now
}
