package models

// Faccao representa uma facção/organização criminosa à qual pessoas e entidades podem estar ligadas.
type Faccao struct {
	Base
	Nome      string `gorm:"not null;unique_index" json:"nome" form:"nome"`
	Sigla     string `json:"sigla" form:"sigla"`
	Descricao string `gorm:"type:text" json:"descricao" form:"descricao"`
}

func (Faccao) TableName() string { return "faccoes" }
