package models

// Blocos de dados compartilhados pelas tabelas filhas de Pessoa, Entidade e Empresa.

type EnderecoDados struct {
	Logradouro  string `json:"logradouro" form:"logradouro"`
	Numero      string `json:"numero" form:"numero"`
	Complemento string `json:"complemento" form:"complemento"`
	Bairro      string `gorm:"index" json:"bairro" form:"bairro"`
	Cidade      string `gorm:"index" json:"cidade" form:"cidade"`
	UF          string `gorm:"column:uf;type:varchar(2)" json:"uf" form:"uf" binding:"omitempty,uf"`
	CEP         string `gorm:"column:cep" json:"cep" form:"cep"`
	Referencia  string `gorm:"type:text" json:"referencia" form:"referencia"`
}

type TelefoneDados struct {
	Numero     string `gorm:"not null;index" json:"numero" form:"numero"` // apenas dígitos
	Tipo       string `json:"tipo" form:"tipo"`                           // celular, fixo, whatsapp...
	Observacao string `json:"observacao" form:"observacao"`
}

type FotoDados struct {
	Caminho      string `gorm:"not null;unique_index" json:"caminho"` // URL pública (/uploads/...)
	NomeOriginal string `json:"nomeOriginal"`
	Mime         string `json:"mime"`
	Tamanho      int64  `json:"tamanho"`
	Principal    bool   `gorm:"not null;default:false" json:"principal"`
}

type VeiculoDados struct {
	Placa      string `gorm:"index" json:"placa" form:"placa"`
	Marca      string `json:"marca" form:"marca"`
	Modelo     string `json:"modelo" form:"modelo"`
	Cor        string `json:"cor" form:"cor"`
	Ano        int    `json:"ano" form:"ano"`
	Observacao string `json:"observacao" form:"observacao"`
}
