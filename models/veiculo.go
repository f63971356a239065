package models

// Veiculo é o cadastro avulso de veículos (independente de pessoa/empresa).
type Veiculo struct {
	Base
	Placa         string `gorm:"not null;unique_index" json:"placa" form:"placa" binding:"required,placa"`
	Marca         string `json:"marca" form:"marca"`
	Modelo        string `json:"modelo" form:"modelo"`
	Cor           string `json:"cor" form:"cor"`
	AnoFabricacao int    `gorm:"column:ano_fabricacao" json:"anoFabricacao" form:"anoFabricacao" binding:"omitempty,min=1900,max=2100"`
	AnoModelo     int    `gorm:"column:ano_modelo" json:"anoModelo" form:"anoModelo" binding:"omitempty,min=1900,max=2100"`
	Chassi        string `json:"chassi" form:"chassi"`
	Renavam       string `json:"renavam" form:"renavam" binding:"omitempty,numeric,max=11"`
	Proprietario  string `json:"proprietario" form:"proprietario"`
	Observacoes   string `gorm:"type:text" json:"observacoes" form:"observacoes"`
}

func (Veiculo) TableName() string { return "veiculos" }
