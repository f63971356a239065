package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cadastro/models"

	"github.com/jinzhu/gorm"
	"golang.org/x/sync/errgroup"
)

const DASHBOARD_RECENTES = 5

type FaccaoTotal struct {
	FaccaoID *string `gorm:"column:faccao_id" json:"faccaoId"`
	Nome     string  `gorm:"column:nome" json:"nome"`
	Total    int     `gorm:"column:total" json:"total"`
}

// Recente é o resumo de um cadastro para as listas de últimos registros.
type Recente struct {
	ID        string    `json:"id"`
	Titulo    string    `json:"titulo"`
	Subtitulo string    `json:"subtitulo"`
	CriadoEm  time.Time `json:"criadoEm"`
}

type Dashboard struct {
	Totais           map[string]int `json:"totais"`
	PessoasPorFaccao []FaccaoTotal  `json:"pessoasPorFaccao"`
	Pessoas          []Recente      `json:"pessoasRecentes"`
	Empresas         []Recente      `json:"empresasRecentes"`
	Veiculos         []Recente      `json:"veiculosRecentes"`
}

// GetDashboard roda as contagens e consultas do painel em paralelo.
func GetDashboard(ctx context.Context, db *gorm.DB) (*Dashboard, error) {
	d := &Dashboard{Totais: map[string]int{}}
	var mu sync.Mutex

	counted := map[string]any{
		"pessoas":   &models.Pessoa{},
		"entidades": &models.Entidade{},
		"empresas":  &models.Empresa{},
		"veiculos":  &models.Veiculo{},
		"faccoes":   &models.Faccao{},
		"usuarios":  &models.Usuario{},
	}

	g, ctx := errgroup.WithContext(ctx)
	for key, model := range counted {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var n int
			if err := db.Model(model).Count(&n).Error; err != nil {
				return fmt.Errorf("count %s: %w", key, err)
			}
			mu.Lock()
			d.Totais[key] = n
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows, err := pessoasPorFaccao(db)
		d.PessoasPorFaccao = rows
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var items []models.Pessoa
		if err := db.Order("criado_em desc").Limit(DASHBOARD_RECENTES).Find(&items).Error; err != nil {
			return fmt.Errorf("recent pessoas: %w", err)
		}
		d.Pessoas = make([]Recente, 0, len(items))
		for _, p := range items {
			d.Pessoas = append(d.Pessoas, Recente{ID: p.ID, Titulo: p.Nome, Subtitulo: p.Alcunha, CriadoEm: p.CriadoEm})
		}
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var items []models.Empresa
		if err := db.Order("criado_em desc").Limit(DASHBOARD_RECENTES).Find(&items).Error; err != nil {
			return fmt.Errorf("recent empresas: %w", err)
		}
		d.Empresas = make([]Recente, 0, len(items))
		for _, e := range items {
			d.Empresas = append(d.Empresas, Recente{ID: e.ID, Titulo: e.RazaoSocial, Subtitulo: e.NomeFantasia, CriadoEm: e.CriadoEm})
		}
		return nil
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var items []models.Veiculo
		if err := db.Order("criado_em desc").Limit(DASHBOARD_RECENTES).Find(&items).Error; err != nil {
			return fmt.Errorf("recent veiculos: %w", err)
		}
		d.Veiculos = make([]Recente, 0, len(items))
		for _, v := range items {
			d.Veiculos = append(d.Veiculos, Recente{ID: v.ID, Titulo: v.Placa, Subtitulo: v.Marca + " " + v.Modelo, CriadoEm: v.CriadoEm})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

// pessoasPorFaccao conta pessoas por facção, incluindo facções sem ninguém e
// uma linha final (faccaoId nulo) para quem não tem facção.
func pessoasPorFaccao(db *gorm.DB) ([]FaccaoTotal, error) {
	var rows []FaccaoTotal
	err := db.Raw(`SELECT f.id AS faccao_id, f.nome AS nome, COUNT(p.id) AS total
		FROM faccoes f LEFT JOIN pessoas p ON p.faccao_id = f.id
		GROUP BY f.id, f.nome
		ORDER BY total DESC, f.nome ASC`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("pessoas por faccao: %w", err)
	}

	var sem int
	if err := db.Model(&models.Pessoa{}).Where("faccao_id IS NULL").Count(&sem).Error; err != nil {
		return nil, fmt.Errorf("pessoas sem faccao: %w", err)
	}
	if rows == nil {
		rows = []FaccaoTotal{}
	}
	if sem > 0 {
		rows = append(rows, FaccaoTotal{Nome: "Sem facção", Total: sem})
	}
	return rows, nil
}
