package workers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"cadastro/models"
	"cadastro/storage"

	"github.com/jinzhu/gorm"
	"go.uber.org/zap"
)

// UploadJanitor apaga arquivos do diretório de uploads que nenhuma foto referencia.
// A troca de fotos num update (e falhas ao apagar depois do commit) deixam órfãos para trás.
type UploadJanitor struct {
	DB       *gorm.DB
	Store    *storage.Store
	Interval time.Duration
	Grace    time.Duration // arquivos mais novos que isso ficam (upload em andamento)
	Now      func() time.Time
}

// Start roda uma varredura imediata e depois a cada Interval, até o ctx ser cancelado.
func (j *UploadJanitor) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(j.Interval)
		defer ticker.Stop()

		for {
			if _, err := j.Sweep(); err != nil {
				zap.L().Warn("upload janitor: falha na varredura", zap.Error(err))
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Sweep faz uma varredura e devolve quantos arquivos foram apagados.
func (j *UploadJanitor) Sweep() (int, error) {
	now := time.Now()
	if j.Now != nil {
		now = j.Now()
	}

	referenced, err := j.referencedPaths()
	if err != nil {
		return 0, err
	}

	removed := 0
	err = filepath.WalkDir(j.Store.Dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if now.Sub(info.ModTime()) < j.Grace {
			return nil
		}
		url, err := j.Store.URL(p)
		if err != nil || referenced[url] {
			return nil
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			zap.L().Warn("upload janitor: falha ao remover", zap.String("arquivo", p), zap.Error(err))
			return nil
		}
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("walk uploads: %w", err)
	}
	if removed > 0 {
		zap.L().Info("upload janitor: órfãos removidos", zap.Int("total", removed))
	}
	return removed, nil
}

func (j *UploadJanitor) referencedPaths() (map[string]bool, error) {
	out := map[string]bool{}
	for _, model := range []any{&models.PessoaFoto{}, &models.EntidadeFoto{}} {
		var paths []string
		if err := j.DB.Model(model).Pluck("caminho", &paths).Error; err != nil {
			return nil, fmt.Errorf("load fotos: %w", err)
		}
		for _, p := range paths {
			out[p] = true
		}
	}
	return out, nil
}
