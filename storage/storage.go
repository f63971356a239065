package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cadastro/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

// URL_PREFIX é o prefixo público dos arquivos enviados.
const URL_PREFIX = "/uploads"

var (
	ErrTooLarge        = errors.New("arquivo maior que o permitido")
	ErrUnsupportedType = errors.New("tipo de arquivo não permitido")
)

var allowed = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Store grava as fotos em <Dir>/<categoria>/<uuid><ext>.
type Store struct {
	Dir      string
	MaxBytes int64
}

func New(dir string, maxBytes int64) *Store {
	return &Store{Dir: dir, MaxBytes: maxBytes}
}

// SaveFile grava um arquivo vindo de um formulário multipart.
func (s *Store) SaveFile(categoria string, fh *multipart.FileHeader) (models.FotoDados, error) {
	if s.MaxBytes > 0 && fh.Size > s.MaxBytes {
		return models.FotoDados{}, fmt.Errorf("%s: %w", fh.Filename, ErrTooLarge)
	}
	f, err := fh.Open()
	if err != nil {
		return models.FotoDados{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return s.Save(categoria, fh.Filename, f)
}

// Save lê o conteúdo inteiro (até MaxBytes), confere o tipo pelo conteúdo e grava atomicamente.
func (s *Store) Save(categoria, nomeOriginal string, r io.Reader) (models.FotoDados, error) {
	limit := s.MaxBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return models.FotoDados{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(body)) > limit {
		return models.FotoDados{}, fmt.Errorf("%s: %w", nomeOriginal, ErrTooLarge)
	}

	mime := mimetype.Detect(body)
	ext, ok := "", false
	for m, e := range allowed {
		if mime.Is(m) {
			ext, ok = e, true
			break
		}
	}
	if !ok {
		return models.FotoDados{}, fmt.Errorf("%s (%s): %w", nomeOriginal, mime.String(), ErrUnsupportedType)
	}

	categoria = cleanCategoria(categoria)
	name := uuid.NewString() + ext
	dir := filepath.Join(s.Dir, categoria)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return models.FotoDados{}, fmt.Errorf("create upload dir: %w", err)
	}
	if err := atomic.WriteFile(filepath.Join(dir, name), bytes.NewReader(body)); err != nil {
		return models.FotoDados{}, fmt.Errorf("write upload: %w", err)
	}

	return models.FotoDados{
		Caminho:      path.Join(URL_PREFIX, categoria, name),
		NomeOriginal: filepath.Base(nomeOriginal),
		Mime:         strings.SplitN(mime.String(), ";", 2)[0],
		Tamanho:      int64(len(body)),
	}, nil
}

// Remove apaga os arquivos das URLs informadas. Falhas só são logadas:
// o arquivo órfão é recolhido depois pelo janitor.
func (s *Store) Remove(urls ...string) {
	for _, u := range urls {
		p, ok := s.Path(u)
		if !ok {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			zap.L().Warn("falha ao remover upload", zap.String("caminho", u), zap.Error(err))
		}
	}
}

// RemoveFotos é Remove para fotos recém gravadas de uma requisição que falhou.
func (s *Store) RemoveFotos(fotos []models.FotoDados) {
	for _, f := range fotos {
		s.Remove(f.Caminho)
	}
}

// Path converte a URL pública no caminho em disco. Recusa URLs fora do diretório de uploads.
func (s *Store) Path(url string) (string, bool) {
	rel, ok := strings.CutPrefix(url, URL_PREFIX+"/")
	if !ok || rel == "" {
		return "", false
	}
	rel = path.Clean("/" + rel)[1:]
	if rel == "" || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.Join(s.Dir, filepath.FromSlash(rel)), true
}

// URL é o inverso de Path.
func (s *Store) URL(p string) (string, error) {
	rel, err := filepath.Rel(s.Dir, p)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s fora de %s", p, s.Dir)
	}
	return path.Join(URL_PREFIX, filepath.ToSlash(rel)), nil
}

func cleanCategoria(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	var b strings.Builder
	for _, r := range c {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "geral"
	}
	return b.String()
}
