package workers

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	dbpkg "cadastro/db"
	"cadastro/models"
	"cadastro/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJanitor(t *testing.T) (*UploadJanitor, *storage.Store) {
	t.Helper()
	db, err := dbpkg.OpenSQLite(filepath.Join(t.TempDir(), "teste.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, dbpkg.Migrate(db))

	store := storage.New(t.TempDir(), 1<<20)
	return &UploadJanitor{DB: db, Store: store, Interval: time.Hour, Grace: time.Minute}, store
}

func savePNG(t *testing.T, store *storage.Store) models.FotoDados {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	foto, err := store.Save("pessoas", "f.png", &buf)
	require.NoError(t, err)
	return foto
}

func TestSweepRemovesOnlyOldOrphans(t *testing.T) {
	j, store := newJanitor(t)

	usada := savePNG(t, store)
	orfa := savePNG(t, store)
	nova := savePNG(t, store)

	foto := models.PessoaFoto{PessoaID: "p1", FotoDados: usada}
	foto.Attach("p1", 0, time.Now())
	require.NoError(t, j.DB.Create(&foto).Error)

	old := time.Now().Add(-2 * time.Hour)
	for _, f := range []models.FotoDados{usada, orfa} {
		p, _ := store.Path(f.Caminho)
		require.NoError(t, os.Chtimes(p, old, old))
	}

	removed, err := j.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	for f, exists := range map[string]bool{usada.Caminho: true, orfa.Caminho: false, nova.Caminho: true} {
		p, _ := store.Path(f)
		_, err := os.Stat(p)
		assert.Equal(t, exists, err == nil, f)
	}
}

func TestSweepMissingDir(t *testing.T) {
	j, _ := newJanitor(t)
	j.Store = storage.New(filepath.Join(t.TempDir(), "nao-existe"), 0)

	removed, err := j.Sweep()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestStartStopsWithContext(t *testing.T) {
	j, store := newJanitor(t)
	orfa := savePNG(t, store)
	p, _ := store.Path(orfa.Caminho)
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(p, old, old))

	ctx, cancel := context.WithCancel(context.Background())
	j.Start(ctx)
	defer cancel()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(p)
		return os.IsNotExist(err)
	}, 2*time.Second, 10*time.Millisecond)
}
