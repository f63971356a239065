package controllers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	dbpkg "cadastro/db"
	"cadastro/models"
	"cadastro/search"
	"cadastro/services"
	"cadastro/storage"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/gorm"
)

func database(c *gin.Context) (*gorm.DB, bool) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		fail(c, errors.New("db não configurado no contexto"))
		return nil, false
	}
	return db, true
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(name)))
	if err != nil {
		return 0
	}
	return v
}

func page(c *gin.Context) search.Page {
	return search.NewPage(queryInt(c, "limit"), queryInt(c, "offset"))
}

// listResponse monta {total, limit, offset, <key>: items}.
func listResponse(key string, items any, total int, p search.Page) gin.H {
	return gin.H{"total": total, "limit": p.Limit, "offset": p.Offset, key: items}
}

// bindError mantém os erros do validator (viram details por campo) e
// transforma o resto em 400.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return err
	}
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		return err
	}
	return services.BadRequest("payload inválido", err.Error())
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// bindRecord lê o cadastro em JSON puro ou em multipart: campo "dados" com o JSON
// e arquivos em "fotos". Devolve os arquivos recebidos.
func bindRecord(c *gin.Context, dst any) ([]*multipart.FileHeader, error) {
	if !isMultipart(c) {
		if err := c.ShouldBindJSON(dst); err != nil {
			return nil, bindError(err)
		}
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, bindError(err)
	}
	if dados := form.Value["dados"]; len(dados) > 0 && strings.TrimSpace(dados[0]) != "" {
		if !json.Valid([]byte(dados[0])) {
			return nil, services.BadRequest("campo dados não contém JSON válido", nil)
		}
		if err := binding.JSON.BindBody([]byte(dados[0]), dst); err != nil {
			return nil, bindError(err)
		}
	} else if err := c.ShouldBindWith(dst, binding.FormMultipart); err != nil {
		return nil, bindError(err)
	}
	return form.File["fotos"], nil
}

// saveUploads grava os arquivos recebidos. Se algum falhar, os já gravados são apagados.
func saveUploads(store *storage.Store, categoria string, files []*multipart.FileHeader) ([]models.FotoDados, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if store == nil {
		return nil, errors.New("armazenamento de uploads não configurado")
	}
	out := make([]models.FotoDados, 0, len(files))
	for _, fh := range files {
		foto, err := store.SaveFile(categoria, fh)
		if err != nil {
			store.RemoveFotos(out)
			return nil, err
		}
		out = append(out, foto)
	}
	return out, nil
}

func removeUploads(store *storage.Store, paths ...string) {
	if store == nil || len(paths) == 0 {
		return
	}
	store.Remove(paths...)
}
