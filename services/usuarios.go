package services

import (
	"fmt"
	"strings"
	"time"

	"cadastro/models"
	"cadastro/tools"

	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"
)

// UsuarioInput é o payload de criação/alteração de usuário.
// Na alteração, Senha vazia mantém a senha atual e Ativo nil mantém o estado.
type UsuarioInput struct {
	Nome   string `json:"nome" form:"nome" binding:"required"`
	Email  string `json:"email" form:"email" binding:"required,email"`
	Senha  string `json:"senha" form:"senha"`
	Perfil string `json:"perfil" form:"perfil" binding:"omitempty,oneof=admin operador consulta"`
	Ativo  *bool  `json:"ativo" form:"ativo"`
}

func HashPassword(senha string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash senha: %w", err)
	}
	return string(b), nil
}

func CheckPasswordHash(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}

// Authenticate confere email/senha. Usuário inexistente e senha errada dão a mesma resposta.
func Authenticate(db *gorm.DB, email, senha string) (*models.Usuario, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || senha == "" {
		return nil, BadRequest("email e senha são obrigatórios", nil)
	}

	var u models.Usuario
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, Unauthorized("usuário ou senha inválidos")
		}
		return nil, fmt.Errorf("load usuario: %w", err)
	}
	if !CheckPasswordHash(u.SenhaHash, senha) {
		return nil, Unauthorized("usuário ou senha inválidos")
	}
	if !u.Ativo {
		return nil, Forbidden("usuário inativo")
	}

	now := time.Now()
	if err := db.Model(&models.Usuario{}).Where("id = ?", u.ID).
		UpdateColumn("ultimo_login", now).Error; err != nil {
		return nil, fmt.Errorf("update ultimo_login: %w", err)
	}
	u.UltimoLogin = &now
	return &u, nil
}

func ListUsuarios(db *gorm.DB) ([]models.Usuario, error) {
	var items []models.Usuario
	if err := db.Order("nome asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	return items, nil
}

func GetUsuario(db *gorm.DB, id string) (*models.Usuario, error) {
	var u models.Usuario
	if err := db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFoundOr(err, "usuário não encontrado")
	}
	return &u, nil
}

func CreateUsuario(db *gorm.DB, in UsuarioInput) (*models.Usuario, error) {
	in.Nome = tools.CollapseSpaces(in.Nome)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Perfil = strings.ToLower(strings.TrimSpace(in.Perfil))
	if in.Perfil == "" {
		in.Perfil = models.PERFIL_CONSULTA
	}

	v := &Validation{}
	validateUsuario(in, v)
	if in.Senha == "" {
		v.Add("senha", "senha é obrigatória")
	} else if msg := tools.CheckPassword(in.Senha); msg != "" {
		v.Add("senha", "%s", msg)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if err := checkEmailFree(db, in.Email, ""); err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Senha)
	if err != nil {
		return nil, err
	}
	u := models.Usuario{
		Nome:      in.Nome,
		Email:     in.Email,
		SenhaHash: hash,
		Perfil:    in.Perfil,
		Ativo:     in.Ativo == nil || *in.Ativo,
	}
	u.Touch(time.Now())
	if err := db.Create(&u).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("já existe usuário com este e-mail")
		}
		return nil, fmt.Errorf("insert usuario: %w", err)
	}
	return &u, nil
}

// UpdateUsuario altera um usuário. actor é quem está logado: ele não pode se
// desativar nem tirar o próprio perfil de admin, e o último admin ativo nunca é rebaixado.
func UpdateUsuario(db *gorm.DB, actor models.Usuario, id string, in UsuarioInput) (*models.Usuario, error) {
	u, err := GetUsuario(db, id)
	if err != nil {
		return nil, err
	}

	in.Nome = tools.CollapseSpaces(in.Nome)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Perfil = strings.ToLower(strings.TrimSpace(in.Perfil))
	if in.Perfil == "" {
		in.Perfil = u.Perfil
	}
	ativo := u.Ativo
	if in.Ativo != nil {
		ativo = *in.Ativo
	}

	v := &Validation{}
	validateUsuario(in, v)
	if in.Senha != "" {
		if msg := tools.CheckPassword(in.Senha); msg != "" {
			v.Add("senha", "%s", msg)
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if err := checkEmailFree(db, in.Email, id); err != nil {
		return nil, err
	}

	losesAdmin := u.IsAdmin() && u.Ativo && (in.Perfil != models.PERFIL_ADMIN || !ativo)
	if losesAdmin {
		if actor.ID == u.ID {
			return nil, BadRequest("você não pode remover o próprio acesso de administrador", nil)
		}
		if err := ensureAnotherAdmin(db, u.ID); err != nil {
			return nil, err
		}
	}

	u.Nome = in.Nome
	u.Email = in.Email
	u.Perfil = in.Perfil
	u.Ativo = ativo
	if in.Senha != "" {
		hash, err := HashPassword(in.Senha)
		if err != nil {
			return nil, err
		}
		u.SenhaHash = hash
	}
	u.Touch(time.Now())
	if err := db.Save(u).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, Conflict("já existe usuário com este e-mail")
		}
		return nil, fmt.Errorf("update usuario: %w", err)
	}
	return u, nil
}

func DeleteUsuario(db *gorm.DB, actor models.Usuario, id string) error {
	u, err := GetUsuario(db, id)
	if err != nil {
		return err
	}
	if actor.ID == u.ID {
		return BadRequest("você não pode excluir o próprio usuário", nil)
	}
	if u.IsAdmin() && u.Ativo {
		if err := ensureAnotherAdmin(db, u.ID); err != nil {
			return err
		}
	}
	if err := db.Where("id = ?", id).Delete(&models.Usuario{}).Error; err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	return nil
}

// ChangePassword troca a senha do próprio usuário conferindo a senha atual.
func ChangePassword(db *gorm.DB, u models.Usuario, atual, nova string) error {
	if !CheckPasswordHash(u.SenhaHash, atual) {
		return BadRequest("senha atual não confere", nil)
	}
	if msg := tools.CheckPassword(nova); msg != "" {
		v := &Validation{}
		v.Add("novaSenha", "%s", msg)
		return v.Err()
	}
	hash, err := HashPassword(nova)
	if err != nil {
		return err
	}
	err = db.Model(&models.Usuario{}).Where("id = ?", u.ID).UpdateColumns(map[string]any{
		"senha_hash":    hash,
		"atualizado_em": time.Now(),
	}).Error
	if err != nil {
		return fmt.Errorf("update senha: %w", err)
	}
	return nil
}

func validateUsuario(in UsuarioInput, v *Validation) {
	if in.Nome == "" {
		v.Add("nome", "nome é obrigatório")
	}
	if !tools.ValidateEmail(in.Email) {
		v.Add("email", "e-mail inválido")
	}
	if !models.IsPerfilValid(in.Perfil) {
		v.Add("perfil", "perfil inválido: %s", in.Perfil)
	}
}

func checkEmailFree(db *gorm.DB, email, selfID string) error {
	dup, err := taken(db, &models.Usuario{}, "email", email, selfID)
	if err != nil {
		return err
	}
	if dup {
		return Conflict("já existe usuário com este e-mail")
	}
	return nil
}

func ensureAnotherAdmin(db *gorm.DB, exceptID string) error {
	var count int
	err := db.Model(&models.Usuario{}).
		Where("perfil = ? AND ativo = ? AND id <> ?", models.PERFIL_ADMIN, true, exceptID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count == 0 {
		return BadRequest("é preciso manter ao menos um administrador ativo", nil)
	}
	return nil
}
