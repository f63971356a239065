package services

import (
	"fmt"
	"time"

	"cadastro/models"

	"github.com/jinzhu/gorm"
)

// withTx executa fn dentro de begin/commit. Qualquer erro (ou panic) faz rollback
// de tudo que fn gravou.
func withTx(db *gorm.DB, fn func(tx *gorm.DB) error) (err error) {
	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// parentOnly desliga o salvamento automático de associações: filhos são gravados
// explicitamente por replaceChildren.
func parentOnly(tx *gorm.DB) *gorm.DB {
	return tx.Set("gorm:save_associations", false)
}

// replaceChildren apaga todas as linhas filhas de parentID e reinsere items na ordem recebida.
func replaceChildren[T any, PT interface {
	*T
	models.Child
}](tx *gorm.DB, fk string, parentID string, items []T, now time.Time) error {
	var zero T
	if err := tx.Where(fk+" = ?", parentID).Delete(PT(&zero)).Error; err != nil {
		return fmt.Errorf("delete children: %w", err)
	}
	for i := range items {
		PT(&items[i]).Attach(parentID, i, now)
		if err := tx.Create(PT(&items[i])).Error; err != nil {
			return fmt.Errorf("insert child %d: %w", i, err)
		}
	}
	return nil
}

// deleteChildren apaga as linhas de cada modelo filho ligadas a parentID.
func deleteChildren(tx *gorm.DB, fk string, parentID string, children ...any) error {
	for _, child := range children {
		if err := tx.Where(fk+" = ?", parentID).Delete(child).Error; err != nil {
			return fmt.Errorf("delete children: %w", err)
		}
	}
	return nil
}

func byOrdem(db *gorm.DB) *gorm.DB {
	return db.Order("ordem asc")
}
