package repositories

import (
	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"gorm.io/gorm"
)

// TokenEntryRepository writes the append-only token ledger. Entries are
// created in the same transaction as the balance change they record.
type TokenEntryRepository struct{}

func NewTokenEntryRepository() *TokenEntryRepository {
	return &TokenEntryRepository{}
}

func (r *TokenEntryRepository) Append(db *gorm.DB, entry *models.TokenEntry) error {
	return db.Create(entry).Error
}

func (r *TokenEntryRepository) ListByUser(db *gorm.DB, userID string, limit, offset int) ([]models.TokenEntry, error) {
	var entries []models.TokenEntry
	q := db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&entries).Error
	return entries, err
}
