package models

// TokenEntry is one append-only record per token-affecting event. The user
// balance stays a counter for cheap reads, but every mutation writes an
// entry in the same transaction so the balance is auditable and
// recomputable from the ledger.
type TokenEntry struct {
	BaseModel
	UserID        string           `gorm:"not null;index" json:"user_id"`
	JobID         *string          `gorm:"index" json:"job_id,omitempty"`
	ApplicationID *string          `gorm:"index" json:"application_id,omitempty"`
	Reason        TokenEntryReason `gorm:"type:varchar(20);not null" json:"reason"`
	Delta         int              `gorm:"not null" json:"delta"`
	BalanceAfter  int              `gorm:"not null" json:"balance_after"`
}
