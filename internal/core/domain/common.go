package domain

import "time"

// EntityKind names one of the soft-deletable entity collections.
type EntityKind string

const (
	KindAccount     EntityKind = "account"
	KindTransaction EntityKind = "transaction"
	KindBudget      EntityKind = "budget"
	KindCategory    EntityKind = "category"
)

// ParseEntityKind validates a kind string coming from the outside (route
// parameters, persisted payloads).
func ParseEntityKind(s string) (EntityKind, bool) {
	switch EntityKind(s) {
	case KindAccount, KindTransaction, KindBudget, KindCategory:
		return EntityKind(s), true
	}
	return "", false
}

// BaseEntity holds the fields shared by every ledger entity: a store-unique
// identifier that sorts by creation order, and the soft-delete flag.
type BaseEntity struct {
	ID            string    `json:"id"`
	IsDeleted     bool      `json:"isDeleted,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Snapshot is a copy of all active (non-deleted) records, taken under the
// store lock. Every derived computation is a pure function of a Snapshot.
type Snapshot struct {
	Accounts     []Account
	Transactions []Transaction
	Budgets      []Budget
	Categories   []Category
}
