package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated account. Accounts are created by an
// administrator; every bill row is owned by exactly one user.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Bill is one electricity bill row: at most one per (owner, installation,
// reference month), enforced by the energy_bills unique constraint.
type Bill struct {
	ID                    int64            `db:"id" json:"id"`
	UserID                uuid.UUID        `db:"user_id" json:"user_id"`
	Company               string           `db:"company" json:"company"`
	InstallationNumber    string           `db:"installation_number" json:"installation_number"`
	BillClass             string           `db:"bill_class" json:"bill_class"`
	Date                  string           `db:"date" json:"date"`         // reference month, AAAA-MM
	DueDate               *string          `db:"due_date" json:"due_date"` // AAAA-MM-DD, optional
	Cost                  float64          `db:"cost" json:"cost"`
	Consumption           float64          `db:"consumption" json:"consumption"`
	CompensatedEnergyKwh  float64          `db:"compensated_energy_kwh" json:"compensated_energy_kwh"`
	UnitPrice             float64          `db:"unit_price" json:"unit_price"`
	GenerationBalanceKwh  float64          `db:"generation_balance_kwh" json:"generation_balance_kwh"`
	ContractedDiscount    *float64         `db:"contracted_discount" json:"contracted_discount"`
	Paid                  bool             `db:"paid" json:"paid"`
	CompensatedEnergyType CompensationType `db:"compensated_energy_type" json:"compensated_energy_type"`
	CreatedAt             time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time        `db:"updated_at" json:"updated_at"`
}

// ConsumedEnergyValue is consumption times unit price. Computed on every
// read, never stored.
func (b *Bill) ConsumedEnergyValue() float64 {
	return b.Consumption * b.UnitPrice
}

// DiscountedValue applies the contracted discount percentage to the consumed
// energy value. A nil discount counts as zero.
func (b *Bill) DiscountedValue() float64 {
	discount := 0.0
	if b.ContractedDiscount != nil {
		discount = *b.ContractedDiscount
	}
	return b.ConsumedEnergyValue() * (1 - discount/100)
}

// CandidateBill is an unvalidated record produced by the extraction service,
// before normalization and persistence. Field names match the response schema
// handed to the service.
type CandidateBill struct {
	Company              string  `json:"company"`
	InstallationNumber   string  `json:"installationNumber"`
	BillClass            string  `json:"billClass"`
	Date                 string  `json:"date"`
	DueDate              string  `json:"dueDate"`
	Cost                 float64 `json:"cost"`
	Consumption          float64 `json:"consumption"`
	CompensatedEnergyKwh float64 `json:"compensatedEnergyKwh"`
	UnitPrice            float64 `json:"unitPrice"`
	GenerationBalanceKwh float64 `json:"generationBalanceKwh"`
}

// BillDocument records an uploaded bill file archived to object storage.
type BillDocument struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	StorageKey  string    `db:"storage_key" json:"storage_key"`
	Bucket      string    `db:"bucket" json:"bucket"`
	ContentType string    `db:"content_type" json:"content_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// BatchResult accumulates the outcome of one ingestion batch.
type BatchResult struct {
	Added      int `json:"added"`
	Duplicates int `json:"duplicates"`
	Rejected   int `json:"rejected"`
}

// Message renders the batch outcome as the user-facing summary text.
func (r *BatchResult) Message() string {
	msg := ""
	if r.Added > 0 {
		msg += fmt.Sprintf("%d conta(s) adicionada(s).\n", r.Added)
	}
	if r.Duplicates > 0 {
		msg += fmt.Sprintf("%d conta(s) duplicada(s) ignorada(s).\n", r.Duplicates)
	}
	if r.Rejected > 0 {
		msg += fmt.Sprintf("%d conta(s) ignorada(s) por falta de dados.\n", r.Rejected)
	}
	if msg == "" {
		return "Nenhuma conta nova para adicionar."
	}
	return msg[:len(msg)-1]
}

// Summary holds the dashboard aggregates, always derived from the current
// bill set and never persisted.
type Summary struct {
	TotalBills          int     `json:"total_bills"`
	TotalConsumption    float64 `json:"total_consumption"`
	TotalCompensatedKwh float64 `json:"total_compensated_kwh"`
	TotalGenerationKwh  float64 `json:"total_generation_kwh"`
	TotalCost           float64 `json:"total_cost"`
}

// Summarize reduces a bill set to its dashboard aggregates.
func Summarize(bills []Bill) Summary {
	s := Summary{TotalBills: len(bills)}
	for i := range bills {
		s.TotalConsumption += bills[i].Consumption
		s.TotalCompensatedKwh += bills[i].CompensatedEnergyKwh
		s.TotalGenerationKwh += bills[i].GenerationBalanceKwh
		s.TotalCost += bills[i].Cost
	}
	return s
}
