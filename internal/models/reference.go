package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is shared reference data for classifying transactions.
// Categories are not cascade targets of account deletion.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Budget sets a monthly spending limit for a category. Budgets key off
// category, not account, so account deletion leaves them alone.
type Budget struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	CategoryID   string          `json:"category_id"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Event is a dated occasion with an optional spending budget
// (birthday, holiday, etc.).
type Event struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Date      time.Time       `json:"date"`
	Budget    decimal.Decimal `json:"budget"`
	CreatedAt time.Time       `json:"created_at"`
}
