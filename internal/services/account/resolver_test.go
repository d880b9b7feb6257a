package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jcallahan/pocketledger/internal/models"
)

func makeTransfer(amount string, date time.Time) models.Transfer {
	return models.Transfer{
		ID:            "tr-1",
		SourceID:      "acc-src",
		DestinationID: "acc-dst",
		Amount:        dec(amount),
		Date:          date,
	}
}

func TestIsSourceLeg(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tr := makeTransfer("100.00", day)

	tests := []struct {
		name   string
		tx     models.Transaction
		strict bool
		want   bool
	}{
		{
			name: "exact match with description hint",
			tx: models.Transaction{
				AccountID: "acc-src", Amount: dec("-100.00"), Date: day,
				Description: "Transfer to Golf Club Bar Card", CategoryID: "cat-1",
			},
			want: true,
		},
		{
			name: "no hint but category absent",
			tx: models.Transaction{
				AccountID: "acc-src", Amount: dec("-100.00"), Date: day,
				Description: "Moved money",
			},
			want: true,
		},
		{
			name: "no hint and category present",
			tx: models.Transaction{
				AccountID: "acc-src", Amount: dec("-100.00"), Date: day,
				Description: "Groceries", CategoryID: "cat-1",
			},
			want: false,
		},
		{
			name: "hint is case-insensitive",
			tx: models.Transaction{
				AccountID: "acc-src", Amount: dec("-100.00"), Date: day,
				Description: "TRANSFER out", CategoryID: "cat-1",
			},
			want: true,
		},
		{
			name: "wrong account",
			tx: models.Transaction{
				AccountID: "acc-other", Amount: dec("-100.00"), Date: day,
				Description: "Transfer out",
			},
			want: false,
		},
		{
			name: "amount off by a penny",
			tx: models.Transaction{
				AccountID: "acc-src", Amount: dec("-100.01"), Date: day,
				Description: "Transfer out",
			},
			want: false,
		},
		{
			name: "positive amount never matches the debit side",
			tx: models.Transaction{
				AccountID: "acc-src", Amount: dec("100.00"), Date: day,
				Description: "Transfer out",
			},
			want: false,
		},
		{
			name: "different calendar day",
			tx: models.Transaction{
				AccountID: "acc-src", Amount: dec("-100.00"), Date: day.AddDate(0, 0, 1),
				Description: "Transfer out",
			},
			want: false,
		},
		{
			name: "same day different time still matches",
			tx: models.Transaction{
				AccountID: "acc-src", Amount: dec("-100.00"),
				Date:        time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC),
				Description: "Transfer out",
			},
			want: true,
		},
		{
			name: "strict rejects category-absent rows without the hint",
			tx: models.Transaction{
				AccountID: "acc-src", Amount: dec("-100.00"), Date: day,
				Description: "Moved money",
			},
			strict: true,
			want:   false,
		},
		{
			name: "strict accepts the description hint",
			tx: models.Transaction{
				AccountID: "acc-src", Amount: dec("-100.00"), Date: day,
				Description: "Transfer to card", CategoryID: "cat-1",
			},
			strict: true,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSourceLeg(tt.tx, tr, tt.strict))
		})
	}
}

func TestIsDestinationLeg(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tr := makeTransfer("100.00", day)

	tests := []struct {
		name string
		tx   models.Transaction
		want bool
	}{
		{
			name: "top up wording counts as a hint",
			tx: models.Transaction{
				AccountID: "acc-dst", Amount: dec("100.00"), Date: day,
				Description: "Top up from Current Account", CategoryID: "cat-1",
			},
			want: true,
		},
		{
			name: "transfer wording counts as a hint",
			tx: models.Transaction{
				AccountID: "acc-dst", Amount: dec("100.00"), Date: day,
				Description: "Transfer from Current Account", CategoryID: "cat-1",
			},
			want: true,
		},
		{
			name: "negative amount never matches the credit side",
			tx: models.Transaction{
				AccountID: "acc-dst", Amount: dec("-100.00"), Date: day,
				Description: "Top up",
			},
			want: false,
		},
		{
			name: "source account does not match the credit side",
			tx: models.Transaction{
				AccountID: "acc-src", Amount: dec("100.00"), Date: day,
				Description: "Top up",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDestinationLeg(tt.tx, tr, false))
		})
	}
}

func TestResolveLegs(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tr := makeTransfer("100.00", day)

	debit := models.Transaction{
		ID: "t1", AccountID: "acc-src", Amount: dec("-100.00"), Date: day,
		Description: "Transfer to Golf Club Bar Card",
	}
	credit := models.Transaction{
		ID: "t2", AccountID: "acc-dst", Amount: dec("100.00"), Date: day,
		Description: "Top up from Current Account",
	}
	unrelated := models.Transaction{
		ID: "t3", AccountID: "acc-dst", Amount: dec("-15.50"), Date: day,
		Description: "Drinks", CategoryID: "cat-drinks",
	}

	t.Run("both legs found", func(t *testing.T) {
		legs := resolveLegs(tr, []models.Transaction{unrelated, credit, debit}, false)
		assert.ElementsMatch(t, []string{"t1", "t2"}, legs)
	})

	t.Run("missing credit leg yields one id", func(t *testing.T) {
		legs := resolveLegs(tr, []models.Transaction{debit, unrelated}, false)
		assert.Equal(t, []string{"t1"}, legs)
	})

	t.Run("no candidates yields none", func(t *testing.T) {
		legs := resolveLegs(tr, []models.Transaction{unrelated}, false)
		assert.Empty(t, legs)
	})

	t.Run("at most one id per side", func(t *testing.T) {
		dupe := debit
		dupe.ID = "t1-dupe"
		legs := resolveLegs(tr, []models.Transaction{debit, dupe, credit}, false)
		assert.Len(t, legs, 2)
	})
}
