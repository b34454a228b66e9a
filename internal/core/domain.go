package core

// Expense is a single expense record. Entries are immutable once persisted;
// the collection only ever grows by appending.
type Expense struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"`
	Amount        float64  `json:"amount"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	PaymentMethod string   `json:"payment_method"`
	Tags          []string `json:"tags"`
}

// Settings holds a user's preferences. They are stored alongside the expense
// document but never enforced against entries.
type Settings struct {
	Currency   string   `json:"currency"`
	Categories []string `json:"categories"`
}

// DefaultSettings returns the settings applied when a user has no settings
// document yet.
func DefaultSettings() Settings {
	return Settings{
		Currency:   "USD",
		Categories: []string{"Food", "Transport", "Bills", "Entertainment", "Health", "Other"},
	}
}
