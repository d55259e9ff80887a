package types

import "strconv"

// HistoryEntry is one dated spending record. Entries are immutable once
// written; there is no update or delete path.
type HistoryEntry struct {
	// Username links the entry to a UserRecord. Not enforced by the schema.
	Username string `json:"username" db:"username"`

	// Date is the entry date as the client submitted it.
	Date string `json:"date" db:"date"`

	// Amount is the spent amount in whole currency units.
	Amount Integer `json:"amount" db:"amount"`

	// Category is a free-form spending category.
	Category string `json:"category" db:"category"`

	// Description is a free-form note.
	Description string `json:"description" db:"description"`
}

// Field returns the string form of the named filterable field and whether
// the entry has such a field. Field names follow the wire names.
func (e HistoryEntry) Field(name string) (string, bool) {
	switch name {
	case "username":
		return e.Username, true
	case "date":
		return e.Date, true
	case "amount":
		return strconv.FormatInt(int64(e.Amount), 10), true
	case "category":
		return e.Category, true
	case "description":
		return e.Description, true
	default:
		return "", false
	}
}
