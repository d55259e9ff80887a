package services

import (
	"strings"

	"github.com/spendify/apiserver/types"
)

// HistoryQuery selects spending entries for one user. Username is matched
// exactly; every entry in Fields is matched as a case-sensitive substring
// of the entry field's string form. Keys that name no entry field are
// ignored. The loose substring semantics are what the shipped browser
// client relies on: filtering category "foo" matches category "food-foo-bar".
type HistoryQuery struct {
	Username string
	Fields   map[string]string
}

// FilterHistory returns the entries matching the query, preserving the
// input order.
func FilterHistory(history []types.HistoryEntry, query HistoryQuery) []types.HistoryEntry {
	matched := []types.HistoryEntry{}
	for _, entry := range history {
		if entry.Username != query.Username {
			continue
		}
		if matchesFields(entry, query.Fields) {
			matched = append(matched, entry)
		}
	}
	return matched
}

func matchesFields(entry types.HistoryEntry, fields map[string]string) bool {
	for key, want := range fields {
		value, ok := entry.Field(key)
		if !ok {
			continue
		}
		if !strings.Contains(value, want) {
			return false
		}
	}
	return true
}
