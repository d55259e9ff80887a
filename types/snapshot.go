package types

// Snapshot is the per-request in-memory copy of the persisted tables.
// It is built at the start of request handling, owned exclusively by that
// request, and discarded when the request completes. Slice order matches
// the order rows came back from the store.
type Snapshot struct {
	Users   []UserRecord
	History []HistoryEntry
}
