package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/spendify/apiserver/internal/services"
	"github.com/spendify/apiserver/types"
)

// LedgerHandler provides the spending-entry endpoints.
type LedgerHandler struct {
	ledger    *services.LedgerService
	snapshots services.Snapshotter
}

func NewLedgerHandler(ledger *services.LedgerService, snapshots services.Snapshotter) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, snapshots: snapshots}
}

// LedgerRouter registers ledger routes on the given router.
func LedgerRouter(r chi.Router, ledger *services.LedgerService, snapshots services.Snapshotter) {
	handler := NewLedgerHandler(ledger, snapshots)

	r.Post("/addEntry", handler.AddEntry)
	r.Post("/historyEntries", handler.HistoryEntries)
}

type AddEntryRequest struct {
	Username    string         `json:"username"`
	Date        string         `json:"date"`
	Amount      *types.Integer `json:"amount"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
}

// AddEntry persists a new spending entry. Username, date, and amount are
// required; the rejection message is fixed wire format.
func (h *LedgerHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	var req AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Date == "" || req.Amount == nil {
		writeError(w, http.StatusBadRequest, "User not specified for add entry")
		return
	}

	entry := types.HistoryEntry{
		Username:    req.Username,
		Date:        req.Date,
		Amount:      *req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := h.ledger.AddEntry(r.Context(), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add entry")
		return
	}

	writeMessage(w, http.StatusOK, "Entry added.")
}

// HistoryEntries filters the request snapshot's history for the query's
// user. The response is always a JSON array; no matches is an empty array,
// not an error envelope.
func (h *LedgerHandler) HistoryEntries(w http.ResponseWriter, r *http.Request) {
	query, err := parseHistoryQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := h.snapshots.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	writeJSON(w, http.StatusOK, h.ledger.History(snap, query))
}

// parseHistoryQuery accepts an open set of filter keys, so the body decodes
// into a map rather than a struct. Values keep the string form the filter
// compares against: numbers stay as their literal text.
func parseHistoryQuery(r *http.Request) (services.HistoryQuery, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	raw := map[string]any{}
	if err := decoder.Decode(&raw); err != nil {
		return services.HistoryQuery{}, err
	}

	query := services.HistoryQuery{Fields: map[string]string{}}
	for key, value := range raw {
		if key == "username" {
			if s, ok := value.(string); ok {
				query.Username = s
			}
			continue
		}
		query.Fields[key] = stringifyFilterValue(value)
	}
	return query, nil
}

func stringifyFilterValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return "null"
	default:
		return fmt.Sprint(v)
	}
}
