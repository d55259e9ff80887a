package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spendify/apiserver/internal/services"
	"github.com/spendify/apiserver/internal/store"
	"github.com/spendify/apiserver/types"
)

// AccountHandler provides the registration and login endpoints.
type AccountHandler struct {
	accounts  *services.AccountService
	snapshots services.Snapshotter
}

func NewAccountHandler(accounts *services.AccountService, snapshots services.Snapshotter) *AccountHandler {
	return &AccountHandler{accounts: accounts, snapshots: snapshots}
}

// AccountRouter registers account routes on the given router. The paths are
// the ones the shipped browser client calls and cannot be renamed.
func AccountRouter(r chi.Router, accounts *services.AccountService, snapshots services.Snapshotter) {
	handler := NewAccountHandler(accounts, snapshots)

	r.Post("/registerUser", handler.RegisterUser)
	r.Post("/loginUser", handler.LoginUser)
}

type RegisterRequest struct {
	Username      string        `json:"username"`
	Password      string        `json:"password"`
	Realname      string        `json:"realname"`
	Address       string        `json:"address"`
	AccountNumber types.Integer `json:"accountNumber"`
	RoutingNumber types.Integer `json:"routingNumber"`
	BankUsername  string        `json:"bankUsername"`
	BankPassword  string        `json:"bankPassword"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the stored banking profile on successful login.
type LoginResponse struct {
	Error         bool          `json:"error"`
	Realname      string        `json:"realname"`
	Address       string        `json:"address"`
	AccountNumber types.Integer `json:"accountNumber"`
	RoutingNumber types.Integer `json:"routingNumber"`
	BankUsername  string        `json:"bankUsername"`
	BankPassword  string        `json:"bankPassword"`
}

// RegisterUser creates a new account. Every registered username is unique:
// a duplicate is rejected with a Conflict envelope naming the username.
func (h *AccountHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	snap, err := h.snapshots.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	user := types.UserRecord{
		Username:      req.Username,
		Realname:      req.Realname,
		Address:       req.Address,
		AccountNumber: req.AccountNumber,
		RoutingNumber: req.RoutingNumber,
		BankUsername:  req.BankUsername,
		BankPassword:  req.BankPassword,
	}

	if err := h.accounts.Register(r.Context(), snap, user, req.Password); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, fmt.Sprintf("Username %s already in database.", req.Username))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	writeMessage(w, http.StatusOK, "Registered user.")
}

// LoginUser verifies credentials against the snapshot. The success payload
// echoes the profile fields of the stored record, not the request: clients
// must not be able to reflect arbitrary data back as if it were authoritative.
func (h *AccountHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := h.snapshots.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	user, err := h.accounts.Login(snap, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, fmt.Sprintf("User %s not in database.", req.Username))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Error:         false,
		Realname:      user.Realname,
		Address:       user.Address,
		AccountNumber: user.AccountNumber,
		RoutingNumber: user.RoutingNumber,
		BankUsername:  user.BankUsername,
		BankPassword:  user.BankPassword,
	})
}
