package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"salesboard/internal/core"
	"salesboard/internal/store"
)

type (
	authRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	authResponse struct {
		Success bool   `json:"success"`
		Name    string `json:"name"`
		Token   string `json:"token"`
	}

	saleRequest struct {
		Date        string      `json:"date"`
		Type        string      `json:"type"`
		Amount      json.Number `json:"amount"`
		Description string      `json:"description"`
	}
)

// handleAuth verifies a username/password pair and hands out a session
// token for subsequent writes. Unknown users and wrong passwords get the
// same response.
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.ErrorContext(r.Context(), "Malformed login request", "error", err)
		errorJSON(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	name, err := s.creds.Authenticate(req.Username, req.Password)
	if err != nil {
		slog.WarnContext(r.Context(), "Login rejected", "username", req.Username)
		errorJSON(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.tokens.Issue(name)
	if err != nil {
		slog.ErrorContext(r.Context(), "Token issue failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	slog.InfoContext(r.Context(), "Login succeeded", "username", req.Username, "name", name)
	writeJSON(w, http.StatusOK, authResponse{Success: true, Name: name, Token: token})
}

func (s *Server) handleSales(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listSales(w, r)
	case http.MethodPost:
		s.createSale(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// listSales returns every stored transaction, newest first. A failing
// or corrupt store is logged and presented as an empty dashboard rather
// than an error page.
func (s *Server) listSales(w http.ResponseWriter, r *http.Request) {
	sales, err := s.lister.ListAll(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrCorrupt) {
			slog.ErrorContext(r.Context(), "Sales data corrupt, serving empty list", "error", err)
		} else {
			slog.ErrorContext(r.Context(), "Failed to read sales", "error", err)
		}
		sales = nil
	}
	if sales == nil {
		sales = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, map[string][]core.Transaction{"sales": sales})
}

// createSale records a new transaction. The caller must present a valid
// session token; addedBy is taken from the token, never from the body.
func (s *Server) createSale(w http.ResponseWriter, r *http.Request) {
	name, err := s.tokens.Verify(bearerToken(r))
	if err != nil {
		slog.WarnContext(r.Context(), "Write rejected, invalid session token", "error", err)
		errorJSON(w, http.StatusUnauthorized, "Invalid or missing token")
		return
	}

	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.ErrorContext(r.Context(), "Malformed sale request", "error", err)
		errorJSON(w, http.StatusInternalServerError, "Failed to save transaction")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount.String())
	if err != nil {
		errorJSON(w, http.StatusBadRequest, core.ErrInvalidAmount.Error())
		return
	}

	in := core.TransactionInput{
		Date:        req.Date,
		Type:        core.TransactionType(req.Type),
		Amount:      core.Money{Cents: cents},
		Description: sanitizeInput(req.Description),
		AddedBy:     name,
	}
	if err := in.Validate(); err != nil {
		slog.WarnContext(r.Context(), "Sale rejected", "error", err, "added_by", name)
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := s.appender.Append(r.Context(), in)
	if err != nil {
		slog.ErrorContext(r.Context(), "Sale append error", "error", err, "added_by", name, "amount_cents", cents)
		errorJSON(w, http.StatusInternalServerError, "Failed to save transaction")
		return
	}

	// Export is best effort; the record is durable either way.
	if s.events != nil {
		if err := s.events.PublishTransactionCreated(r.Context(), tx.ID); err != nil {
			slog.ErrorContext(r.Context(), "Failed to publish created event", "error", err, "id", tx.ID)
		}
	}

	slog.InfoContext(r.Context(), "Sale recorded",
		"id", tx.ID,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents,
		"added_by", tx.AddedBy)
	writeJSON(w, http.StatusCreated, map[string]core.Transaction{"sale": tx})
}

// handleSummary serves the derived per-month aggregation. It is computed
// from the stored transactions on every request; nothing is persisted.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sales, err := s.lister.ListAll(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to read sales for summary", "error", err)
		sales = nil
	}

	summary := core.Aggregate(sales)
	if summary == nil {
		summary = []core.MonthlySummary{}
	}
	writeJSON(w, http.StatusOK, map[string][]core.MonthlySummary{"summary": summary})
}
