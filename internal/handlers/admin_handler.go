package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"wordletracker/internal/models"
	"wordletracker/internal/parser"
	"wordletracker/internal/security"
	"wordletracker/internal/service"
)

// AdminHandler serves the password-protected write endpoints
type AdminHandler struct {
	authService      *service.AuthService
	importService    *service.ImportService
	digestService    *service.DigestService
	shareTokenSecret string
	shareTokenTTL    time.Duration
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *service.AuthService, importService *service.ImportService, digestService *service.DigestService, shareTokenSecret string, shareTokenTTL time.Duration) *AdminHandler {
	return &AdminHandler{
		authService:      authService,
		importService:    importService,
		digestService:    digestService,
		shareTokenSecret: shareTokenSecret,
		shareTokenTTL:    shareTokenTTL,
	}
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", nil)
		return
	}

	session, err := h.authService.Login(req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrAdminDisabled) {
		respondWithError(w, http.StatusUnauthorized, "invalid password", "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Login failed", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Logout handles POST /admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(security.SessionCookieName); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			respondWithError(w, http.StatusInternalServerError, "internal server error", "Logout failed", err)
			return
		}
	}
	http.SetCookie(w, security.CreateDeleteCookie(r))
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Import handles POST /admin/import. The body carries either one message
// or a batch; a batch reports per-message outcomes instead of stopping at
// the first bad message.
func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message  string   `json:"message"`
		Messages []string `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", nil)
		return
	}

	if len(req.Messages) > 0 {
		outcomes := h.importService.ImportBatch(req.Messages)
		respondJSON(w, http.StatusOK, map[string]interface{}{"outcomes": outcomes})
		return
	}

	if req.Message == "" {
		respondWithError(w, http.StatusBadRequest, "message is required", "", nil)
		return
	}

	summary, err := h.importService.ImportMessage(req.Message)
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		respondWithError(w, http.StatusUnprocessableEntity, parseErr.Error(), "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Import failed", err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// DeleteDay handles DELETE /admin/days/{day}
func (h *AdminHandler) DeleteDay(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(r.PathValue("day"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid day number", "", nil)
		return
	}

	err = h.importService.DeleteDay(day)
	if errors.Is(err, models.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "day not found", "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Delete day failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Reset handles POST /admin/reset, wiping the entire store. The client is
// expected to confirm before calling.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.importService.Reset(); err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Reset failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateShareLink handles POST /admin/share, minting a read-only token
func (h *AdminHandler) CreateShareLink(w http.ResponseWriter, r *http.Request) {
	token, err := security.MintShareToken(h.shareTokenSecret, h.shareTokenTTL)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "share links not configured", "Share token minting failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"token": token,
		"path":  "/share/" + token,
	})
}

// SendDigest handles POST /admin/digest, emailing the weekly summary
func (h *AdminHandler) SendDigest(w http.ResponseWriter, r *http.Request) {
	err := h.digestService.SendWeeklyDigest(r.Context())
	if errors.Is(err, service.ErrDigestDisabled) {
		respondWithError(w, http.StatusConflict, "digest emails not configured", "", nil)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "internal server error", "Digest send failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
