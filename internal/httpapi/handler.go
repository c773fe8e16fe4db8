package httpapi

import (
	"encoding/json"
	"errors"
	"expvar"
	"net/http"
	"strings"

	"storefront/api-service/internal/models"
	"storefront/api-service/internal/store"
	"storefront/api-service/internal/token"
	"storefront/api-service/internal/validate"
)

type Handler struct {
	store         store.Store
	tokens        *token.Service
	authLimiter   Limiter
	secureCookies bool
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authData struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// sessionResponse always carries an explicit data field; "no active session"
// is data:null, not an error.
type sessionResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func NewHandler(store store.Store, tokens *token.Service, authLimiter Limiter, secureCookies bool) *Handler {
	return &Handler{store: store, tokens: tokens, authLimiter: authLimiter, secureCookies: secureCookies}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", h.handleRegister)
	mux.HandleFunc("/api/auth/login", h.handleLogin)
	mux.HandleFunc("/api/auth/logout", h.handleLogout)
	mux.HandleFunc("/api/auth/session", h.handleSession)
	mux.HandleFunc("/api/products", h.handleProducts)
	mux.HandleFunc("/api/products/", h.handleProduct)
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/debug/vars", expvar.Handler())
	return mux
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !h.allowAuthRequest(w, r, "register-", "Too many registration attempts. Please try again later.") {
		return
	}

	var req registerRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	email := validate.Sanitize(strings.ToLower(req.Email))
	firstName := validate.Sanitize(req.FirstName)
	lastName := validate.Sanitize(req.LastName)

	// A whitespace-only email sanitizes to "" and fails the format check; names
	// that sanitize to nothing are treated as missing.
	if firstName == "" || lastName == "" {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if !validate.Email(email) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if ok, problems := validate.Password(req.Password); !ok {
		writeError(w, http.StatusBadRequest, strings.Join(problems, ", "))
		return
	}

	user, err := h.store.CreateUser(r.Context(), store.NewUser{
		Email:     email,
		Password:  req.Password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "User already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	tok, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.setAuthCookie(w, tok)
	writeData(w, http.StatusCreated, authData{User: user, Token: tok})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !h.allowAuthRequest(w, r, "login-", "Too many login attempts. Please try again later.") {
		return
	}

	var req loginRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	email := validate.Sanitize(strings.ToLower(req.Email))
	if !validate.Email(email) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	// Unknown email and wrong password take the same path through the store,
	// so the response cannot be used to enumerate accounts.
	user, err := h.store.Authenticate(r.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	tok, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.setAuthCookie(w, tok)
	writeData(w, http.StatusOK, authData{User: user, Token: tok})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if cookie, err := r.Cookie(authCookieName); err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	// The cookie is cleared; the token value itself stays valid until expiry.
	h.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: "Logged out successfully"})
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	cookie, err := r.Cookie(authCookieName)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusOK, sessionResponse{Success: true, Data: nil})
		return
	}
	claims, err := h.tokens.Verify(cookie.Value)
	if err != nil {
		writeJSON(w, http.StatusOK, sessionResponse{Success: true, Data: nil})
		return
	}
	user, err := h.store.GetUser(r.Context(), claims.UserID)
	if err != nil {
		writeJSON(w, http.StatusOK, sessionResponse{Success: true, Data: nil})
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Success: true, Data: user})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) allowAuthRequest(w http.ResponseWriter, r *http.Request, keyPrefix, message string) bool {
	allowed, err := h.authLimiter.Allow(r.Context(), keyPrefix+clientIP(r))
	if err != nil {
		return true
	}
	if !allowed {
		writeError(w, http.StatusTooManyRequests, message)
		return false
	}
	return true
}

func (h *Handler) setAuthCookie(w http.ResponseWriter, tok string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   authCookieMaxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

// decodeRequest parses a JSON body and fails closed on unknown fields or
// malformed input.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return false
	}
	return true
}
