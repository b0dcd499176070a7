package http

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/badoux/checkmail"

	"smartspend/internal/domain/user"
	"smartspend/internal/shared/auth"
)

type AuthHandler struct {
	userRepo      user.Repository
	oauthProvider auth.OAuthProvider
	jwt           *auth.JWT
}

func NewAuthHandler(userRepo user.Repository, oauthProvider auth.OAuthProvider, jwt *auth.JWT) *AuthHandler {
	return &AuthHandler{
		userRepo:      userRepo,
		oauthProvider: oauthProvider,
		jwt:           jwt,
	}
}

// Request/Response DTOs

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleTokenRequest struct {
	Token string `json:"token"`
}

type AuthURLResponse struct {
	URL string `json:"url"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// HandleRegister creates a new password-based account
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		http.Error(w, "Email, password, and name are required", http.StatusBadRequest)
		return
	}
	if err := checkmail.ValidateFormat(req.Email); err != nil {
		http.Error(w, "Invalid email address", http.StatusBadRequest)
		return
	}
	if len(req.Password) < auth.MinPasswordLength {
		http.Error(w, fmt.Sprintf("Password must be at least %d characters", auth.MinPasswordLength), http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	existing, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Printf("Error checking existing user: %v", err)
		http.Error(w, "Failed to register", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, "User with this email already exists", http.StatusConflict)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password during registration: %v", err)
		http.Error(w, "Failed to register", http.StatusInternalServerError)
		return
	}

	userModel, err := h.userRepo.Create(ctx, &user.CreateParams{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &passwordHash,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			http.Error(w, "User with this email already exists", http.StatusConflict)
			return
		}
		log.Printf("Error creating user: %v", err)
		http.Error(w, "Failed to register", http.StatusInternalServerError)
		return
	}

	h.issueToken(w, r, userModel, http.StatusCreated)
}

// HandleLogin authenticates a user with email and password
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	userModel, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Printf("Error getting user by email: %v", err)
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}
	if userModel == nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	if userModel.PasswordHash == nil {
		http.Error(w, "This account uses Google sign-in", http.StatusBadRequest)
		return
	}

	if err := auth.VerifyPassword(*userModel.PasswordHash, req.Password); err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	h.issueToken(w, r, userModel, http.StatusOK)
}

// HandleLogout clears the auth cookie
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	secure := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}

// HandleGoogleToken signs a user in with a Google access token obtained
// by a native client, creating the account on first sign-in.
func (h *AuthHandler) HandleGoogleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GoogleTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Token == "" {
		http.Error(w, "Token is required", http.StatusBadRequest)
		return
	}

	userInfo, err := h.oauthProvider.GetUserInfo(r.Context(), req.Token)
	if err != nil {
		log.Printf("Google token sign-in failed: %v", err)
		http.Error(w, "Invalid Google token", http.StatusUnauthorized)
		return
	}

	userModel, err := h.findOrCreateOAuthUser(r, userInfo)
	if err != nil {
		log.Printf("Error resolving Google user: %v", err)
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}

	h.issueToken(w, r, userModel, http.StatusOK)
}

// HandleAuthURL generates the OAuth authorization URL (for web)
func (h *AuthHandler) HandleAuthURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, err := generateState()
	if err != nil {
		log.Printf("Error generating OAuth state: %v", err)
		http.Error(w, "Failed to generate state", http.StatusInternalServerError)
		return
	}

	authURL := h.oauthProvider.GetAuthURL(state)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AuthURLResponse{URL: authURL})
}

// HandleCallback processes the OAuth callback for web (issues a JWT and sets cookie)
func (h *AuthHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := r.URL.Query().Get("code")
	oauthError := r.URL.Query().Get("error")

	if oauthError != "" {
		http.Error(w, fmt.Sprintf("OAuth error: %s", oauthError), http.StatusBadRequest)
		return
	}
	if code == "" {
		http.Error(w, "Code is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	token, err := h.oauthProvider.ExchangeCode(ctx, code)
	if err != nil {
		http.Error(w, "Failed to exchange code", http.StatusBadRequest)
		return
	}

	userInfo, err := h.oauthProvider.GetUserInfo(ctx, token.AccessToken)
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusBadRequest)
		return
	}

	userModel, err := h.findOrCreateOAuthUser(r, userInfo)
	if err != nil {
		log.Printf("Error resolving Google user: %v", err)
		http.Error(w, "Failed to sign in", http.StatusInternalServerError)
		return
	}

	jwtToken, err := h.jwt.Generate(userModel.ID, userModel.Email)
	if err != nil {
		log.Printf("Error generating JWT for user %d: %v", userModel.ID, err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	setAuthCookie(w, r, jwtToken)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) findOrCreateOAuthUser(r *http.Request, info *auth.OAuthUserInfo) (*user.User, error) {
	ctx := r.Context()

	userModel, err := h.userRepo.GetByOAuth(ctx, "google", info.ID)
	if err != nil {
		return nil, err
	}
	if userModel != nil {
		return userModel, nil
	}

	// Link to an existing password account with the same email rather
	// than creating a duplicate.
	userModel, err = h.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}
	if userModel != nil {
		return userModel, nil
	}

	provider := "google"
	params := &user.CreateParams{
		Email:         info.Email,
		Name:          info.Name,
		OAuthProvider: &provider,
		OAuthID:       &info.ID,
	}
	if info.AvatarURL != "" {
		params.AvatarURL = &info.AvatarURL
	}

	return h.userRepo.Create(ctx, params)
}

func (h *AuthHandler) issueToken(w http.ResponseWriter, r *http.Request, userModel *user.User, status int) {
	token, err := h.jwt.Generate(userModel.ID, userModel.Email)
	if err != nil {
		log.Printf("Error generating JWT for user %d: %v", userModel.ID, err)
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	setAuthCookie(w, r, token)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(AuthResponse{
		Token: token,
		User:  userModel,
	})
}

// setAuthCookie sets the JWT as an HttpOnly cookie
func setAuthCookie(w http.ResponseWriter, r *http.Request, token string) {
	// Only set Secure flag when actually using HTTPS
	secure := r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   24 * 60 * 60,
	})
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
