package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/rocketscienceinc/squares-backend/internal/config"
	"github.com/rocketscienceinc/squares-backend/internal/entity"
	"github.com/rocketscienceinc/squares-backend/internal/pkg"
)

const urlUserInfo = "https://www.googleapis.com/oauth2/v2/userinfo"

type userUseCase interface {
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
}

type authHandler struct {
	logger *slog.Logger

	oauthConfig *oauth2.Config

	auth authService
	user userUseCase
}

func newAuthHandler(logger *slog.Logger, conf *config.Config, auth authService, user userUseCase) *authHandler {
	oauthConfig := &oauth2.Config{
		ClientID:     conf.GoogleOAuth.ClientID,
		ClientSecret: conf.GoogleOAuth.ClientSecret,
		RedirectURL:  conf.GoogleOAuth.RedirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email"},
		Endpoint:     google.Endpoint,
	}

	return &authHandler{
		logger:      logger.With("component", "auth"),
		oauthConfig: oauthConfig,
		auth:        auth,
		user:        user,
	}
}

func (that *authHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := pkg.GenerateNewSessionID()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauthstate",
		Value:    state,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
	})

	url := that.oauthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (that *authHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stateCookie, err := r.Cookie("oauthstate")
	if err != nil {
		http.Error(w, "State cookie not found", http.StatusBadRequest)
		return
	}

	if stateCookie.Value != r.URL.Query().Get("state") {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not found in request", http.StatusBadRequest)
		return
	}

	token, err := that.oauthConfig.Exchange(ctx, code)
	if err != nil {
		http.Error(w, "Code exchange failed", http.StatusInternalServerError)
		return
	}

	client := that.oauthConfig.Client(ctx, token)
	userInfo, err := getUserInfo(client)
	if err != nil {
		that.logger.Error("failed to get user info", "error", err)
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}

	user, err := that.user.Update(ctx, userInfo)
	if err != nil {
		that.logger.Error("failed to create or update user", "error", err)
		http.Error(w, "Failed to save user", http.StatusInternalServerError)
		return
	}

	tokenString, err := that.auth.GenerateToken(user.Email)
	if err != nil {
		that.logger.Error("failed to generate auth token", "error", err)
		http.Error(w, "Failed to generate auth token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    tokenString,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func getUserInfo(client *http.Client) (*entity.User, error) {
	resp, err := client.Get(urlUserInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to request user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user info: status %d", resp.StatusCode)
	}

	var userInfo entity.User
	if err = json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}

	return &userInfo, nil
}
