package handler

import (
    "context"
    "database/sql"
    "encoding/json"
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "golang.org/x/oauth2"
    "golang.org/x/oauth2/google"

    "github.com/iliyamo/travel-tour-booking/internal/config"
    "github.com/iliyamo/travel-tour-booking/internal/repository"
    "github.com/iliyamo/travel-tour-booking/internal/utils"
)

const googleUserInfoAPI = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleHandler implements sign-in with Google. The account is looked
// up by email and created on first login; Google accounts carry no
// local password.
type GoogleHandler struct {
    Cfg    config.Config
    Users  *repository.UserRepo
    Tokens *repository.TokenRepo
    oauth  *oauth2.Config
}

func NewGoogleHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *GoogleHandler {
    h := &GoogleHandler{Cfg: cfg, Users: u, Tokens: t}
    if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
        h.oauth = &oauth2.Config{
            ClientID:     cfg.GoogleClientID,
            ClientSecret: cfg.GoogleClientSecret,
            RedirectURL:  cfg.GoogleRedirectURL,
            Scopes: []string{
                "https://www.googleapis.com/auth/userinfo.email",
                "https://www.googleapis.com/auth/userinfo.profile",
            },
            Endpoint: google.Endpoint,
        }
    }
    return h
}

// Redirect sends the client to Google's consent screen. The state is a
// random nonce stored in a short-lived cookie and checked on callback.
func (h *GoogleHandler) Redirect(c echo.Context) error {
    if h.oauth == nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "google sign-in not configured"})
    }
    state, err := utils.NewCode("STATE", 16)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "state generation failed"})
    }
    c.SetCookie(&http.Cookie{
        Name:     "oauth_state",
        Value:    state,
        Path:     "/",
        MaxAge:   300,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    })
    return c.Redirect(http.StatusTemporaryRedirect, h.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline))
}

// Callback exchanges the authorization code, loads the Google profile
// and returns a local token pair, creating the account on first login.
func (h *GoogleHandler) Callback(c echo.Context) error {
    if h.oauth == nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "google sign-in not configured"})
    }
    state := c.QueryParam("state")
    cookie, err := c.Cookie("oauth_state")
    if err != nil || state == "" || cookie.Value != state {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "state mismatch"})
    }
    code := c.QueryParam("code")
    if code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    tok, err := h.oauth.Exchange(ctx, code)
    if err != nil {
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "code exchange failed"})
    }

    info, err := h.userInfo(ctx, tok)
    if err != nil {
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "google profile lookup failed"})
    }

    u, err := h.Users.GetByEmail(ctx, info.Email)
    switch {
    case err == sql.ErrNoRows:
        uid, err := h.Users.CreateFromGoogle(ctx, info.Name, info.Email, info.Picture)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
        }
        u, err = h.Users.GetByID(ctx, uid)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
        }
    case err != nil:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
    }
    refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
    }
    if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
    }

    return c.JSON(http.StatusOK, authResp{
        User:    userPart{ID: u.ID, Fullname: u.Fullname, Username: u.Username, Email: u.Email, Role: u.Role, ProfilePicture: u.ProfilePicture},
        Access:  tokenPart{Token: access.Token, Expires: access.Exp},
        Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
    })
}

type googleProfile struct {
    Email   string
    Name    string
    Picture string
}

func (h *GoogleHandler) userInfo(ctx context.Context, tok *oauth2.Token) (*googleProfile, error) {
    client := h.oauth.Client(ctx, tok)
    resp, err := client.Get(googleUserInfoAPI)
    if err != nil {
        return nil, fmt.Errorf("get user info: %w", err)
    }
    defer resp.Body.Close()

    if resp.StatusCode != http.StatusOK {
        return nil, fmt.Errorf("google api error: %s", resp.Status)
    }

    var user struct {
        Email         string `json:"email"`
        Name          string `json:"name"`
        Picture       string `json:"picture"`
        VerifiedEmail bool   `json:"verified_email"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
        return nil, fmt.Errorf("decode user info: %w", err)
    }
    if !user.VerifiedEmail {
        return nil, fmt.Errorf("email not verified")
    }
    return &googleProfile{Email: user.Email, Name: user.Name, Picture: user.Picture}, nil
}
