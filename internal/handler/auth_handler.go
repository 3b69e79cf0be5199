package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/peakform/storefront/internal/middleware"
	"github.com/peakform/storefront/internal/notify"
	"github.com/peakform/storefront/internal/session"
	"github.com/peakform/storefront/internal/store"
	"github.com/peakform/storefront/internal/utils"
	"github.com/peakform/storefront/pkg/shopapi"
)

// AuthHandler serves login, registration, the identity-provider callback and
// logout. Successful authentication establishes the session and hydrates the
// cart ledger from the server-side copy.
type AuthHandler struct {
	api      *shopapi.Client
	sessions *session.Manager
	cart     *store.Cart
	notifier notify.Notifier
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(api *shopapi.Client, sessions *session.Manager, cart *store.Cart, notifier notify.Notifier) *AuthHandler {
	return &AuthHandler{api: api, sessions: sessions, cart: cart, notifier: notifier}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	OTP      string `json:"otp"`
}

// Login authenticates with email/password, handling the OTP branch: when the
// backend answers requiresOTP the client requests a code and retries with it.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Email and password are required")
		return
	}

	resp, err := h.api.Login(c.Request.Context(), req.Email, req.Password, req.OTP)
	if err != nil {
		h.notifier.Notify(notify.LevelError, "Login failed")
		utils.Error(c, 401, "BACKEND_REJECTED", err.Error())
		return
	}
	if resp.RequiresOTP {
		utils.Success(c, 200, "OTP required", gin.H{"requiresOTP": true})
		return
	}

	h.establish(c, resp)
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register creates an account and logs the new user in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Name, email and a password of 8+ characters are required")
		return
	}

	resp, err := h.api.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.notifier.Notify(notify.LevelError, "Registration failed")
		utils.Error(c, 400, "BACKEND_REJECTED", err.Error())
		return
	}

	h.establish(c, resp)
}

type sendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendOTP asks the backend to send a one-time login code.
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Email is required")
		return
	}
	if err := h.api.SendOTP(c.Request.Context(), req.Email); err != nil {
		utils.Error(c, 502, "BACKEND_REJECTED", err.Error())
		return
	}
	utils.Success(c, 200, "OTP sent", nil)
}

type auth0Request struct {
	IDToken string `json:"id_token" binding:"required"`
	Error   string `json:"error"`
}

// Auth0Exchange trades the identity provider's id_token for a backend
// session. The id_token arrives from the callback page, which lifts it out
// of the URL fragment.
func (h *AuthHandler) Auth0Exchange(c *gin.Context) {
	var req auth0Request
	if err := c.ShouldBindJSON(&req); err != nil || req.Error != "" {
		h.notifier.Notify(notify.LevelError, "Sign-in was cancelled or failed")
		utils.Error(c, 400, "INVALID_REQUEST", "Identity provider did not return a token")
		return
	}

	resp, err := h.api.ExchangeAuth0(c.Request.Context(), req.IDToken)
	if err != nil {
		h.notifier.Notify(notify.LevelError, "Sign-in failed")
		utils.Error(c, 401, "BACKEND_REJECTED", err.Error())
		return
	}

	h.establish(c, resp)
}

// Auth0Callback serves the implicit-flow landing page. The id_token lives in
// the URL fragment, which never reaches the server, so the page re-posts the
// fragment parameters to the exchange action.
func (h *AuthHandler) Auth0Callback(c *gin.Context) {
	c.Data(200, "text/html; charset=utf-8", []byte(auth0CallbackPage))
}

// Logout purges the session, clears the cart ledger and sends the user to
// the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout()
	h.cart.Clear()
	utils.Success(c, 200, "Logged out", gin.H{"redirect": "/login"})
}

// Profile returns the session user's profile page.
func (h *AuthHandler) Profile(c *gin.Context) {
	utils.Success(c, 200, "Profile page", gin.H{"user": middleware.GetUser(c)})
}

// establish stores the issued session, hydrates the cart from the backend
// copy and answers with the user profile.
func (h *AuthHandler) establish(c *gin.Context, resp *shopapi.AuthResponse) {
	if err := h.sessions.Establish(resp.Token, resp.User); err != nil {
		log.Error().Err(err).Msg("failed to establish session")
		utils.Error(c, 500, "INTERNAL_ERROR", "Could not store the session")
		return
	}

	// Hydrate the local ledger from the server-side cart; best-effort.
	if data, err := h.api.GetCart(c.Request.Context()); err != nil {
		log.Warn().Err(err).Msg("cart hydration failed")
	} else if len(data) > 0 {
		h.cart.Replace(data)
	}

	h.notifier.Notify(notify.LevelSuccess, "Welcome back, "+resp.User.Name)
	utils.Success(c, 200, "Logged in", gin.H{"user": resp.User, "redirect": "/"})
}

const auth0CallbackPage = `<!doctype html>
<html>
<head><title>Signing you in…</title></head>
<body>
<script>
  var params = new URLSearchParams(window.location.hash.slice(1));
  fetch("/actions/auth0", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify({id_token: params.get("id_token") || "", error: params.get("error") || ""})
  }).then(function (r) { return r.json(); }).then(function (body) {
    window.location = (body.data && body.data.redirect) || "/login";
  });
</script>
</body>
</html>`
