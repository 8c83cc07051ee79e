// Copyright (c) 2026 HostelHQ. All rights reserved.

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hostelhq/hostelhq/internal/platform/constants"
	"github.com/hostelhq/hostelhq/internal/platform/middleware"
	requestutil "github.com/hostelhq/hostelhq/internal/platform/request"
	"github.com/hostelhq/hostelhq/internal/platform/respond"
	"github.com/hostelhq/hostelhq/internal/platform/sec"
	"github.com/hostelhq/hostelhq/internal/platform/validate"
)

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service

	// loginThrottle guards the credential endpoints against brute force.
	loginThrottle *middleware.LoginThrottle

	// secureCookies toggles the Secure flag; true in production.
	secureCookies bool
}

// NewHandler constructs an auth [Handler].
func NewHandler(service *Service, loginThrottle *middleware.LoginThrottle, secureCookies bool) *Handler {
	return &Handler{
		authService:   service,
		loginThrottle: loginThrottle,
		secureCookies: secureCookies,
	}
}

// Routes returns a [chi.Router] with the authentication endpoints.
//
// # Endpoints
//   - POST /signup   : creates a new account.
//   - POST /login    : authenticates and sets the session cookie.
//   - POST /logout   : clears the session cookie.
//   - GET  /me       : returns the current account.
//   - POST /password : first-login setup or authenticated password change.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.With(handler.loginThrottle.Handler).Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Post("/password", handler.password)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Get("/me", handler.me)
	})

	return router
}

// signupRequest is the JSON payload for account creation.
type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

// signup handles POST /api/v1/auth/signup.
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	err := v.
		Required("email", input.Email).
		Email("email", input.Email).
		Required("name", input.Name).
		MinLen("password", input.Password, constants.MinPasswordLength).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Signup(request.Context(), SignupInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Role:     input.Role,
		Phone:    input.Phone,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

// loginRequest is the JSON payload for authentication.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// login handles POST /api/v1/auth/login.
//
// On success the session token is returned in the body AND set as an
// http-only cookie, so both SPA and server-rendered clients work.
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Email == "" || input.Password == "" {
		respond.Error(writer, request, validate.RequiredError("email/password", "are required"))
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, result.Token)
	respond.OK(writer, result)
}

// logout handles POST /api/v1/auth/logout by expiring the session cookie.
// Tokens themselves are stateless; the cookie is the only thing to clear.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   handler.secureCookies,
	})

	respond.OK(writer, map[string]string{"message": "Logged out"})
}

// me handles GET /api/v1/auth/me.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), identity.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// passwordRequest is the JSON payload for POST /password.
//
// Exactly one of SetupToken or CurrentPassword must be present: the former
// redeems a first-login setup token, the latter is a normal change.
type passwordRequest struct {
	SetupToken      string `json:"setup_token,omitempty"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password"`
}

// password handles POST /api/v1/auth/password.
func (handler *Handler) password(writer http.ResponseWriter, request *http.Request) {
	var input passwordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	err := v.
		MinLen("new_password", input.NewPassword, constants.MinPasswordLength).
		Custom("setup_token", input.SetupToken == "" && input.CurrentPassword == "",
			"Either setup_token or current_password is required").
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.SetupToken != "" {
		if err := handler.authService.SetupPassword(request.Context(), input.SetupToken, input.NewPassword); err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, map[string]string{"message": "Password set. You can now log in."})
		return
	}

	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ChangePassword(request.Context(), identity.ID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Password changed"})
}

// setSessionCookie writes the 7-day http-only session cookie.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, token string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sec.SessionTokenTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   handler.secureCookies,
	})
}
