// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/fleetadmin/internal/platform/request"
	"github.com/taibuivan/fleetadmin/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// authenticate guards the endpoints that need a resolved session.
//
// # Endpoints
//   - POST /signup : Creates a new account.
//   - POST /login  : Authenticates and returns a session token.
//   - GET  /logout : Revokes the presented token.
func (handler *Handler) Routes(authenticate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/logout", handler.logout)
	})

	return router
}

// # Request Payloads

type signupRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	PasswordVerify string `json:"password_verify"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the data of a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

/*
Signup handles the creation of a new user account.

POST /api/v1/auth/signup

Response:
  - 201: User: Created user profile
  - 400: Bad input or validation failure
  - 409: Email already registered
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Signup(request.Context(), SignupInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "User created", user)
}

/*
Login authenticates credentials and returns a session token.

POST /api/v1/auth/login

Response:
  - 200: TokenResponse
  - 400: Missing fields
  - 401: Invalid email or password
  - 403: Account disabled
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.Login(request.Context(), LoginInput(input))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Logged in", TokenResponse{Token: token})
}

/*
Logout revokes the token that authenticated this request.

GET /api/v1/auth/logout

Response:
  - 200: Message only
  - 401: Missing, invalid or already revoked token
  - 500: Revocation store unavailable
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	current, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), current); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Write(writer, respond.Message(http.StatusOK, "You have logged out"))
}
