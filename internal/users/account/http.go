// Copyright (c) 2026 FleetAdmin. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/fleetadmin/internal/platform/request"
	"github.com/taibuivan/fleetadmin/internal/platform/respond"
	"github.com/taibuivan/fleetadmin/pkg/pagination"
)

// Handler implements the HTTP layer for user account lookups.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account endpoints.
//
// Every route needs authenticate; the listing routes also need requireAdmin.
func (handler *Handler) Routes(authenticate, requireAdmin func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(authenticate)

	router.Get("/me", handler.getMe)

	// Administration
	router.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Get("/", handler.listUsers)
		r.Get("/{id}", handler.getUser)
	})

	return router
}

/*
GET /api/v1/users/me.

Response:
  - 200: auth.User: The caller's account
  - 401: Not authenticated
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	current, err := requestutil.RequiredSession(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), current.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Your user information", user)
}

/*
GET /api/v1/users?page=1&limit=20.

Response:
  - 200: UserPage
  - 403: Not an administrator
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.accountService.ListUsers(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Users", page)
}

/*
GET /api/v1/users/{id}.

Response:
  - 200: auth.User
  - 400: Malformed ID
  - 403: Not an administrator
  - 404: No such user
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.accountService.GetUser(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User", user)
}
