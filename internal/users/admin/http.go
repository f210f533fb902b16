// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/memoka/internal/platform/constants"
	requestutil "github.com/taibuivan/memoka/internal/platform/request"
	"github.com/taibuivan/memoka/internal/platform/respond"
	"github.com/taibuivan/memoka/internal/platform/validate"
)

// Handler implements the /api/admin HTTP endpoints.
//
// # Authorization
//
// The request gate guarantees a verified principal before any handler
// here runs; every handler then applies the admin policy check on top.
// Both layers are mandatory — neither replaces the other.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// Routes returns a [chi.Router] configured with administration routes.
//
// # Endpoints
//   - GET    /users           : Paginated user listing with search.
//   - PUT    /users           : Activate/deactivate an account.
//   - DELETE /users/{userID}  : Delete an account and its data.
//   - POST   /change-password : Directly replace a user's password.
//   - POST   /password-reset  : Issue a single-use reset token.
//   - GET    /password-reset  : Reset issuance history.
//   - GET    /stats           : Dashboard aggregates.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/users", handler.listUsers)
	router.Put("/users", handler.setUserActive)
	router.Delete("/users/{userID}", handler.deleteUser)
	router.Post("/change-password", handler.changePassword)
	router.Post("/password-reset", handler.issueReset)
	router.Get("/password-reset", handler.resetHistory)
	router.Get("/stats", handler.stats)

	return router
}

// listUsers handles GET /api/admin/users requests.
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredAdmin(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := requestutil.QueryInt(request, "page", 1)
	limit := requestutil.QueryInt(request, "limit", 20)
	search := request.URL.Query().Get("search")

	pageResult, err := handler.adminService.ListUsers(request.Context(), claims.UserID, search, page, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pageResult)
}

// setActiveRequest represents the JSON payload for activation toggling.
type setActiveRequest struct {
	UserID   int64 `json:"userId"`
	IsActive *bool `json:"isActive"`
}

// setUserActive handles PUT /api/admin/users requests.
//
// # Returns
//   - Writes HTTP 200 OK with a confirmation message.
//   - Writes HTTP 400 Bad Request on self-deactivation.
//   - Writes HTTP 404 Not Found for unknown targets.
func (handler *Handler) setUserActive(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredAdmin(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setActiveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// isActive must be an explicit boolean; an absent field is not a
	// deactivation request.
	validator := &validate.Validator{}
	validator.
		PositiveID("userId", input.UserID).
		Custom("isActive", input.IsActive == nil, "This field is required")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.adminService.SetUserActive(request.Context(), claims.UserID, input.UserID, *input.IsActive)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: message})
}

// deleteUser handles DELETE /api/admin/users/{userID} requests.
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredAdmin(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID, err := requestutil.IDParam(request, "userID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.adminService.DeleteUser(request.Context(), claims.UserID, targetID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "User deleted successfully"})
}

// changePasswordRequest represents the JSON payload for a direct change.
type changePasswordRequest struct {
	UserID      int64  `json:"userId"`
	NewPassword string `json:"newPassword"`
}

// changePassword handles POST /api/admin/change-password requests.
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredAdmin(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		PositiveID("userId", input.UserID).
		MinLen("newPassword", input.NewPassword, 6)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	target, err := handler.adminService.ChangePassword(request.Context(), claims.UserID, input.UserID, input.NewPassword)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		constants.FieldMessage: "Password changed successfully",
		constants.FieldUser:    target,
	})
}

// issueResetRequest represents the JSON payload for token issuance.
type issueResetRequest struct {
	UserID int64 `json:"userId"`
}

// issueReset handles POST /api/admin/password-reset requests.
//
// # Returns
//   - Writes HTTP 200 OK with {message, token, expiresAt, resetUrl, user}.
//   - Writes HTTP 404 Not Found for unknown targets.
func (handler *Handler) issueReset(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredAdmin(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input issueResetRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.PositiveID("userId", input.UserID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	issue, err := handler.adminService.IssueReset(request.Context(), claims.UserID, input.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, issue)
}

// resetHistory handles GET /api/admin/password-reset requests. An optional
// userId query parameter restricts the listing to one account.
func (handler *Handler) resetHistory(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredAdmin(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID := int64(requestutil.QueryInt(request, "userId", 0))

	records, err := handler.adminService.ResetHistory(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"passwordResets": records})
}

// stats handles GET /api/admin/stats requests.
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredAdmin(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.adminService.Stats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}
