// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package folder

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/memoka/internal/platform/constants"
	requestutil "github.com/taibuivan/memoka/internal/platform/request"
	"github.com/taibuivan/memoka/internal/platform/respond"
	"github.com/taibuivan/memoka/internal/platform/validate"
)

// Handler implements the /api/folders HTTP endpoints.
type Handler struct {
	folderService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{folderService: service}
}

// Routes returns a [chi.Router] configured with folder routes.
//
// # Endpoints
//   - GET    /            : List visible folders.
//   - POST   /            : Create a folder.
//   - PUT    /{folderID}  : Rename/recolor an owned folder.
//   - DELETE /{folderID}  : Delete an owned, empty folder.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Put("/{folderID}", handler.update)
	router.Delete("/{folderID}", handler.remove)

	return router
}

// folderRequest represents the JSON payload for create and update.
type folderRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	folders, err := handler.folderService.List(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"folders": folders})
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input folderRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("name", input.Name).MaxLen("name", input.Name, 100)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.folderService.Create(request.Context(), claims.UserID, input.Name, input.Color)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{"folder": created})
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	folderID, err := requestutil.IDParam(request, "folderID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input folderRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("name", input.Name).MaxLen("name", input.Name, 100)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.folderService.Update(request.Context(), claims.UserID, folderID, input.Name, input.Color)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"folder": updated})
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	folderID, err := requestutil.IDParam(request, "folderID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.folderService.Delete(request.Context(), claims.UserID, folderID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Folder deleted successfully"})
}
