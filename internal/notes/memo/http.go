// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memo

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/memoka/internal/platform/constants"
	requestutil "github.com/taibuivan/memoka/internal/platform/request"
	"github.com/taibuivan/memoka/internal/platform/respond"
	"github.com/taibuivan/memoka/internal/platform/validate"
)

// Handler implements the /api/memos HTTP endpoints.
type Handler struct {
	memoService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{memoService: service}
}

// Routes returns a [chi.Router] configured with memo routes.
//
// # Endpoints
//   - GET    /          : List owned memos (folder_id and tags filters).
//   - POST   /          : Create a memo.
//   - GET    /{memoID}  : Fetch one owned memo.
//   - PUT    /{memoID}  : Overwrite an owned memo.
//   - DELETE /{memoID}  : Delete an owned memo.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{memoID}", handler.get)
	router.Put("/{memoID}", handler.update)
	router.Delete("/{memoID}", handler.remove)

	return router
}

// memoRequest represents the JSON payload for create and update.
type memoRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	FolderID int64    `json:"folder_id"`
	Tags     []string `json:"tags"`
}

func (input memoRequest) toInput() Input {
	return Input{
		Title:    input.Title,
		Content:  input.Content,
		FolderID: input.FolderID,
		Tags:     input.Tags,
	}
}

func validateMemo(input memoRequest) error {
	validator := &validate.Validator{}
	validator.
		Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Required("content", input.Content)
	return validator.Err()
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter := ListFilter{
		FolderID: int64(requestutil.QueryInt(request, "folder_id", 0)),
	}
	if rawTags := request.URL.Query().Get("tags"); rawTags != "" {
		for _, tag := range strings.Split(rawTags, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				filter.Tags = append(filter.Tags, trimmed)
			}
		}
	}

	memos, err := handler.memoService.List(request.Context(), claims.UserID, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"memos": memos})
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	memoID, err := requestutil.IDParam(request, "memoID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.memoService.Get(request.Context(), claims.UserID, memoID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"memo": found})
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input memoRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateMemo(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.memoService.Create(request.Context(), claims.UserID, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{"memo": created})
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	memoID, err := requestutil.IDParam(request, "memoID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input memoRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := validateMemo(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.memoService.Update(request.Context(), claims.UserID, memoID, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"memo": updated})
}

func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	memoID, err := requestutil.IDParam(request, "memoID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.memoService.Delete(request.Context(), claims.UserID, memoID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Memo deleted successfully"})
}
