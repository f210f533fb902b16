// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memo

import (
	"context"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/memoka/internal/platform/apperr"
)

// Service implements memo use cases.
type Service struct {
	memos Repository
}

// NewService constructs a new [Service].
func NewService(memos Repository) *Service {
	return &Service{memos: memos}
}

// Input carries the client-provided fields of a memo write.
type Input struct {
	Title    string
	Content  string
	FolderID int64
	Tags     []string
}

// normalize NFC-normalizes the user-facing text fields. Japanese titles
// and tags arrive in mixed compositions (IME output vs. pasted text);
// normalizing at the write boundary keeps tag filtering and duplicate
// detection byte-comparable.
func (input Input) normalize() Draft {
	tags := make([]string, 0, len(input.Tags))
	for _, tag := range input.Tags {
		tags = append(tags, norm.NFC.String(tag))
	}

	return Draft{
		Title:    norm.NFC.String(input.Title),
		Content:  input.Content,
		FolderID: input.FolderID,
		Tags:     tags,
	}
}

// List returns the user's memos, optionally filtered by folder and tags.
func (service *Service) List(context context.Context, userID int64, filter ListFilter) ([]Memo, error) {
	for i, tag := range filter.Tags {
		filter.Tags[i] = norm.NFC.String(tag)
	}

	memos, err := service.memos.ListByOwner(context, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("memo_service_list_failed: %w", err)
	}
	return memos, nil
}

// Get returns one owned memo.
func (service *Service) Get(context context.Context, userID, memoID int64) (*Memo, error) {
	return service.memos.FindByOwner(context, memoID, userID)
}

// Create validates folder visibility and persists a new memo.
func (service *Service) Create(context context.Context, userID int64, input Input) (*Memo, error) {
	if err := service.checkFolder(context, userID, input.FolderID); err != nil {
		return nil, err
	}

	created, err := service.memos.Create(context, userID, input.normalize())
	if err != nil {
		return nil, fmt.Errorf("memo_service_create_failed: %w", err)
	}
	return created, nil
}

// Update overwrites an owned memo.
func (service *Service) Update(context context.Context, userID, memoID int64, input Input) (*Memo, error) {
	// Existence first so a foreign memo yields 404 before any folder error.
	if _, err := service.memos.FindByOwner(context, memoID, userID); err != nil {
		return nil, err
	}

	if err := service.checkFolder(context, userID, input.FolderID); err != nil {
		return nil, err
	}

	return service.memos.Update(context, memoID, userID, input.normalize())
}

// Delete removes an owned memo.
func (service *Service) Delete(context context.Context, userID, memoID int64) error {
	return service.memos.Delete(context, memoID, userID)
}

// checkFolder validates that a non-zero folder reference is usable by the
// user (owned or shared).
func (service *Service) checkFolder(context context.Context, userID, folderID int64) error {
	if folderID == 0 {
		return nil
	}

	visible, err := service.memos.FolderVisible(context, folderID, userID)
	if err != nil {
		return fmt.Errorf("memo_service_folder_check_failed: %w", err)
	}
	if !visible {
		return apperr.ValidationError("Invalid folder")
	}

	return nil
}
