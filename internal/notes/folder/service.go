// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package folder

import (
	"context"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/memoka/internal/platform/apperr"
)

// Service implements folder management use cases.
type Service struct {
	folders Repository
}

// NewService constructs a new [Service].
func NewService(folders Repository) *Service {
	return &Service{folders: folders}
}

// List returns everything the user can see: their folders plus shared ones.
func (service *Service) List(context context.Context, userID int64) ([]Folder, error) {
	folders, err := service.folders.ListVisible(context, userID)
	if err != nil {
		return nil, fmt.Errorf("folder_service_list_failed: %w", err)
	}
	return folders, nil
}

// Create adds a new folder for the user.
//
// # Business Rules
//   - Names are unique per user (shared folders live in their own namespace).
//   - Missing color falls back to [DefaultColor].
//   - Names are NFC-normalized so visually identical Japanese names cannot
//     coexist in different Unicode compositions.
func (service *Service) Create(context context.Context, userID int64, name, color string) (*Folder, error) {
	name = norm.NFC.String(name)

	taken, err := service.folders.NameTaken(context, name, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("folder_service_name_check_failed: %w", err)
	}
	if taken {
		return nil, apperr.ValidationError("Folder with this name already exists")
	}

	if color == "" {
		color = DefaultColor
	}

	newFolder := &Folder{Name: name, Color: color, UserID: &userID}
	if err := service.folders.Create(context, newFolder); err != nil {
		return nil, fmt.Errorf("folder_service_create_failed: %w", err)
	}

	return newFolder, nil
}

// Update renames or recolors an owned folder.
func (service *Service) Update(context context.Context, userID, folderID int64, name, color string) (*Folder, error) {
	name = norm.NFC.String(name)

	existing, err := service.folders.FindOwned(context, folderID, userID)
	if err != nil {
		return nil, err
	}

	taken, err := service.folders.NameTaken(context, name, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("folder_service_name_check_failed: %w", err)
	}
	if taken {
		return nil, apperr.ValidationError("Folder with this name already exists")
	}

	if color == "" {
		color = DefaultColor
	}

	existing.Name = name
	existing.Color = color
	if err := service.folders.Update(context, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// Delete removes an owned, empty folder.
//
// A folder still holding memos is refused; the client message is in
// Japanese because the frontend surfaces it verbatim to end users.
func (service *Service) Delete(context context.Context, userID, folderID int64) error {
	if _, err := service.folders.FindOwned(context, folderID, userID); err != nil {
		return err
	}

	memoCount, err := service.folders.CountMemos(context, folderID)
	if err != nil {
		return fmt.Errorf("folder_service_memo_count_failed: %w", err)
	}
	if memoCount > 0 {
		return apperr.ValidationError(fmt.Sprintf(
			"このフォルダには%d件のメモがあるため削除できません。先にメモを移動または削除してください。", memoCount))
	}

	return service.folders.Delete(context, folderID, userID)
}
