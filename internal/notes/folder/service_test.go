// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package folder_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/memoka/internal/notes/folder"
	"github.com/taibuivan/memoka/internal/platform/apperr"
)

// fakeFolderRepo implements [folder.Repository] in memory.
type fakeFolderRepo struct {
	folders    map[int64]*folder.Folder
	nextID     int64
	memoCounts map[int64]int64
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{
		folders:    map[int64]*folder.Folder{},
		nextID:     1,
		memoCounts: map[int64]int64{},
	}
}

func (repo *fakeFolderRepo) addShared(name string) *folder.Folder {
	shared := &folder.Folder{ID: repo.nextID, Name: name, Color: folder.DefaultColor, CreatedAt: time.Now()}
	repo.folders[shared.ID] = shared
	repo.nextID++
	return shared
}

func (repo *fakeFolderRepo) ListVisible(_ context.Context, userID int64) ([]folder.Folder, error) {
	out := []folder.Folder{}
	for _, f := range repo.folders {
		if f.UserID == nil || *f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (repo *fakeFolderRepo) FindOwned(_ context.Context, folderID, userID int64) (*folder.Folder, error) {
	f, ok := repo.folders[folderID]
	if !ok || f.UserID == nil || *f.UserID != userID {
		return nil, apperr.NotFound("Folder")
	}
	copied := *f
	return &copied, nil
}

func (repo *fakeFolderRepo) NameTaken(_ context.Context, name string, userID, excludeID int64) (bool, error) {
	for _, f := range repo.folders {
		if f.UserID != nil && *f.UserID == userID && f.Name == name && f.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *fakeFolderRepo) CountMemos(_ context.Context, folderID int64) (int64, error) {
	return repo.memoCounts[folderID], nil
}

func (repo *fakeFolderRepo) Create(_ context.Context, f *folder.Folder) error {
	f.ID = repo.nextID
	f.CreatedAt = time.Now()
	repo.nextID++
	copied := *f
	repo.folders[f.ID] = &copied
	return nil
}

func (repo *fakeFolderRepo) Update(_ context.Context, f *folder.Folder) error {
	existing, ok := repo.folders[f.ID]
	if !ok {
		return apperr.NotFound("Folder")
	}
	existing.Name = f.Name
	existing.Color = f.Color
	return nil
}

func (repo *fakeFolderRepo) Delete(_ context.Context, folderID, userID int64) error {
	f, ok := repo.folders[folderID]
	if !ok || f.UserID == nil || *f.UserID != userID {
		return apperr.NotFound("Folder")
	}
	delete(repo.folders, folderID)
	return nil
}

/*
TestCreate_Defaults checks color fallback and NFC normalization of names.
*/
func TestCreate_Defaults(t *testing.T) {
	repo := newFakeFolderRepo()
	service := folder.NewService(repo)

	created, err := service.Create(context.Background(), 1, norm.NFD.String("ピアノ"), "")
	require.NoError(t, err)
	assert.Equal(t, "ピアノ", created.Name)
	assert.Equal(t, folder.DefaultColor, created.Color)
	require.NotNil(t, created.UserID)
	assert.Equal(t, int64(1), *created.UserID)
	assert.False(t, created.Shared())
}

/*
TestCreate_DuplicateName checks the per-user uniqueness rule, including
the case where the duplicate arrives in a different Unicode composition.
*/
func TestCreate_DuplicateName(t *testing.T) {
	repo := newFakeFolderRepo()
	service := folder.NewService(repo)

	_, err := service.Create(context.Background(), 1, "ピアノ", "#FF0000")
	require.NoError(t, err)

	_, err = service.Create(context.Background(), 1, norm.NFD.String("ピアノ"), "")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 400, appError.HTTPStatus)
	assert.Equal(t, "Folder with this name already exists", appError.Message)

	// A different user can reuse the name freely.
	_, err = service.Create(context.Background(), 2, "ピアノ", "")
	assert.NoError(t, err)
}

/*
TestUpdate_OwnershipAndRename checks that shared and foreign folders are
untouchable, and that renaming onto another owned name is refused.
*/
func TestUpdate_OwnershipAndRename(t *testing.T) {
	repo := newFakeFolderRepo()
	shared := repo.addShared("Inbox")
	service := folder.NewService(repo)

	mine, err := service.Create(context.Background(), 1, "Work", "")
	require.NoError(t, err)
	_, err = service.Create(context.Background(), 1, "Home", "")
	require.NoError(t, err)

	// Shared folders are not owned and cannot be updated.
	_, err = service.Update(context.Background(), 1, shared.ID, "Renamed", "")
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)

	// Renaming onto a sibling's name is refused.
	_, err = service.Update(context.Background(), 1, mine.ID, "Home", "")
	assert.Equal(t, "Folder with this name already exists", apperr.As(err).Message)

	// Renaming to itself is fine.
	updated, err := service.Update(context.Background(), 1, mine.ID, "Work", "#00FF00")
	require.NoError(t, err)
	assert.Equal(t, "#00FF00", updated.Color)
}

/*
TestDelete_RefusesNonEmpty checks that a folder holding memos survives,
with the count surfaced in the client message.
*/
func TestDelete_RefusesNonEmpty(t *testing.T) {
	repo := newFakeFolderRepo()
	service := folder.NewService(repo)

	full, err := service.Create(context.Background(), 1, "Full", "")
	require.NoError(t, err)
	repo.memoCounts[full.ID] = 3

	err = service.Delete(context.Background(), 1, full.ID)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 400, appError.HTTPStatus)
	assert.Contains(t, appError.Message, "3件のメモ")
	assert.Contains(t, repo.folders, full.ID)

	repo.memoCounts[full.ID] = 0
	require.NoError(t, service.Delete(context.Background(), 1, full.ID))
	assert.NotContains(t, repo.folders, full.ID)
}
