// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memo_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/memoka/internal/notes/memo"
	"github.com/taibuivan/memoka/internal/platform/apperr"
)

// storedMemo mirrors one row of the fake store.
type storedMemo struct {
	memo.Draft
	id        int64
	userID    int64
	createdAt time.Time
	updatedAt time.Time
}

// fakeMemoRepo implements [memo.Repository] in memory.
type fakeMemoRepo struct {
	memos          map[int64]*storedMemo
	nextID         int64
	visibleFolders map[int64]bool
}

func newFakeMemoRepo() *fakeMemoRepo {
	return &fakeMemoRepo{
		memos:          map[int64]*storedMemo{},
		nextID:         1,
		visibleFolders: map[int64]bool{},
	}
}

func (repo *fakeMemoRepo) view(row *storedMemo) *memo.Memo {
	view := &memo.Memo{
		ID:        row.id,
		Title:     row.Title,
		Content:   row.Content,
		Tags:      append([]string{}, row.Tags...),
		CreatedAt: row.createdAt,
		UpdatedAt: row.updatedAt,
	}
	if row.FolderID != 0 {
		view.Folder = &memo.FolderRef{ID: row.FolderID, Name: "Folder", Color: "#3B82F6"}
	}
	return view
}

func (repo *fakeMemoRepo) ListByOwner(_ context.Context, userID int64, filter memo.ListFilter) ([]memo.Memo, error) {
	out := []memo.Memo{}
	for _, row := range repo.memos {
		if row.userID != userID {
			continue
		}
		if filter.FolderID != 0 && row.FolderID != filter.FolderID {
			continue
		}
		if len(filter.Tags) > 0 && !matchesAnyTag(row.Tags, filter.Tags) {
			continue
		}
		out = append(out, *repo.view(row))
	}
	return out, nil
}

func matchesAnyTag(stored, wanted []string) bool {
	joined := strings.Join(stored, ", ")
	for _, tag := range wanted {
		if strings.Contains(joined, tag) {
			return true
		}
	}
	return false
}

func (repo *fakeMemoRepo) FindByOwner(_ context.Context, memoID, userID int64) (*memo.Memo, error) {
	row, ok := repo.memos[memoID]
	if !ok || row.userID != userID {
		return nil, apperr.NotFound("Memo")
	}
	return repo.view(row), nil
}

func (repo *fakeMemoRepo) Create(_ context.Context, userID int64, draft memo.Draft) (*memo.Memo, error) {
	row := &storedMemo{
		Draft:     draft,
		id:        repo.nextID,
		userID:    userID,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	repo.memos[row.id] = row
	repo.nextID++
	return repo.view(row), nil
}

func (repo *fakeMemoRepo) Update(_ context.Context, memoID, userID int64, draft memo.Draft) (*memo.Memo, error) {
	row, ok := repo.memos[memoID]
	if !ok || row.userID != userID {
		return nil, apperr.NotFound("Memo")
	}
	row.Draft = draft
	row.updatedAt = time.Now()
	return repo.view(row), nil
}

func (repo *fakeMemoRepo) Delete(_ context.Context, memoID, userID int64) error {
	row, ok := repo.memos[memoID]
	if !ok || row.userID != userID {
		return apperr.NotFound("Memo")
	}
	delete(repo.memos, memoID)
	return nil
}

func (repo *fakeMemoRepo) FolderVisible(_ context.Context, folderID, _ int64) (bool, error) {
	return repo.visibleFolders[folderID], nil
}

/*
TestCreate_NormalizesJapaneseText checks that titles and tags are stored
in NFC form regardless of the composition the client sent.
*/
func TestCreate_NormalizesJapaneseText(t *testing.T) {
	repo := newFakeMemoRepo()
	service := memo.NewService(repo)

	// "ピアノ" in decomposed form (NFD): the katakana ヒ + combining dakuten.
	decomposed := norm.NFD.String("ピアノ練習")
	require.NotEqual(t, "ピアノ練習", decomposed, "precondition: NFD differs from NFC")

	created, err := service.Create(context.Background(), 1, memo.Input{
		Title:   decomposed,
		Content: "Hanon exercises",
		Tags:    []string{norm.NFD.String("音楽"), "practice"},
	})
	require.NoError(t, err)

	assert.Equal(t, "ピアノ練習", created.Title)
	assert.Equal(t, []string{"音楽", "practice"}, created.Tags)
}

/*
TestOwnershipScoping checks that a memo ID alone never grants access.
*/
func TestOwnershipScoping(t *testing.T) {
	repo := newFakeMemoRepo()
	service := memo.NewService(repo)

	created, err := service.Create(context.Background(), 1, memo.Input{
		Title: "mine", Content: "secret",
	})
	require.NoError(t, err)

	// Another user cannot read, update, or delete it.
	_, err = service.Get(context.Background(), 2, created.ID)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)

	_, err = service.Update(context.Background(), 2, created.ID, memo.Input{Title: "x", Content: "y"})
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)

	err = service.Delete(context.Background(), 2, created.ID)
	assert.Equal(t, 404, apperr.As(err).HTTPStatus)

	// The owner still can.
	_, err = service.Get(context.Background(), 1, created.ID)
	assert.NoError(t, err)
}

/*
TestCreate_FolderValidation checks that an invisible folder reference is
rejected with a 400 while zero (unfiled) passes.
*/
func TestCreate_FolderValidation(t *testing.T) {
	repo := newFakeMemoRepo()
	repo.visibleFolders[10] = true
	service := memo.NewService(repo)

	_, err := service.Create(context.Background(), 1, memo.Input{
		Title: "t", Content: "c", FolderID: 99,
	})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, 400, appError.HTTPStatus)
	assert.Equal(t, "Invalid folder", appError.Message)

	created, err := service.Create(context.Background(), 1, memo.Input{
		Title: "t", Content: "c", FolderID: 10,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Folder)
	assert.Equal(t, int64(10), created.Folder.ID)

	unfiled, err := service.Create(context.Background(), 1, memo.Input{
		Title: "t", Content: "c",
	})
	require.NoError(t, err)
	assert.Nil(t, unfiled.Folder)
}

/*
TestList_TagFilter checks the any-of tag filtering semantics.
*/
func TestList_TagFilter(t *testing.T) {
	repo := newFakeMemoRepo()
	service := memo.NewService(repo)

	_, err := service.Create(context.Background(), 1, memo.Input{
		Title: "a", Content: "c", Tags: []string{"go", "backend"},
	})
	require.NoError(t, err)
	_, err = service.Create(context.Background(), 1, memo.Input{
		Title: "b", Content: "c", Tags: []string{"piano"},
	})
	require.NoError(t, err)

	matches, err := service.List(context.Background(), 1, memo.ListFilter{Tags: []string{"go", "none"}})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "a", matches[0].Title)

	all, err := service.List(context.Background(), 1, memo.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
