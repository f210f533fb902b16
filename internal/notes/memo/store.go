// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memo

import "context"

// ListFilter narrows the memo listing.
type ListFilter struct {
	// FolderID restricts to one folder when non-zero.
	FolderID int64
	// Tags keeps memos matching ANY of these tags (substring match on the
	// stored tag column, inherited behavior).
	Tags []string
}

// Draft carries the writable fields of a memo into the repository.
type Draft struct {
	Title    string
	Content  string
	FolderID int64 // zero means unfiled
	Tags     []string
}

// # Memo Data Access

// Repository defines memo storage operations, all owner-scoped.
type Repository interface {

	/*
		ListByOwner returns the user's memos with folder summaries joined,
		most recently updated first.
	*/
	ListByOwner(context context.Context, userID int64, filter ListFilter) ([]Memo, error)

	/*
		FindByOwner returns one memo if the user owns it.

		Returns:
		  - error: apperr.NotFound for missing or foreign memos
	*/
	FindByOwner(context context.Context, memoID, userID int64) (*Memo, error)

	/*
		Create persists a new memo and returns its hydrated view.
	*/
	Create(context context.Context, userID int64, draft Draft) (*Memo, error)

	/*
		Update overwrites the writable fields of an owned memo and returns
		the hydrated view.

		Returns:
		  - error: apperr.NotFound for missing or foreign memos
	*/
	Update(context context.Context, memoID, userID int64, draft Draft) (*Memo, error)

	/*
		Delete removes an owned memo.

		Returns:
		  - error: apperr.NotFound for missing or foreign memos
	*/
	Delete(context context.Context, memoID, userID int64) error

	/*
		FolderVisible reports whether the folder exists and is usable by
		the user (owned or shared).
	*/
	FolderVisible(context context.Context, folderID, userID int64) (bool, error)
}
