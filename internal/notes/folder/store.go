// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package folder

import "context"

// # Folder Data Access

// Repository defines folder storage operations.
//
// Ownership scoping is enforced here, not in handlers: every query that
// touches a specific folder carries the caller's user ID.
type Repository interface {

	/*
		ListVisible returns the user's folders plus shared system folders,
		oldest first.
	*/
	ListVisible(context context.Context, userID int64) ([]Folder, error)

	/*
		FindOwned returns the folder only if the user owns it. Shared
		folders are not owned by anyone and never match.

		Returns:
		  - error: apperr.NotFound for missing or foreign folders
	*/
	FindOwned(context context.Context, folderID, userID int64) (*Folder, error)

	/*
		NameTaken reports whether the user already has another folder with
		this name. excludeID skips one folder (the one being renamed);
		pass zero when creating.
	*/
	NameTaken(context context.Context, name string, userID, excludeID int64) (bool, error)

	/*
		CountMemos returns how many memos currently live in the folder.
	*/
	CountMemos(context context.Context, folderID int64) (int64, error)

	/*
		Create persists a new folder and backfills ID and created_at.
	*/
	Create(context context.Context, folder *Folder) error

	/*
		Update persists name and color changes to an owned folder.
	*/
	Update(context context.Context, folder *Folder) error

	/*
		Delete removes an owned folder.
	*/
	Delete(context context.Context, folderID, userID int64) error
}
