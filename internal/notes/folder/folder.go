// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package folder implements memo folder management.

Folders come in two kinds: user-owned (user_id set) and shared system
folders (user_id NULL). Users see both but may only modify their own.
*/
package folder

import "time"

// DefaultColor is applied when a folder is created or updated without an
// explicit color.
const DefaultColor = "#3B82F6"

// Folder represents a memo folder.
type Folder struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	UserID    *int64    `json:"user_id"` // nil marks a shared system folder
	CreatedAt time.Time `json:"created_at"`
}

// Shared reports whether the folder is a system folder visible to everyone.
func (f *Folder) Shared() bool { return f.UserID == nil }
