// Copyright (c) 2026 Memoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memo implements the note CRUD surface.

# Architecture

Every operation is scoped to the authenticated owner: a memo ID alone
never grants access, the (id, user_id) pair does. This is the consumer
side of the identity the authentication core produces — handlers trust
the principal attached by the request gate and nothing else.

Tags are stored as one comma-separated text column (a deliberate
denormalization inherited from the product's first schema) and exposed to
clients as a string array.
*/
package memo

import (
	"strings"
	"time"
)

// FolderRef is the embedded folder summary of a memo response.
type FolderRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Memo is the client-facing note representation.
type Memo struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Folder    *FolderRef `json:"folder"` // nil when the memo is unfiled
	Tags      []string   `json:"tags"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// # Tag Codec

// joinTags serializes a tag list into the stored text format.
func joinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// splitTags parses the stored text format back into a tag list. An empty
// column yields an empty slice, never nil, so JSON renders [] not null.
func splitTags(stored string) []string {
	if stored == "" {
		return []string{}
	}

	parts := strings.Split(stored, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
