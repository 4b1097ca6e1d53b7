package entity

import (
	"time"
)

// IssueStatus is the triage state of a reported issue. Transitions are
// unrestricted: an admin may move an issue between any two statuses.
type IssueStatus string

const (
	StatusReceived IssueStatus = "Recebido"
	StatusInReview IssueStatus = "Em análise"
	StatusResolved IssueStatus = "Resolvido"
)

func (s IssueStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusInReview, StatusResolved:
		return true
	}
	return false
}

// Categories is the canonical nine-value category set. Every module that
// needs the list (validation, AI suggestion, stats) reads it from here.
var Categories = []string{
	"Iluminação",
	"Buracos e Pavimentação",
	"Saneamento",
	"Limpeza Urbana",
	"Sinalização",
	"Transporte Público",
	"Segurança",
	"Meio Ambiente",
	"Outros",
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// GeoPoint is the in-memory latitude/longitude pair. The Firestore adapter
// converts it to and from the stored geo-point; the conversion must
// round-trip losslessly.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Issue struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Category     string      `json:"category"`
	Status       IssueStatus `json:"status"`
	Location     GeoPoint    `json:"location"`
	Address      string      `json:"address,omitempty"`
	ImageURL     string      `json:"image_url,omitempty"`
	ReporterID   string      `json:"reporter_id"`
	ReporterName string      `json:"reporter_name"`
	Upvotes      int64       `json:"upvotes"`
	CommentCount int64       `json:"comment_count"`
	Comments     []*Comment  `json:"comments,omitempty"`
	ReportedAt   time.Time   `json:"reported_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Comment lives in its own document under the issue, so concurrent adds and
// deletes never rewrite a shared array.
type Comment struct {
	ID             string    `json:"id" firestore:"id"`
	AuthorID       string    `json:"author_id" firestore:"authorId"`
	AuthorName     string    `json:"author_name" firestore:"authorName"`
	AuthorPhotoURL string    `json:"author_photo_url,omitempty" firestore:"authorPhotoURL,omitempty"`
	AuthorRole     string    `json:"author_role,omitempty" firestore:"authorRole,omitempty"`
	Content        string    `json:"content" firestore:"content"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}

// Vote marks that a user upvoted an issue; one document per (issue, user).
type Vote struct {
	UserID    string    `json:"user_id" firestore:"userId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
