package entity

import (
	"time"
)

// AppUser is the profile document stored under users/{uid}. It is distinct
// from the identity provider's account: the Role field mirrors the admin
// custom claim for display, the claim itself is the authorization signal.
type AppUser struct {
	ID             string    `json:"id" firestore:"id"`
	Email          string    `json:"email" firestore:"email"`
	Name           string    `json:"name" firestore:"name"`
	PhotoURL       string    `json:"photo_url,omitempty" firestore:"photoURL,omitempty"`
	Role           string    `json:"role" firestore:"role"`
	Provider       string    `json:"provider,omitempty" firestore:"provider,omitempty"`
	IssuesReported int64     `json:"issues_reported" firestore:"issuesReported"`
	TutorialSeen   bool      `json:"tutorial_seen" firestore:"tutorialSeen"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}
