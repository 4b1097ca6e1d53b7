package repository

import (
	"time"

	"google.golang.org/genproto/googleapis/type/latlng"

	"cidadealerta/internal/domain/entity"
)

// issueDoc is the wire form stored under issues/{id}. Location is a native
// Firestore geo-point; conversion to entity.GeoPoint must be lossless in
// both directions.
type issueDoc struct {
	ID           string         `firestore:"id"`
	Title        string         `firestore:"title"`
	Description  string         `firestore:"description"`
	Category     string         `firestore:"category"`
	Status       string         `firestore:"status"`
	Location     *latlng.LatLng `firestore:"location"`
	Address      string         `firestore:"address,omitempty"`
	ImageURL     string         `firestore:"imageURL,omitempty"`
	ReporterID   string         `firestore:"reporterId"`
	ReporterName string         `firestore:"reporterName"`
	Upvotes      int64          `firestore:"upvotes"`
	CommentCount int64          `firestore:"commentCount"`
	ReportedAt   time.Time      `firestore:"reportedAt"`
	UpdatedAt    time.Time      `firestore:"updatedAt"`
}

func encodeIssue(issue *entity.Issue) *issueDoc {
	return &issueDoc{
		ID:           issue.ID,
		Title:        issue.Title,
		Description:  issue.Description,
		Category:     issue.Category,
		Status:       string(issue.Status),
		Location:     &latlng.LatLng{Latitude: issue.Location.Lat, Longitude: issue.Location.Lng},
		Address:      issue.Address,
		ImageURL:     issue.ImageURL,
		ReporterID:   issue.ReporterID,
		ReporterName: issue.ReporterName,
		Upvotes:      issue.Upvotes,
		CommentCount: issue.CommentCount,
		ReportedAt:   issue.ReportedAt,
		UpdatedAt:    issue.UpdatedAt,
	}
}

func decodeIssue(doc *issueDoc) *entity.Issue {
	issue := &entity.Issue{
		ID:           doc.ID,
		Title:        doc.Title,
		Description:  doc.Description,
		Category:     doc.Category,
		Status:       entity.IssueStatus(doc.Status),
		Address:      doc.Address,
		ImageURL:     doc.ImageURL,
		ReporterID:   doc.ReporterID,
		ReporterName: doc.ReporterName,
		Upvotes:      doc.Upvotes,
		CommentCount: doc.CommentCount,
		ReportedAt:   doc.ReportedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
	if doc.Location != nil {
		issue.Location = entity.GeoPoint{Lat: doc.Location.Latitude, Lng: doc.Location.Longitude}
	}
	return issue
}
