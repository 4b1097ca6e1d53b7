package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"cidadealerta/internal/domain/entity"
	"cidadealerta/internal/domain/repository"
	"cidadealerta/internal/infrastructure/firebase"
	"cidadealerta/pkg/errors"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.AppUser
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.AppUser{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.AppUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.AppUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.AppUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.AppUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.users[user.ID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	if user.Name != "" {
		stored.Name = user.Name
	}
	if user.PhotoURL != "" {
		stored.PhotoURL = user.PhotoURL
	}
	return nil
}

func (f *fakeUserRepo) SetRole(_ context.Context, id, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.Role = role
	return nil
}

func (f *fakeUserRepo) SetTutorialSeen(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.TutorialSeen = true
	return nil
}

func (f *fakeUserRepo) IncrementIssuesReported(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return errors.NotFound("User", nil)
	}
	user.IssuesReported++
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, role string, limit, offset int) ([]*entity.AppUser, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []*entity.AppUser
	for _, user := range f.users {
		if role == "" || user.Role == role {
			copied := *user
			users = append(users, &copied)
		}
	}
	return users, int64(len(users)), nil
}

func (f *fakeUserRepo) TopReporters(_ context.Context, limit int) ([]*entity.AppUser, error) {
	users, _, _ := f.List(context.Background(), "", 0, 0)
	sort.Slice(users, func(i, j int) bool {
		return users[i].IssuesReported > users[j].IssuesReported
	})
	if limit > 0 && limit < len(users) {
		users = users[:limit]
	}
	return users, nil
}

type fakeIssueRepo struct {
	mu     sync.Mutex
	seq    int
	issues map[string]*entity.Issue
}

func newFakeIssueRepo() *fakeIssueRepo {
	return &fakeIssueRepo{issues: map[string]*entity.Issue{}}
}

func (f *fakeIssueRepo) Create(_ context.Context, issue *entity.Issue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if issue.ID == "" {
		f.seq++
		issue.ID = fmt.Sprintf("issue-%d", f.seq)
	}
	copied := *issue
	f.issues[issue.ID] = &copied
	return nil
}

func (f *fakeIssueRepo) GetByID(_ context.Context, id string) (*entity.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[id]
	if !ok {
		return nil, errors.NotFound("Issue", nil)
	}
	copied := *issue
	copied.Comments = append([]*entity.Comment(nil), issue.Comments...)
	return &copied, nil
}

func (f *fakeIssueRepo) List(_ context.Context, filter repository.IssueFilter) ([]*entity.Issue, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var issues []*entity.Issue
	for _, issue := range f.issues {
		if filter.Category != "" && issue.Category != filter.Category {
			continue
		}
		if filter.Status != "" && issue.Status != filter.Status {
			continue
		}
		if filter.ReporterID != "" && issue.ReporterID != filter.ReporterID {
			continue
		}
		copied := *issue
		issues = append(issues, &copied)
	}
	sort.Slice(issues, func(i, j int) bool {
		return issues[i].ReportedAt.After(issues[j].ReportedAt)
	})
	return issues, int64(len(issues)), nil
}

func (f *fakeIssueRepo) UpdateStatus(_ context.Context, id string, status entity.IssueStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[id]
	if !ok {
		return errors.NotFound("Issue", nil)
	}
	issue.Status = status
	return nil
}

func (f *fakeIssueRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.issues[id]; !ok {
		return errors.NotFound("Issue", nil)
	}
	delete(f.issues, id)
	return nil
}

func (f *fakeIssueRepo) AddComment(_ context.Context, issueID string, comment *entity.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[issueID]
	if !ok {
		return errors.NotFound("Issue", nil)
	}
	issue.Comments = append(issue.Comments, comment)
	issue.CommentCount++
	return nil
}

func (f *fakeIssueRepo) DeleteComment(_ context.Context, issueID, commentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[issueID]
	if !ok {
		return errors.NotFound("Issue", nil)
	}
	for i, comment := range issue.Comments {
		if comment.ID == commentID {
			issue.Comments = append(issue.Comments[:i], issue.Comments[i+1:]...)
			issue.CommentCount--
			return nil
		}
	}
	return errors.NotFound("Comment", nil)
}

func (f *fakeIssueRepo) GetComment(_ context.Context, issueID, commentID string) (*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[issueID]
	if !ok {
		return nil, errors.NotFound("Issue", nil)
	}
	for _, comment := range issue.Comments {
		if comment.ID == commentID {
			copied := *comment
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Comment", nil)
}

func (f *fakeIssueRepo) Upvote(_ context.Context, issueID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	issue, ok := f.issues[issueID]
	if !ok {
		return errors.NotFound("Issue", nil)
	}
	issue.Upvotes++
	return nil
}

func (f *fakeIssueRepo) Listen(ctx context.Context, fn func(issues []*entity.Issue)) error {
	<-ctx.Done()
	return nil
}

type fakeAuth struct {
	mu       sync.Mutex
	seq      int
	accounts  map[string]string // uid -> email
	claims    map[string]bool   // uid -> admin claim
	signInErr error
	createErr error
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		accounts: map[string]string{},
		claims:   map[string]bool{},
	}
}

func (f *fakeAuth) CreateUser(_ context.Context, email, password, displayName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	for _, existing := range f.accounts {
		if existing == email {
			return "", &firebase.ProviderError{Code: "EMAIL_EXISTS"}
		}
	}
	f.seq++
	uid := fmt.Sprintf("uid-%d", f.seq)
	f.accounts[uid] = email
	return uid, nil
}

func (f *fakeAuth) VerifyToken(_ context.Context, idToken string) (*firebase.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// Tokens in tests are "token:<uid>".
	uid, ok := strings.CutPrefix(idToken, "token:")
	if !ok {
		return nil, errors.Unauthorized("Invalid token", nil)
	}
	return &firebase.Identity{
		UID:      uid,
		Email:    f.accounts[uid],
		Admin:    f.claims[uid],
		Provider: "google.com",
	}, nil
}

func (f *fakeAuth) GetUIDByEmail(_ context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for uid, existing := range f.accounts {
		if existing == email {
			return uid, nil
		}
	}
	return "", errors.NotFound("User", nil)
}

func (f *fakeAuth) SetAdminClaim(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.claims[uid] = true
	return nil
}

func (f *fakeAuth) RevokeTokens(_ context.Context, uid string) error {
	return nil
}

func (f *fakeAuth) DeleteUser(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, uid)
	return nil
}

func (f *fakeAuth) SignInWithEmailPassword(_ context.Context, email, password string) (*firebase.SignInResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	for uid, existing := range f.accounts {
		if existing == email {
			return &firebase.SignInResult{UID: uid, IDToken: "token:" + uid, RefreshToken: "refresh:" + uid}, nil
		}
	}
	return nil, &firebase.ProviderError{Code: "EMAIL_NOT_FOUND"}
}

func (f *fakeAuth) SignInWithCustomToken(_ context.Context, uid string) (*firebase.SignInResult, error) {
	return &firebase.SignInResult{UID: uid, IDToken: "token:" + uid, RefreshToken: "refresh:" + uid}, nil
}
