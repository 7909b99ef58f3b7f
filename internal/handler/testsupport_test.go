package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sort"

	"github.com/reviewqr/reviewqr/internal/auth"
	"github.com/reviewqr/reviewqr/internal/cache"
	"github.com/reviewqr/reviewqr/internal/model"
	"github.com/reviewqr/reviewqr/internal/qr"
	"github.com/reviewqr/reviewqr/internal/repository"
	"github.com/reviewqr/reviewqr/internal/service"
)

const testBaseURL = "https://reviewqr.example.com"

// testEnv wires the handlers against in-memory fakes so tests can
// exercise the full request path without Postgres or Redis.
type testEnv struct {
	accounts   *service.AccountService
	businesses *service.BusinessService
	feedback   *service.FeedbackService
	tokens     *auth.Tokens
	generator  *qr.Generator
	logger     *slog.Logger
}

func newTestEnv() *testEnv {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	businessStore := newMemBusinessStore()
	return &testEnv{
		accounts:   service.NewAccountService(newMemUserStore(), nil),
		businesses: service.NewBusinessService(businessStore, newMemBusinessCache(), nil),
		feedback:   service.NewFeedbackService(newMemFeedbackStore(), businessStore, nil),
		tokens:     auth.NewTokens("handler-test-secret"),
		generator:  qr.NewGenerator(testBaseURL, nil),
		logger:     logger,
	}
}

// withSession attaches an authenticated session to the request.
func withSession(r *http.Request, userID, email string) *http.Request {
	ctx := auth.ContextWithSession(r.Context(), &auth.Session{UserID: userID, Email: email})
	return r.WithContext(ctx)
}

type memUserStore struct {
	byEmail map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: make(map[string]*model.User)}
}

func (m *memUserStore) CreateUser(_ context.Context, user *model.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return repository.ErrEmailExists
	}
	copied := *user
	m.byEmail[user.Email] = &copied
	return nil
}

func (m *memUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

type memBusinessStore struct {
	byID       map[string]*model.Business
	byQRCodeID map[string]*model.Business
}

func newMemBusinessStore() *memBusinessStore {
	return &memBusinessStore{
		byID:       make(map[string]*model.Business),
		byQRCodeID: make(map[string]*model.Business),
	}
}

func (m *memBusinessStore) CreateBusiness(_ context.Context, business *model.Business) error {
	if _, ok := m.byQRCodeID[business.QRCodeID]; ok {
		return repository.ErrQRCodeIDExists
	}
	copied := *business
	m.byID[business.ID] = &copied
	m.byQRCodeID[business.QRCodeID] = &copied
	return nil
}

func (m *memBusinessStore) GetBusinessByID(_ context.Context, id string) (*model.Business, error) {
	business, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrBusinessNotFound
	}
	copied := *business
	return &copied, nil
}

func (m *memBusinessStore) GetBusinessByQRCodeID(_ context.Context, qrCodeID string) (*model.Business, error) {
	business, ok := m.byQRCodeID[qrCodeID]
	if !ok {
		return nil, repository.ErrBusinessNotFound
	}
	copied := *business
	return &copied, nil
}

func (m *memBusinessStore) ListBusinessesByOwner(_ context.Context, ownerID string) ([]*model.Business, error) {
	var out []*model.Business
	for _, business := range m.byID {
		if business.UserID == ownerID {
			copied := *business
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type memBusinessCache struct {
	entries  map[string]*model.CachedBusiness
	negative map[string]bool
}

func newMemBusinessCache() *memBusinessCache {
	return &memBusinessCache{
		entries:  make(map[string]*model.CachedBusiness),
		negative: make(map[string]bool),
	}
}

func (m *memBusinessCache) GetBusiness(_ context.Context, qrCodeID string) (*model.CachedBusiness, error) {
	entry, ok := m.entries[qrCodeID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	copied := *entry
	return &copied, nil
}

func (m *memBusinessCache) SetBusiness(_ context.Context, qrCodeID string, business *model.Business) error {
	m.entries[qrCodeID] = business.ToCachedBusiness()
	delete(m.negative, qrCodeID)
	return nil
}

func (m *memBusinessCache) IsNegativelyCached(_ context.Context, qrCodeID string) (bool, error) {
	return m.negative[qrCodeID], nil
}

func (m *memBusinessCache) SetNegativeCache(_ context.Context, qrCodeID string) error {
	m.negative[qrCodeID] = true
	return nil
}

type memFeedbackStore struct {
	entries []*model.Feedback
}

func newMemFeedbackStore() *memFeedbackStore {
	return &memFeedbackStore{}
}

func (m *memFeedbackStore) CreateFeedback(_ context.Context, feedback *model.Feedback) error {
	copied := *feedback
	m.entries = append(m.entries, &copied)
	return nil
}

func (m *memFeedbackStore) ListFeedbackByBusiness(_ context.Context, businessID string, ratings []int) ([]*model.Feedback, error) {
	wanted := make(map[int]bool, len(ratings))
	for _, rating := range ratings {
		wanted[rating] = true
	}

	var out []*model.Feedback
	for _, entry := range m.entries {
		if entry.BusinessID != businessID {
			continue
		}
		if len(wanted) > 0 && !wanted[entry.Rating] {
			continue
		}
		copied := *entry
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
