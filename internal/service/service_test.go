package service

import (
	"context"
	"sort"

	"github.com/reviewqr/reviewqr/internal/cache"
	"github.com/reviewqr/reviewqr/internal/model"
	"github.com/reviewqr/reviewqr/internal/repository"
)

// In-memory fakes backing the service tests. They mirror the error
// contracts of the repository and cache packages.

type fakeUserStore struct {
	byEmail map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*model.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return repository.ErrEmailExists
	}
	copied := *user
	f.byEmail[user.Email] = &copied
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

type fakeBusinessStore struct {
	byID       map[string]*model.Business
	byQRCodeID map[string]*model.Business
}

func newFakeBusinessStore() *fakeBusinessStore {
	return &fakeBusinessStore{
		byID:       make(map[string]*model.Business),
		byQRCodeID: make(map[string]*model.Business),
	}
}

func (f *fakeBusinessStore) CreateBusiness(_ context.Context, business *model.Business) error {
	if _, ok := f.byQRCodeID[business.QRCodeID]; ok {
		return repository.ErrQRCodeIDExists
	}
	copied := *business
	f.byID[business.ID] = &copied
	f.byQRCodeID[business.QRCodeID] = &copied
	return nil
}

func (f *fakeBusinessStore) GetBusinessByID(_ context.Context, id string) (*model.Business, error) {
	business, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrBusinessNotFound
	}
	copied := *business
	return &copied, nil
}

func (f *fakeBusinessStore) GetBusinessByQRCodeID(_ context.Context, qrCodeID string) (*model.Business, error) {
	business, ok := f.byQRCodeID[qrCodeID]
	if !ok {
		return nil, repository.ErrBusinessNotFound
	}
	copied := *business
	return &copied, nil
}

func (f *fakeBusinessStore) ListBusinessesByOwner(_ context.Context, ownerID string) ([]*model.Business, error) {
	var out []*model.Business
	for _, business := range f.byID {
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

type fakeBusinessCache struct {
	entries  map[string]*model.CachedBusiness
	negative map[string]bool

	getCalls int
	setCalls int
}

func newFakeBusinessCache() *fakeBusinessCache {
	return &fakeBusinessCache{
		entries:  make(map[string]*model.CachedBusiness),
		negative: make(map[string]bool),
	}
}

func (f *fakeBusinessCache) GetBusiness(_ context.Context, qrCodeID string) (*model.CachedBusiness, error) {
	f.getCalls++
	entry, ok := f.entries[qrCodeID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeBusinessCache) SetBusiness(_ context.Context, qrCodeID string, business *model.Business) error {
	f.setCalls++
	f.entries[qrCodeID] = business.ToCachedBusiness()
	delete(f.negative, qrCodeID)
	return nil
}

func (f *fakeBusinessCache) IsNegativelyCached(_ context.Context, qrCodeID string) (bool, error) {
	return f.negative[qrCodeID], nil
}

func (f *fakeBusinessCache) SetNegativeCache(_ context.Context, qrCodeID string) error {
	f.negative[qrCodeID] = true
	return nil
}

type fakeFeedbackStore struct {
	entries []*model.Feedback
}

func newFakeFeedbackStore() *fakeFeedbackStore {
	return &fakeFeedbackStore{}
}

func (f *fakeFeedbackStore) CreateFeedback(_ context.Context, feedback *model.Feedback) error {
	copied := *feedback
	f.entries = append(f.entries, &copied)
	return nil
}

func (f *fakeFeedbackStore) ListFeedbackByBusiness(_ context.Context, businessID string, ratings []int) ([]*model.Feedback, error) {
	wanted := make(map[int]bool, len(ratings))
	for _, rating := range ratings {
		wanted[rating] = true
	}

	var out []*model.Feedback
	for _, entry := range f.entries {
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
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
