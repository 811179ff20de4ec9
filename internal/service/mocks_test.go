package service

import (
	"context"
	"sort"

	"memberbase/internal/entity"
	"memberbase/internal/repository"
	"memberbase/internal/utils"
)

type mockUserRepo struct {
	users  map[uint]*entity.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*entity.User), nextID: 1}
}

func (r *mockUserRepo) hasDuplicate(user *entity.User) bool {
	for _, existing := range r.users {
		if existing.ID == user.ID {
			continue
		}
		if existing.Email == user.Email {
			return true
		}
		if existing.Username != nil && user.Username != nil && *existing.Username == *user.Username {
			return true
		}
	}
	return false
}

func (r *mockUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.hasDuplicate(user) {
		return repository.ErrDuplicateKey
	}
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *mockUserRepo) Save(_ context.Context, user *entity.User) error {
	if r.hasDuplicate(user) {
		return repository.ErrDuplicateKey
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *mockUserRepo) FindByID(_ context.Context, id uint) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *mockUserRepo) FindActiveByID(_ context.Context, id uint) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok || !user.Active {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *mockUserRepo) FindByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == utils.NormalizeEmail(identifier) || (user.Username != nil && *user.Username == identifier) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *mockUserRepo) List(_ context.Context, limit, offset int) ([]entity.User, int64, error) {
	ids := make([]uint, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var page []entity.User
	for i, id := range ids {
		if i < offset {
			continue
		}
		if limit > 0 && len(page) >= limit {
			break
		}
		page = append(page, *r.users[id])
	}
	return page, int64(len(r.users)), nil
}

func (r *mockUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

type mockDiscountRepo struct {
	discounts map[uint]*entity.Discount
	nextID    uint
}

func newMockDiscountRepo() *mockDiscountRepo {
	return &mockDiscountRepo{discounts: make(map[uint]*entity.Discount), nextID: 1}
}

func (r *mockDiscountRepo) Create(_ context.Context, discount *entity.Discount) error {
	discount.ID = r.nextID
	r.nextID++
	clone := *discount
	r.discounts[discount.ID] = &clone
	return nil
}

func (r *mockDiscountRepo) Save(_ context.Context, discount *entity.Discount) error {
	clone := *discount
	r.discounts[discount.ID] = &clone
	return nil
}

func (r *mockDiscountRepo) FindByID(_ context.Context, id uint) (*entity.Discount, error) {
	discount, ok := r.discounts[id]
	if !ok {
		return nil, nil
	}
	clone := *discount
	return &clone, nil
}

func (r *mockDiscountRepo) List(_ context.Context, limit, offset int) ([]entity.Discount, int64, error) {
	all := make([]entity.Discount, 0, len(r.discounts))
	for _, discount := range r.discounts {
		all = append(all, *discount)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Priority != all[j].Priority {
			return all[i].Priority > all[j].Priority
		}
		return all[i].ID < all[j].ID
	})

	var page []entity.Discount
	for i := range all {
		if i < offset {
			continue
		}
		if limit > 0 && len(page) >= limit {
			break
		}
		page = append(page, all[i])
	}
	return page, int64(len(all)), nil
}

func (r *mockDiscountRepo) Delete(_ context.Context, id uint) error {
	delete(r.discounts, id)
	return nil
}

type mockAuditRepo struct {
	records []entity.AuditLog
}

func (r *mockAuditRepo) Log(_ context.Context, record *entity.AuditLog) error {
	r.records = append(r.records, *record)
	return nil
}
