package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pet_constitution/internal/model"
	"pet_constitution/internal/repository"
)

// memStore backs all three fake repositories so ownership checks see the
// same rows.
type memStore struct {
	mu            sync.Mutex
	nextID        int64
	users         []model.User
	results       []model.Result
	consultations []model.Consultation
	failWith      error
}

func newMemStore() *memStore { return &memStore{} }

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return r.s.failWith
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.ID = r.s.id()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.s.users = append(r.s.users, *u)
	return nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) FindByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	for _, u := range r.s.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) List(_ context.Context) ([]model.UserSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.UserSummary, 0, len(r.s.users))
	for i := len(r.s.users) - 1; i >= 0; i-- {
		u := r.s.users[i]
		out = append(out, model.UserSummary{ID: u.ID, Name: u.Name, Phone: u.Phone, Email: u.Email, CreatedAt: u.CreatedAt})
	}
	return out, nil
}

func (r memUsers) PromoteToAdmin(_ context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.users {
		if r.s.users[i].Email == email {
			r.s.users[i].IsAdmin = true
			return true, nil
		}
	}
	return false, nil
}

type memResults struct{ s *memStore }

func (r memResults) Create(_ context.Context, res *model.Result) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return r.s.failWith
	}
	res.ID = r.s.id()
	res.CreatedAt = time.Now()
	r.s.results = append(r.s.results, *res)
	return nil
}

func (r memResults) FindByID(_ context.Context, id int64) (*model.Result, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, res := range r.s.results {
		if res.ID == id {
			res := res
			return &res, nil
		}
	}
	return nil, nil
}

func (r memResults) FindByIDForUser(_ context.Context, id, userID int64) (*model.Result, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, res := range r.s.results {
		if res.ID == id && res.UserID != nil && *res.UserID == userID {
			res := res
			return &res, nil
		}
	}
	return nil, nil
}

func (r memResults) FindByUser(_ context.Context, userID int64) ([]model.Result, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Result{}
	for _, res := range r.s.results {
		if res.UserID != nil && *res.UserID == userID {
			out = append(out, res)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memResults) DeleteForUser(_ context.Context, id, userID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, res := range r.s.results {
		if res.ID == id && res.UserID != nil && *res.UserID == userID {
			r.s.results = append(r.s.results[:i], r.s.results[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type memConsultations struct{ s *memStore }

func (r memConsultations) Create(_ context.Context, c *model.Consultation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return r.s.failWith
	}
	c.ID = r.s.id()
	c.CreatedAt = time.Now()
	r.s.consultations = append(r.s.consultations, *c)
	return nil
}

func (r memConsultations) FindByUser(_ context.Context, userID int64) ([]model.Consultation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Consultation{}
	for _, c := range r.s.consultations {
		if c.UserID != nil && *c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memConsultations) FindAll(_ context.Context) ([]model.Consultation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := append([]model.Consultation{}, r.s.consultations...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memConsultations) UpdateStatus(_ context.Context, id int64, status string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.consultations {
		if r.s.consultations[i].ID == id {
			r.s.consultations[i].Status = status
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) consultation(id int64) (model.Consultation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.consultations {
		if c.ID == id {
			return c, true
		}
	}
	return model.Consultation{}, false
}

var errStoreDown = errors.New("connection refused")
