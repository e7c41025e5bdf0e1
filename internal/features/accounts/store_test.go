package accounts

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory Store for handler tests
type memStore struct {
	mu   sync.Mutex
	docs map[primitive.ObjectID]Account
}

func newMemStore() *memStore {
	return &memStore{docs: map[primitive.ObjectID]Account{}}
}

func (m *memStore) Create(_ context.Context, acc *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d.Email == acc.Email {
			return ErrEmailTaken
		}
	}
	acc.ID = primitive.NewObjectID()
	m.docs[acc.ID] = *acc
	return nil
}

func (m *memStore) FindAll(_ context.Context, f Filter) ([]Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Account{}
	for _, d := range m.docs {
		if f.Name != "" && d.Name != f.Name {
			continue
		}
		if f.Email != "" && d.Email != normalizeEmail(f.Email) {
			continue
		}
		if f.IsVerified != nil && (d.IsVerified == nil || *d.IsVerified != *f.IsVerified) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (m *memStore) FindByID(_ context.Context, id primitive.ObjectID) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (m *memStore) FindByEmail(_ context.Context, email string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d.Email == normalizeEmail(email) {
			return &d, nil
		}
	}
	return nil, nil
}

func (m *memStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	for k, v := range set {
		switch k {
		case "name":
			d.Name = v.(string)
		case "email":
			d.Email = v.(string)
		case "password":
			d.Password = v.(string)
		case "bio":
			d.Bio = v.(string)
		case "website":
			d.Website = v.(string)
		case "isVerified":
			b := v.(bool)
			d.IsVerified = &b
		}
	}
	m.docs[id] = d
	return &d, nil
}

func (m *memStore) Delete(_ context.Context, id primitive.ObjectID) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	delete(m.docs, id)
	return &d, nil
}
