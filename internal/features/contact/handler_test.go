package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/ratelimit"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/validator"
)

type memStore struct {
	mu   sync.Mutex
	subs []Submission
}

func (m *memStore) Create(_ context.Context, s *Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = primitive.NewObjectID()
	m.subs = append(m.subs, *s)
	return nil
}

func (m *memStore) FindAll(context.Context) ([]Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Submission{}, m.subs...), nil
}

func (m *memStore) FindByID(_ context.Context, id primitive.ObjectID) (*Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memStore) Delete(_ context.Context, id primitive.ObjectID) (*Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.subs {
		if s.ID == id {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return &s, nil
		}
	}
	return nil, nil
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, json.RawMessage) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env.Data
}

func TestContactFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validator.Register()
	tokens := jwt.NewManager("test-secret", time.Hour)
	r := gin.New()
	RegisterRoutes(r, &memStore{}, tokens, time.Second, ratelimit.Scoped(ratelimit.New(2, time.Minute), ratelimit.ScopeForms))

	msg := gin.H{"name": "Asha", "email": "Asha@X.org", "subject": "Volunteering", "message": "How can I help?"}

	w, data := do(t, r, http.MethodPost, "/contact/add", "", msg)
	require.Equal(t, http.StatusCreated, w.Code)
	var created Submission
	require.NoError(t, json.Unmarshal(data, &created))
	assert.Equal(t, "asha@x.org", created.Email)

	w, _ = do(t, r, http.MethodPost, "/contact/add", "", gin.H{"name": "Asha"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodPost, "/contact/add", "", msg)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	w, _ = do(t, r, http.MethodGet, "/contact/getall", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	userTok, _ := tokens.GenerateToken(primitive.NewObjectID().Hex(), "u", "u@x.org", jwt.RoleUser)
	w, _ = do(t, r, http.MethodGet, "/contact/getall", userTok, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	adminTok, _ := tokens.GenerateToken(primitive.NewObjectID().Hex(), "a", "a@x.org", jwt.RoleAdmin)
	w, data = do(t, r, http.MethodGet, "/contact/getall", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []Submission
	require.NoError(t, json.Unmarshal(data, &list))
	require.Len(t, list, 1)

	w, _ = do(t, r, http.MethodGet, "/contact/getbyid/"+created.ID.Hex(), adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodDelete, "/contact/delete/"+created.ID.Hex(), adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/contact/getbyid/"+created.ID.Hex(), adminTok, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
