package cases

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
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/validator"
)

type memStore struct {
	mu      sync.Mutex
	records map[primitive.ObjectID]CaseRecord
}

func (m *memStore) Create(_ context.Context, rec *CaseRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = primitive.NewObjectID()
	m.records[rec.ID] = *rec
	return nil
}

func (m *memStore) FindAll(_ context.Context, f Filter) ([]CaseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []CaseRecord{}
	for _, r := range m.records {
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.VerificationStatus != "" && r.VerificationStatus != f.VerificationStatus {
			continue
		}
		if f.AuthorID != nil && r.AuthorID != *f.AuthorID {
			continue
		}
		if f.PublicOnly && !r.IsPublic {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memStore) FindByID(_ context.Context, id primitive.ObjectID) (*CaseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*CaseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	for k, v := range set {
		switch k {
		case "title":
			r.Title = v.(string)
		case "isPublic":
			r.IsPublic = v.(bool)
		case "verificationStatus":
			r.VerificationStatus = v.(string)
		case "verificationNote":
			r.VerificationNote = v.(string)
		}
	}
	m.records[id] = r
	return &r, nil
}

func (m *memStore) Delete(_ context.Context, id primitive.ObjectID) (*CaseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	delete(m.records, id)
	return &r, nil
}

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fixture struct {
	router *gin.Engine
	tokens *jwt.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Register()
	f := &fixture{router: gin.New(), tokens: jwt.NewManager("test-secret", time.Hour)}
	RegisterRoutes(f.router, &memStore{records: map[primitive.ObjectID]CaseRecord{}}, f.tokens, time.Second)
	return f
}

func (f *fixture) token(t *testing.T, id primitive.ObjectID, role jwt.Role) string {
	t.Helper()
	tok, err := f.tokens.GenerateToken(id.Hex(), "Helping Hands", "hh@x.org", role)
	require.NoError(t, err)
	return tok
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func (f *fixture) add(t *testing.T, token string, body gin.H) CaseRecord {
	t.Helper()
	code, env := f.do(t, http.MethodPost, "/casemanagement/add", token, body)
	require.Equal(t, http.StatusCreated, code, env.Message)
	var rec CaseRecord
	require.NoError(t, json.Unmarshal(env.Data, &rec))
	return rec
}

func listLen(t *testing.T, f *fixture, path, token string) int {
	t.Helper()
	code, env := f.do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, code)
	var list []CaseRecord
	require.NoError(t, json.Unmarshal(env.Data, &list))
	return len(list)
}

func TestAdd_RolesAndDefaults(t *testing.T) {
	f := newFixture(t)
	body := gin.H{
		"title": "Shelter for family", "description": "Roof collapsed", "category": "housing",
		"images": []string{"https://cdn.example.org/a.jpg"},
	}

	code, _ := f.do(t, http.MethodPost, "/casemanagement/add", f.token(t, primitive.NewObjectID(), jwt.RoleUser), body)
	require.Equal(t, http.StatusForbidden, code)

	sw := primitive.NewObjectID()
	rec := f.add(t, f.token(t, sw, jwt.RoleSocialWorker), body)
	assert.Equal(t, StatusPending, rec.VerificationStatus)
	assert.True(t, rec.IsPublic)
	assert.Equal(t, sw, rec.AuthorID)
	assert.Equal(t, jwt.RoleSocialWorker, rec.AuthorType)
	assert.Equal(t, []string{}, rec.Videos)

	body["images"] = []string{"not a url"}
	code, env := f.do(t, http.MethodPost, "/casemanagement/add", f.token(t, sw, jwt.RoleNGO), body)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)
}

func TestPrivateRecordsVisibility(t *testing.T) {
	f := newFixture(t)
	author := primitive.NewObjectID()
	authorTok := f.token(t, author, jwt.RoleNGO)
	adminTok := f.token(t, primitive.NewObjectID(), jwt.RoleAdmin)
	strangerTok := f.token(t, primitive.NewObjectID(), jwt.RoleUser)

	f.add(t, authorTok, gin.H{"title": "public", "description": "d", "category": "health"})
	private := f.add(t, authorTok, gin.H{"title": "private", "description": "d", "category": "health", "isPublic": false})

	assert.Equal(t, 1, listLen(t, f, "/casemanagement/getall", ""))
	assert.Equal(t, 1, listLen(t, f, "/casemanagement/getall", strangerTok))
	assert.Equal(t, 2, listLen(t, f, "/casemanagement/getall", adminTok))

	byAuthor := "/casemanagement/getbyauthor/" + author.Hex()
	assert.Equal(t, 1, listLen(t, f, byAuthor, strangerTok))
	assert.Equal(t, 2, listLen(t, f, byAuthor, authorTok))
	assert.Equal(t, 2, listLen(t, f, byAuthor, adminTok))

	path := "/casemanagement/getbyid/" + private.ID.Hex()
	code, _ := f.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusNotFound, code)
	code, _ = f.do(t, http.MethodGet, path, strangerTok, nil)
	require.Equal(t, http.StatusNotFound, code)
	code, _ = f.do(t, http.MethodGet, path, authorTok, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = f.do(t, http.MethodGet, path, adminTok, nil)
	require.Equal(t, http.StatusOK, code)
}

func TestVerify_AdminOnly(t *testing.T) {
	f := newFixture(t)
	authorTok := f.token(t, primitive.NewObjectID(), jwt.RoleNGO)
	rec := f.add(t, authorTok, gin.H{"title": "t", "description": "d", "category": "education"})
	path := "/casemanagement/verify/" + rec.ID.Hex()

	code, _ := f.do(t, http.MethodPut, path, authorTok, gin.H{"verificationStatus": "Verified"})
	require.Equal(t, http.StatusForbidden, code)

	adminTok := f.token(t, primitive.NewObjectID(), jwt.RoleAdmin)
	code, env := f.do(t, http.MethodPut, path, adminTok, gin.H{"verificationStatus": "Approved"})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)

	code, env = f.do(t, http.MethodPut, path, adminTok, gin.H{"verificationStatus": "Verified", "verificationNote": "Documents checked"})
	require.Equal(t, http.StatusOK, code)
	var got CaseRecord
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, StatusVerified, got.VerificationStatus)
	assert.Equal(t, "Documents checked", got.VerificationNote)

	assert.Equal(t, 1, listLen(t, f, "/casemanagement/getall?verificationStatus=Verified", ""))
	assert.Equal(t, 0, listLen(t, f, "/casemanagement/getall?verificationStatus=Pending", ""))
	assert.Equal(t, 1, listLen(t, f, "/casemanagement/getall?category=education", ""))

	code, _ = f.do(t, http.MethodPut, "/casemanagement/verify/"+primitive.NewObjectID().Hex(), adminTok, gin.H{"verificationStatus": "Rejected"})
	require.Equal(t, http.StatusNotFound, code)
}

func TestUpdateDelete_AuthorOrAdmin(t *testing.T) {
	f := newFixture(t)
	authorTok := f.token(t, primitive.NewObjectID(), jwt.RoleSocialWorker)
	rec := f.add(t, authorTok, gin.H{"title": "t", "description": "d", "category": "food"})

	other := f.token(t, primitive.NewObjectID(), jwt.RoleSocialWorker)
	code, _ := f.do(t, http.MethodPut, "/casemanagement/update/"+rec.ID.Hex(), other, gin.H{"title": "x"})
	require.Equal(t, http.StatusForbidden, code)

	code, env := f.do(t, http.MethodPut, "/casemanagement/update/"+rec.ID.Hex(), authorTok, gin.H{"title": "Food kits"})
	require.Equal(t, http.StatusOK, code)
	var got CaseRecord
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Food kits", got.Title)

	code, _ = f.do(t, http.MethodDelete, "/casemanagement/delete/"+rec.ID.Hex(), other, nil)
	require.Equal(t, http.StatusForbidden, code)
	code, _ = f.do(t, http.MethodDelete, "/casemanagement/delete/"+rec.ID.Hex(), authorTok, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = f.do(t, http.MethodGet, "/casemanagement/getbyid/"+rec.ID.Hex(), authorTok, nil)
	require.Equal(t, http.StatusNotFound, code)
}
