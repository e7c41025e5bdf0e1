package posts

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/pagination"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/validator"
)

type memStore struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*Post
	seq   int
}

func newMemStore() *memStore {
	return &memStore{posts: map[primitive.ObjectID]*Post{}}
}

func (m *memStore) Create(_ context.Context, p *Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Unix(int64(m.seq), 0)
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *memStore) FindAll(_ context.Context, f Filter, page pagination.Request) ([]Post, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Post{}
	for _, p := range m.posts {
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		if f.AuthorID != nil && p.AuthorID != *f.AuthorID {
			continue
		}
		if f.AuthorType != "" && string(p.AuthorType) != f.AuthorType {
			continue
		}
		if f.Tag != "" && !contains(p.Tags, f.Tag) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := int64(len(out))
	if page.Enabled() {
		start := int(page.Skip())
		if start > len(out) {
			start = len(out)
		}
		end := start + page.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, total, nil
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (m *memStore) FindByID(_ context.Context, id primitive.ObjectID) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) mutate(id primitive.ObjectID, fn func(*Post)) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	fn(p)
	cp := *p
	return &cp, nil
}

func (m *memStore) View(_ context.Context, id primitive.ObjectID) (*Post, error) {
	return m.mutate(id, func(p *Post) { p.Views++ })
}

func (m *memStore) Like(_ context.Context, id primitive.ObjectID) (*Post, error) {
	return m.mutate(id, func(p *Post) { p.Likes++ })
}

func (m *memStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*Post, error) {
	return m.mutate(id, func(p *Post) {
		if v, ok := set["title"]; ok {
			p.Title = v.(string)
		}
		if v, ok := set["tags"]; ok {
			p.Tags = v.([]string)
		}
	})
}

func (m *memStore) Delete(_ context.Context, id primitive.ObjectID) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	delete(m.posts, id)
	return p, nil
}

type envelope struct {
	Code string          `json:"code"`
	Data json.RawMessage `json:"data"`
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
	RegisterRoutes(f.router, newMemStore(), f.tokens, time.Second)
	return f
}

func (f *fixture) token(t *testing.T, id primitive.ObjectID, role jwt.Role) string {
	t.Helper()
	tok, err := f.tokens.GenerateToken(id.Hex(), "Red Cross", "rc@x.org", role)
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
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func (f *fixture) add(t *testing.T, token string, body gin.H) Post {
	t.Helper()
	code, env := f.do(t, http.MethodPost, "/posts/add", token, body)
	require.Equal(t, http.StatusCreated, code)
	var p Post
	require.NoError(t, json.Unmarshal(env.Data, &p))
	return p
}

func TestAdd_SetsAuthorFromClaims(t *testing.T) {
	f := newFixture(t)
	ngo := primitive.NewObjectID()

	p := f.add(t, f.token(t, ngo, jwt.RoleNGO), gin.H{
		"title": "Flood relief", "content": "Volunteers needed", "type": "story", "tags": []string{"Relief", "relief ", "flood"},
	})
	assert.Equal(t, ngo, p.AuthorID)
	assert.Equal(t, jwt.RoleNGO, p.AuthorType)
	assert.Equal(t, "Red Cross", p.AuthorName)
	assert.Equal(t, []string{"relief", "flood"}, p.Tags)
	assert.Zero(t, p.Likes)

	code, env := f.do(t, http.MethodPost, "/posts/add", f.token(t, ngo, jwt.RoleNGO), gin.H{"title": "x", "content": "y", "type": "poem"})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)

	code, _ = f.do(t, http.MethodPost, "/posts/add", "", gin.H{"title": "x", "content": "y", "type": "story"})
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestGetByID_CountsViews(t *testing.T) {
	f := newFixture(t)
	p := f.add(t, f.token(t, primitive.NewObjectID(), jwt.RoleUser), gin.H{"title": "t", "content": "c", "type": "guide"})

	var got Post
	for i := 0; i < 3; i++ {
		code, env := f.do(t, http.MethodGet, "/posts/getbyid/"+p.ID.Hex(), "", nil)
		require.Equal(t, http.StatusOK, code)
		require.NoError(t, json.Unmarshal(env.Data, &got))
	}
	assert.Equal(t, 3, got.Views)

	code, _ := f.do(t, http.MethodGet, "/posts/getbyid/"+primitive.NewObjectID().Hex(), "", nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestLike_NotDeduplicated(t *testing.T) {
	f := newFixture(t)
	tok := f.token(t, primitive.NewObjectID(), jwt.RoleUser)
	p := f.add(t, tok, gin.H{"title": "t", "content": "c", "type": "video"})

	var got Post
	for i := 0; i < 2; i++ {
		code, env := f.do(t, http.MethodPost, "/posts/like/"+p.ID.Hex(), tok, nil)
		require.Equal(t, http.StatusOK, code)
		require.NoError(t, json.Unmarshal(env.Data, &got))
	}
	assert.Equal(t, 2, got.Likes)
}

func TestUpdateDelete_AuthorOrAdmin(t *testing.T) {
	f := newFixture(t)
	author := f.token(t, primitive.NewObjectID(), jwt.RoleSocialWorker)
	p := f.add(t, author, gin.H{"title": "t", "content": "c", "type": "article"})
	path := p.ID.Hex()

	stranger := f.token(t, primitive.NewObjectID(), jwt.RoleSocialWorker)
	code, _ := f.do(t, http.MethodPut, "/posts/update/"+path, stranger, gin.H{"title": "mine"})
	require.Equal(t, http.StatusForbidden, code)

	code, env := f.do(t, http.MethodPut, "/posts/update/"+path, author, gin.H{"title": "Edited"})
	require.Equal(t, http.StatusOK, code)
	var got Post
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Edited", got.Title)

	code, _ = f.do(t, http.MethodDelete, "/posts/delete/"+path, stranger, nil)
	require.Equal(t, http.StatusForbidden, code)

	admin := f.token(t, primitive.NewObjectID(), jwt.RoleAdmin)
	code, _ = f.do(t, http.MethodDelete, "/posts/delete/"+path, admin, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = f.do(t, http.MethodDelete, "/posts/delete/"+path, admin, nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestGetAll_FiltersAndPages(t *testing.T) {
	f := newFixture(t)
	ngo := primitive.NewObjectID()
	ngoTok := f.token(t, ngo, jwt.RoleNGO)
	userTok := f.token(t, primitive.NewObjectID(), jwt.RoleUser)

	f.add(t, ngoTok, gin.H{"title": "1", "content": "c", "type": "story", "tags": []string{"health"}})
	f.add(t, ngoTok, gin.H{"title": "2", "content": "c", "type": "guide"})
	f.add(t, userTok, gin.H{"title": "3", "content": "c", "type": "story"})

	count := func(path string) int {
		code, env := f.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, code, path)
		var list []Post
		require.NoError(t, json.Unmarshal(env.Data, &list))
		return len(list)
	}

	assert.Equal(t, 3, count("/posts/getall"))
	assert.Equal(t, 2, count("/posts/getall?type=story"))
	assert.Equal(t, 1, count("/posts/getall?tag=Health"))
	assert.Equal(t, 1, count("/posts/getall?authorType=user"))
	assert.Equal(t, 2, count("/posts/getall?authorId="+ngo.Hex()))
	assert.Equal(t, 2, count("/posts/getbyauthor/"+ngo.Hex()))

	code, env := f.do(t, http.MethodGet, "/posts/getall?page=2&limit=2", "", nil)
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Items []Post `json:"items"`
		Total int64  `json:"total"`
		Page  int    `json:"page"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, "1", page.Items[0].Title)

	code, _ = f.do(t, http.MethodGet, "/posts/getall?authorId=bad", "", nil)
	require.Equal(t, http.StatusBadRequest, code)
}
