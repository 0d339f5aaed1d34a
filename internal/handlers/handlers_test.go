// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"iturinews/internal/auth"
	"iturinews/internal/authz"
	"iturinews/internal/content"
	"iturinews/internal/handlers"
	"iturinews/internal/models"
	"iturinews/internal/router"
	"iturinews/internal/session"
	"iturinews/internal/storage/inmemory"
)

// app wires the whole HTTP surface over in-memory backends, the same
// shape main assembles over Postgres and Valkey.
type app struct {
	handler http.Handler
	store   *inmemory.Store
}

func newApp(t *testing.T) *app {
	t.Helper()
	store := inmemory.New()

	_, err := store.AddDomain(models.Domain{Name: "Sport", Slug: "sport", Color: models.ColorEmerald})
	require.NoError(t, err)
	_, err = store.AddDomain(models.Domain{Name: "Politique", Slug: "politique", Color: models.ColorRose})
	require.NoError(t, err)

	email := func(s string) *string { return &s }
	_, err = store.AddAuthor(models.Author{FullName: "Jane K. Mateso", Email: email("jane@example.com")})
	require.NoError(t, err)
	_, err = store.AddAuthor(models.Author{FullName: "Admin", Email: email("admin@example.com")})
	require.NoError(t, err)

	for _, u := range []models.User{
		{Email: "jane@example.com", Name: "Jane", Role: models.RoleJournalist},
		{Email: "reader@example.com", Name: "Marc Kabila", Role: models.RoleReader},
		{Email: "admin@example.com", Name: "Admin", Role: models.RoleSuperadmin},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
		require.NoError(t, err)
		hashStr := string(hash)
		u.PasswordHash = &hashStr
		_, err = store.AddUser(u)
		require.NoError(t, err)
	}

	contentService := content.New(store, authz.New())
	authService := auth.New(store, session.NewStore(session.NewMemoryKV()), nil)

	h := router.New(
		authService,
		handlers.NewPublic(contentService),
		handlers.NewPosts(contentService),
		handlers.NewAuth(authService, false),
		handlers.NewAdmin(contentService),
		[]string{"http://localhost:5173"},
	)
	return &app{handler: h, store: store}
}

// do performs a JSON request against the app. A non-empty token is sent
// as a bearer header. The decoded body lands in out when out is non-nil.
func (a *app) do(t *testing.T, method, path, token string, body, out any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func (a *app) signIn(t *testing.T, email string) string {
	t.Helper()
	var resp struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	rec := a.do(t, http.MethodPost, "/api/auth/signin", "",
		map[string]string{"email": email, "password": "password"}, &resp)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (a *app) createPost(t *testing.T, token, title, domainID string) models.Post {
	t.Helper()
	var post models.Post
	rec := a.do(t, http.MethodPost, "/api/posts", token, map[string]string{
		"title":       title,
		"domainId":    domainID,
		"htmlContent": "<p>body</p>",
		"excerpt":     "an excerpt",
	}, &post)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return post
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	rec := a.do(t, http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicCatalog(t *testing.T) {
	a := newApp(t)

	var domains []models.Domain
	rec := a.do(t, http.MethodGet, "/api/domains", "", nil, &domains)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, domains, 2)

	var authors []models.Author
	rec = a.do(t, http.MethodGet, "/api/authors", "", nil, &authors)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, authors, 2)
}

func TestPublicationFlow(t *testing.T) {
	a := newApp(t)
	token := a.signIn(t, "jane@example.com")

	var domains []models.Domain
	a.do(t, http.MethodGet, "/api/domains", "", nil, &domains)
	post := a.createPost(t, token, "Derby de Bunia", domains[0].ID)
	assert.Equal(t, "derby-de-bunia", post.Slug)
	assert.Equal(t, models.PostStatusDraft, post.Status)

	// Not yet on the public listing.
	var listing models.PostsResponse
	rec := a.do(t, http.MethodGet, "/api/posts", "", nil, &listing)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, listing.Total)

	// Draft slugs 404 for the public.
	rec = a.do(t, http.MethodGet, "/api/posts/derby-de-bunia", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var published models.Post
	rec = a.do(t, http.MethodPost, "/api/posts/"+post.ID+"/publish", token, nil, &published)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.PostStatusPublished, published.Status)

	rec = a.do(t, http.MethodGet, "/api/posts", "", nil, &listing)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, listing.Total)
	assert.Equal(t, post.ID, listing.Items[0].ID)

	// Anonymous readers see everything but the body.
	var anon models.Post
	rec = a.do(t, http.MethodGet, "/api/posts/derby-de-bunia", "", nil, &anon)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, anon.HTMLContent)

	readerToken := a.signIn(t, "reader@example.com")
	var full models.Post
	rec = a.do(t, http.MethodGet, "/api/posts/derby-de-bunia", readerToken, nil, &full)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>body</p>", full.HTMLContent)
	assert.Equal(t, 2, full.ViewCount)
}

func TestPostEndpointGating(t *testing.T) {
	a := newApp(t)
	readerToken := a.signIn(t, "reader@example.com")

	body := map[string]string{"title": "X", "domainId": "whatever"}

	rec := a.do(t, http.MethodPost, "/api/posts", "", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(t, http.MethodPost, "/api/posts", readerToken, body, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/me/posts", readerToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateAndOwnership(t *testing.T) {
	a := newApp(t)
	janeToken := a.signIn(t, "jane@example.com")
	adminToken := a.signIn(t, "admin@example.com")

	var domains []models.Domain
	a.do(t, http.MethodGet, "/api/domains", "", nil, &domains)
	post := a.createPost(t, janeToken, "Original", domains[0].ID)

	var updated models.Post
	rec := a.do(t, http.MethodPut, "/api/posts/"+post.ID, janeToken,
		map[string]string{"title": "Corrected"}, &updated)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Corrected", updated.Title)
	assert.Equal(t, post.Slug, updated.Slug)

	// Superadmin may edit anyone's post; readers may not.
	rec = a.do(t, http.MethodPut, "/api/posts/"+post.ID, adminToken,
		map[string]string{"title": "Admin Edit"}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodPut, "/api/posts/missing", janeToken,
		map[string]string{"title": "X"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComments(t *testing.T) {
	a := newApp(t)
	janeToken := a.signIn(t, "jane@example.com")
	readerToken := a.signIn(t, "reader@example.com")

	var domains []models.Domain
	a.do(t, http.MethodGet, "/api/domains", "", nil, &domains)
	post := a.createPost(t, janeToken, "Commented", domains[0].ID)

	rec := a.do(t, http.MethodPost, "/api/posts/"+post.ID+"/comments", "",
		map[string]string{"content": "hello"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var comment models.Comment
	rec = a.do(t, http.MethodPost, "/api/posts/"+post.ID+"/comments", readerToken,
		map[string]string{"content": "Quel match !"}, &comment)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Marc Kabila", comment.Author.Name)

	rec = a.do(t, http.MethodPost, "/api/posts/"+post.ID+"/comments", readerToken,
		map[string]string{"content": "  "}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthEndpoints(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, http.MethodGet, "/api/auth/me", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(t, http.MethodPost, "/api/auth/signin", "",
		map[string]string{"email": "jane@example.com", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(t, http.MethodPost, "/api/auth/signin", "", map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	token := a.signIn(t, "jane@example.com")

	var me models.User
	rec = a.do(t, http.MethodGet, "/api/auth/me", token, nil, &me)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jane@example.com", me.Email)
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	rec = a.do(t, http.MethodPost, "/api/auth/signout", token, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(t, http.MethodGet, "/api/auth/me", token, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionCookieFallback(t *testing.T) {
	a := newApp(t)
	token := a.signIn(t, "jane@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "in_session", Value: token})
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminEndpoints(t *testing.T) {
	a := newApp(t)
	janeToken := a.signIn(t, "jane@example.com")
	adminToken := a.signIn(t, "admin@example.com")

	rec := a.do(t, http.MethodGet, "/api/admin/users", janeToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var users []models.User
	rec = a.do(t, http.MethodGet, "/api/admin/users", adminToken, nil, &users)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, users, 3)

	var readerID string
	for _, u := range users {
		if u.Email == "reader@example.com" {
			readerID = u.ID
		}
	}
	require.NotEmpty(t, readerID)

	var promoted models.User
	rec = a.do(t, http.MethodPut, "/api/admin/users/"+readerID+"/role", adminToken,
		map[string]string{"role": "journalist"}, &promoted)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.RoleJournalist, promoted.Role)

	rec = a.do(t, http.MethodPut, "/api/admin/users/"+readerID+"/role", adminToken,
		map[string]string{"role": "emperor"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListingQueryParams(t *testing.T) {
	a := newApp(t)
	token := a.signIn(t, "jane@example.com")

	var domains []models.Domain
	a.do(t, http.MethodGet, "/api/domains", "", nil, &domains)
	sport, politique := domains[0], domains[1]
	if sport.Slug != "sport" {
		sport, politique = politique, sport
	}

	for i := 0; i < 5; i++ {
		post := a.createPost(t, token, fmt.Sprintf("Sport Story %d", i), sport.ID)
		rec := a.do(t, http.MethodPost, "/api/posts/"+post.ID+"/publish", token, nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	other := a.createPost(t, token, "Politique Story", politique.ID)
	rec := a.do(t, http.MethodPost, "/api/posts/"+other.ID+"/publish", token, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing models.PostsResponse
	rec = a.do(t, http.MethodGet, "/api/posts?domain=sport&page=2&pageSize=3", "", nil, &listing)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, listing.Total)
	assert.Len(t, listing.Items, 2)
	assert.Equal(t, 2, listing.Page)
	assert.Equal(t, 3, listing.PageSize)

	rec = a.do(t, http.MethodGet, "/api/posts?q=politique", "", nil, &listing)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, listing.Total)
	assert.Equal(t, other.ID, listing.Items[0].ID)
}

func TestMinePosts(t *testing.T) {
	a := newApp(t)
	token := a.signIn(t, "jane@example.com")

	var domains []models.Domain
	a.do(t, http.MethodGet, "/api/domains", "", nil, &domains)
	a.createPost(t, token, "Mine One", domains[0].ID)
	a.createPost(t, token, "Mine Two", domains[0].ID)

	var mine []models.Post
	rec := a.do(t, http.MethodGet, "/api/me/posts", token, nil, &mine)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, mine, 2)
}

func TestMalformedBody(t *testing.T) {
	a := newApp(t)
	token := a.signIn(t, "jane@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
