package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuliyevMSH/gubre-evi-main/internal/admin"
	"github.com/QuliyevMSH/gubre-evi-main/internal/auth"
	"github.com/QuliyevMSH/gubre-evi-main/internal/cart"
	"github.com/QuliyevMSH/gubre-evi-main/internal/catalog"
	"github.com/QuliyevMSH/gubre-evi-main/internal/domain"
	"github.com/QuliyevMSH/gubre-evi-main/internal/notify"
	"github.com/QuliyevMSH/gubre-evi-main/internal/profile"
	"github.com/QuliyevMSH/gubre-evi-main/internal/storage"
	"github.com/QuliyevMSH/gubre-evi-main/internal/store"
)

// memStore is an in-memory store.Store that publishes change events the
// way the Postgres store does.
type memStore struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	nextID   int64
	baskets  map[uuid.UUID][]domain.BasketEntry
	profiles map[uuid.UUID]domain.Profile
	users    map[uuid.UUID]domain.User
	feed     notify.Publisher
}

func newMemStore(feed notify.Publisher) *memStore {
	return &memStore{
		products: make(map[int64]domain.Product),
		nextID:   1,
		baskets:  make(map[uuid.UUID][]domain.BasketEntry),
		profiles: make(map[uuid.UUID]domain.Profile),
		users:    make(map[uuid.UUID]domain.User),
		feed:     feed,
	}
}

func (m *memStore) publish(table string, op notify.Op) {
	_ = m.feed.Publish(context.Background(), notify.Event{Table: table, Op: op})
}

func (m *memStore) ListProducts(context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Product, 0, len(m.products))
	for id := int64(1); id < m.nextID; id++ {
		if p, ok := m.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrProductNotFound
	}
	return &p, nil
}

func (m *memStore) InsertProduct(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	p.ID = m.nextID
	m.nextID++
	m.products[p.ID] = *p
	m.mu.Unlock()
	m.publish(store.TableProducts, notify.OpInsert)
	return nil
}

func (m *memStore) UpdateProduct(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	if _, ok := m.products[p.ID]; !ok {
		m.mu.Unlock()
		return store.ErrProductNotFound
	}
	m.products[p.ID] = *p
	m.mu.Unlock()
	m.publish(store.TableProducts, notify.OpUpdate)
	return nil
}

func (m *memStore) DeleteProduct(_ context.Context, id int64) error {
	m.mu.Lock()
	if _, ok := m.products[id]; !ok {
		m.mu.Unlock()
		return store.ErrProductNotFound
	}
	delete(m.products, id)
	m.mu.Unlock()
	m.publish(store.TableProducts, notify.OpDelete)
	return nil
}

func (m *memStore) DeleteBasketByProduct(_ context.Context, productID int64) error {
	m.mu.Lock()
	for userID, entries := range m.baskets {
		kept := entries[:0]
		for _, e := range entries {
			if e.ProductID != productID {
				kept = append(kept, e)
			}
		}
		m.baskets[userID] = kept
	}
	m.mu.Unlock()
	m.publish(store.TableBasket, notify.OpDelete)
	return nil
}

func (m *memStore) ListBasketLines(_ context.Context, userID uuid.UUID) ([]domain.BasketLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]domain.BasketLine, 0, len(m.baskets[userID]))
	for _, e := range m.baskets[userID] {
		lines = append(lines, domain.BasketLine{Entry: e, Product: m.products[e.ProductID]})
	}
	return lines, nil
}

func (m *memStore) UpsertBasketIncrement(_ context.Context, userID uuid.UUID, productID int64, delta int) error {
	m.mu.Lock()
	if _, ok := m.products[productID]; !ok {
		m.mu.Unlock()
		return store.ErrProductNotFound
	}
	for i, e := range m.baskets[userID] {
		if e.ProductID == productID {
			m.baskets[userID][i].Quantity += delta
			m.mu.Unlock()
			m.publish(store.TableBasket, notify.OpUpdate)
			return nil
		}
	}
	m.baskets[userID] = append(m.baskets[userID], domain.BasketEntry{
		ID: uuid.New(), UserID: userID, ProductID: productID, Quantity: delta, CreatedAt: time.Now(),
	})
	m.mu.Unlock()
	m.publish(store.TableBasket, notify.OpInsert)
	return nil
}

func (m *memStore) SetBasketQuantity(_ context.Context, entryID, userID uuid.UUID, quantity int) error {
	m.mu.Lock()
	for i, e := range m.baskets[userID] {
		if e.ID == entryID {
			m.baskets[userID][i].Quantity = quantity
			m.mu.Unlock()
			m.publish(store.TableBasket, notify.OpUpdate)
			return nil
		}
	}
	m.mu.Unlock()
	return store.ErrEntryNotFound
}

func (m *memStore) DeleteBasketEntry(_ context.Context, entryID, userID uuid.UUID) error {
	m.mu.Lock()
	for i, e := range m.baskets[userID] {
		if e.ID == entryID {
			m.baskets[userID] = append(m.baskets[userID][:i], m.baskets[userID][i+1:]...)
			m.mu.Unlock()
			m.publish(store.TableBasket, notify.OpDelete)
			return nil
		}
	}
	m.mu.Unlock()
	return store.ErrEntryNotFound
}

func (m *memStore) DeleteBasketByUser(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	delete(m.baskets, userID)
	m.mu.Unlock()
	m.publish(store.TableBasket, notify.OpDelete)
	return nil
}

func (m *memStore) GetProfile(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return &p, nil
}

func (m *memStore) UpsertProfile(_ context.Context, p *domain.Profile) error {
	m.mu.Lock()
	m.profiles[p.ID] = *p
	m.mu.Unlock()
	m.publish(store.TableProfiles, notify.OpUpdate)
	return nil
}

func (m *memStore) DeleteProfile(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	delete(m.profiles, id)
	m.mu.Unlock()
	m.publish(store.TableProfiles, notify.OpDelete)
	return nil
}

func (m *memStore) CreateUser(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return store.ErrEmailTaken
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memStore) GetUser(_ context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *memStore) ListUsers(context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memStore) DeleteUser(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memStore) makeAdmin(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.users[id]
	u.IsAdmin = true
	m.users[id] = u
}

type fixture struct {
	srv   *httptest.Server
	store *memStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	broker := notify.NewBroker()
	st := newMemStore(broker)
	bucket := storage.NewMemoryBucket("http://objects.local/avatars")

	authSvc := auth.NewService(st, st, []byte("test-secret"), time.Hour, log)
	catalogSvc := catalog.NewService(st, catalog.NopCache{}, log)
	profileSvc := profile.NewService(st, bucket, log)
	adminSvc := admin.NewService(st, catalogSvc, bucket, log)
	facade := cart.NewFacade(st, log)

	s := New(log, authSvc, catalogSvc, profileSvc, adminSvc, facade, st, broker, 5*time.Second)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	return &fixture{srv: srv, store: st}
}

func (f *fixture) do(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, f.srv.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (f *fixture) signUp(t *testing.T, email string) (uuid.UUID, string) {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/v1/auth/signup", "", credentialsDTO{Email: email, Password: "correct horse"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode[authResponseDTO](t, resp)
	return body.User.ID, body.Token
}

func (f *fixture) adminToken(t *testing.T) string {
	t.Helper()
	id, _ := f.signUp(t, "admin@example.com")
	f.store.makeAdmin(id)
	resp := f.do(t, http.MethodPost, "/api/v1/auth/signin", "", credentialsDTO{Email: "admin@example.com", Password: "correct horse"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[authResponseDTO](t, resp).Token
}

func (f *fixture) seedProduct(t *testing.T, name string, price float64) int64 {
	t.Helper()
	p := &domain.Product{Name: name, Price: price}
	require.NoError(t, f.store.InsertProduct(context.Background(), p))
	return p.ID
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/health", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	f := newFixture(t)

	_, token := f.signUp(t, "aysel@example.com")
	assert.NotEmpty(t, token)

	resp := f.do(t, http.MethodPost, "/api/v1/auth/signup", "", credentialsDTO{Email: "aysel@example.com", Password: "another pass"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/v1/auth/signin", "", credentialsDTO{Email: "aysel@example.com", Password: "wrong pass!"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/v1/auth/signup", "", credentialsDTO{Email: "bad", Password: "correct horse"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListProducts(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "NPK Gübrəsi", 45.99)
	f.seedProduct(t, "Azot Gübrəsi", 12.50)

	resp := f.do(t, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products := decode[[]domain.Product](t, resp)
	assert.Len(t, products, 2)

	resp = f.do(t, http.MethodGet, "/api/v1/products?q=azot", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	products = decode[[]domain.Product](t, resp)
	require.Len(t, products, 1)
	assert.Equal(t, "Azot Gübrəsi", products[0].Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/api/v1/products/999", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCart_RequiresAuth(t *testing.T) {
	f := newFixture(t)
	resp := f.do(t, http.MethodGet, "/api/v1/cart", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/v1/cart", "garbage-token", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCartFlow(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "NPK Gübrəsi", 45.99)
	_, token := f.signUp(t, "aysel@example.com")

	// Empty cart carries the empty-state message.
	resp := f.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[cartViewDTO](t, resp)
	assert.Empty(t, view.Items)
	assert.Equal(t, "0.00", view.Total)
	assert.Equal(t, "Səbət boşdur", view.Message)

	resp = f.do(t, http.MethodPost, "/api/v1/cart/items", token, addItemDTO{ProductID: productID, Quantity: 2})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = decode[cartViewDTO](t, resp)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Entry.Quantity)
	assert.Equal(t, "91.98", view.Total)
	assert.Empty(t, view.Message)

	// Adding the same product again increments, not duplicates.
	resp = f.do(t, http.MethodPost, "/api/v1/cart/items", token, addItemDTO{ProductID: productID, Quantity: 1})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	view = decode[cartViewDTO](t, resp)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Entry.Quantity)

	// Setting quantity to zero removes the entry.
	entryID := view.Items[0].Entry.ID
	resp = f.do(t, http.MethodPut, "/api/v1/cart/items/"+entryID.String(), token, setQuantityDTO{Quantity: 0})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/v1/cart", token, nil)
	view = decode[cartViewDTO](t, resp)
	assert.Empty(t, view.Items)
	assert.Equal(t, "0.00", view.Total)
	assert.Equal(t, "Səbət boşdur", view.Message)
}

func TestCart_InvalidQuantity(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "Azot", 5)
	_, token := f.signUp(t, "aysel@example.com")

	resp := f.do(t, http.MethodPost, "/api/v1/cart/items", token, addItemDTO{ProductID: productID, Quantity: 0})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWatchCart_StreamsUpdates(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, "NPK Gübrəsi", 45.99)
	_, token := f.signUp(t, "aysel@example.com")

	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/api/v1/cart/watch", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	readEvent := func() cartViewDTO {
		t.Helper()
		for scanner.Scan() {
			line := scanner.Text()
			if payload, ok := strings.CutPrefix(line, "data: "); ok {
				var view cartViewDTO
				require.NoError(t, json.Unmarshal([]byte(payload), &view))
				return view
			}
		}
		t.Fatalf("stream ended: %v", scanner.Err())
		return cartViewDTO{}
	}

	// Initial snapshot is the empty cart.
	first := readEvent()
	assert.Equal(t, "0.00", first.Total)

	resp2 := f.do(t, http.MethodPost, "/api/v1/cart/items", token, addItemDTO{ProductID: productID, Quantity: 2})
	resp2.Body.Close()
	require.Equal(t, http.StatusNoContent, resp2.StatusCode)

	// The mutation arrives over the stream without any client refresh.
	next := readEvent()
	require.Len(t, next.Items, 1)
	assert.Equal(t, "91.98", next.Total)
}

func TestAdmin_Guard(t *testing.T) {
	f := newFixture(t)
	_, token := f.signUp(t, "aysel@example.com")

	resp := f.do(t, http.MethodGet, "/api/v1/admin/users", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/v1/admin/users", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdmin_ProductLifecycle(t *testing.T) {
	f := newFixture(t)
	token := f.adminToken(t)

	resp := f.do(t, http.MethodPost, "/api/v1/admin/products", token, admin.ProductInput{Name: "NPK Gübrəsi", Price: "45.99"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[domain.Product](t, resp)
	assert.Equal(t, 45.99, created.Price)

	resp = f.do(t, http.MethodPost, "/api/v1/admin/products", token, admin.ProductInput{Name: "Azot", Price: "not a number"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/products/%d", created.ID), token, admin.ProductInput{Name: "NPK Plus", Price: "50.00"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[domain.Product](t, resp)
	assert.Equal(t, "NPK Plus", updated.Name)

	resp = f.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/products/%d", created.ID), token, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, fmt.Sprintf("/api/v1/products/%d", created.ID), "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdmin_DeleteProductSweepsCarts(t *testing.T) {
	f := newFixture(t)
	adminTok := f.adminToken(t)
	productID := f.seedProduct(t, "Azot", 5)
	_, userTok := f.signUp(t, "aysel@example.com")

	resp := f.do(t, http.MethodPost, "/api/v1/cart/items", userTok, addItemDTO{ProductID: productID, Quantity: 1})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/products/%d", productID), adminTok, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/v1/cart", userTok, nil)
	view := decode[cartViewDTO](t, resp)
	assert.Empty(t, view.Items)
}

func TestAdmin_DeleteUserCascades(t *testing.T) {
	f := newFixture(t)
	adminTok := f.adminToken(t)
	productID := f.seedProduct(t, "Azot", 5)
	userID, userTok := f.signUp(t, "aysel@example.com")

	resp := f.do(t, http.MethodPost, "/api/v1/cart/items", userTok, addItemDTO{ProductID: productID, Quantity: 1})
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/api/v1/admin/users/"+userID.String(), adminTok, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/v1/auth/signin", "", credentialsDTO{Email: "aysel@example.com", Password: "correct horse"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAvatarUpload(t *testing.T) {
	f := newFixture(t)
	_, token := f.signUp(t, "aysel@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, f.srv.URL+"/api/v1/profile/avatar", &buf)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := f.srv.Client().Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p := decode[domain.Profile](t, resp)
	assert.Contains(t, p.AvatarURL, "http://objects.local/avatars/")

	// A form without the avatar field is rejected before any storage call.
	var empty bytes.Buffer
	mw2 := multipart.NewWriter(&empty)
	require.NoError(t, mw2.WriteField("unused", "x"))
	require.NoError(t, mw2.Close())

	req, err = http.NewRequest(http.MethodPost, f.srv.URL+"/api/v1/profile/avatar", &empty)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", mw2.FormDataContentType())

	resp, err = f.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProfileFlow(t *testing.T) {
	f := newFixture(t)
	userID, token := f.signUp(t, "aysel@example.com")

	resp := f.do(t, http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p := decode[domain.Profile](t, resp)
	assert.Equal(t, userID, p.ID)
	assert.Empty(t, p.FirstName)

	resp = f.do(t, http.MethodPut, "/api/v1/profile", token, map[string]string{
		"first_name": "Aysel", "last_name": "Məmmədova",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p = decode[domain.Profile](t, resp)
	assert.Equal(t, "Aysel", p.FirstName)
	assert.Equal(t, "Məmmədova", p.LastName)
}
