package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/auth"
	"github.com/a7med3yad/Cartify-Frontend/cart"
	"github.com/a7med3yad/Cartify-Frontend/clients"
	"github.com/a7med3yad/Cartify-Frontend/models"
	"github.com/a7med3yad/Cartify-Frontend/storage"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	mem      *storage.MemoryStore
	tokens   *auth.TokenStore
	cart     *cart.CartStore
	wishlist *WishlistStore

	mu       sync.Mutex
	requests []string
}

func (h *harness) record(r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, r.Method+" "+r.URL.Path)
}

func (h *harness) seen() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.requests...)
}

func newHarness(t *testing.T, handler http.HandlerFunc) *harness {
	t.Helper()
	h := &harness{mem: storage.NewMemoryStore()}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.record(r)
		if handler != nil {
			handler(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	h.tokens = auth.NewTokenStore(h.mem, nil)
	h.cart = cart.NewCartStore(h.mem, nil)
	gw := clients.NewGatewayClient(srv.URL, clients.GatewayOptions{Tokens: h.tokens})
	h.wishlist = NewWishlistStore(Options{
		Gateway:  gw,
		Sessions: h.tokens,
		Store:    h.mem,
		Cart:     h.cart,
	})
	return h
}

func (h *harness) signIn(t *testing.T, userID string) {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID}).SignedString([]byte("test"))
	require.NoError(t, err)
	_, err = h.tokens.SetSession(context.Background(), auth.AuthResponse{JWT: token})
	require.NoError(t, err)
}

func (h *harness) seedLocal(t *testing.T, lines string) {
	t.Helper()
	require.NoError(t, h.mem.Set(context.Background(), storage.KeyWishlist, []byte(lines)))
}

func TestLoadWithoutSessionReadsLocal(t *testing.T) {
	h := newHarness(t, nil)
	h.seedLocal(t, `[{"id":1,"name":"Lamp","price":10,"image":"l.png"}]`)

	lines := h.wishlist.Load(context.Background())
	require.Len(t, lines, 1)
	assert.Equal(t, models.ID("1"), lines[0].ProductID)
	require.NotNil(t, lines[0].ImageURL)
	assert.Equal(t, "l.png", *lines[0].ImageURL)
	assert.Empty(t, h.seen())
}

func TestLoadWithSessionReadsRemote(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Wishlist/GetWishlist/42", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"productId":7,"productName":"Chair","unitPrice":"30.00"}]}`))
	})
	h.signIn(t, "42")
	h.seedLocal(t, `[{"id":1,"name":"Lamp","price":10}]`)

	lines := h.wishlist.Load(context.Background())
	require.Len(t, lines, 1)
	assert.Equal(t, models.ID("7"), lines[0].ProductID)
	assert.Equal(t, "Chair", lines[0].Name)
}

func TestLoadFallsBackToLocalOnFailure(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusNotFound, http.StatusUnauthorized} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			})
			h.signIn(t, "42")
			h.seedLocal(t, `[{"id":1,"name":"Lamp","price":10}]`)

			lines := h.wishlist.Load(context.Background())
			require.Len(t, lines, 1)
			assert.Equal(t, models.ID("1"), lines[0].ProductID)
		})
	}
}

func TestLoadFallsBackOnUndecodableBody(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`"not a list"`))
	})
	h.signIn(t, "42")
	h.seedLocal(t, `[{"id":1}]`)

	lines := h.wishlist.Load(context.Background())
	require.Len(t, lines, 1)
}

func TestRemoveRemoteFailureLeavesEverythingInPlace(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"boom"}`))
		default:
			_, _ = w.Write([]byte(`[{"productId":7,"productName":"Chair","price":30}]`))
		}
	})
	h.signIn(t, "42")
	local := `[{"id":7,"name":"Chair","price":30}]`
	h.seedLocal(t, local)

	err := h.wishlist.Remove(context.Background(), "7")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrRequestFailed))
	assert.Equal(t, "boom", err.Error())

	lines := h.wishlist.Load(context.Background())
	require.Len(t, lines, 1)
	assert.Equal(t, models.ID("7"), lines[0].ProductID)

	raw, _, err := h.mem.Get(context.Background(), storage.KeyWishlist)
	require.NoError(t, err)
	assert.Equal(t, local, string(raw))
	assert.Contains(t, h.seen(), "DELETE /api/Wishlist/Remove/7")
}

func TestRemoveRemoteSuccess(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h.signIn(t, "42")

	require.NoError(t, h.wishlist.Remove(context.Background(), "7"))
	assert.Equal(t, []string{"DELETE /api/Wishlist/Remove/7"}, h.seen())
}

func TestRemoveLocalIsIdempotent(t *testing.T) {
	h := newHarness(t, nil)
	h.seedLocal(t, `[{"id":1,"name":"Lamp"},{"id":2,"name":"Rug"}]`)
	ctx := context.Background()

	require.NoError(t, h.wishlist.Remove(ctx, "1"))
	require.NoError(t, h.wishlist.Remove(ctx, "1"))

	lines := h.wishlist.Load(ctx)
	require.Len(t, lines, 1)
	assert.Equal(t, models.ID("2"), lines[0].ProductID)
	assert.Empty(t, h.seen())
}

func TestCustomEndpoints(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h.wishlist.endpoints = Endpoints{
		List:   "/api/controller/products/user/{userId}/wishlist",
		Add:    "/api/controller/products/user/{userId}/wishlist",
		Remove: "/api/controller/products/user/{userId}/wishlist/{productId}",
	}
	h.signIn(t, "42")

	require.NoError(t, h.wishlist.Remove(context.Background(), "a/b"))
	assert.Equal(t, []string{"DELETE /api/controller/products/user/42/wishlist/a/b"}, h.seen())
}

func TestAddLocalDeduplicates(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	line := models.WishlistLine{ProductID: "3", Name: "Vase", Price: decimal.RequireFromString("8.5")}

	require.NoError(t, h.wishlist.Add(ctx, line))
	require.NoError(t, h.wishlist.Add(ctx, line))

	lines := h.wishlist.Load(ctx)
	require.Len(t, lines, 1)
	assert.Equal(t, "Vase", lines[0].Name)

	assert.True(t, errors.Is(h.wishlist.Add(ctx, models.WishlistLine{}), apperrors.ErrInvalidInput))
}

func TestAddRemote(t *testing.T) {
	var body map[string]any
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})
	h.signIn(t, "42")

	require.NoError(t, h.wishlist.Add(context.Background(), models.WishlistLine{ProductID: "3"}))
	assert.Equal(t, []string{"POST /api/Wishlist/Add"}, h.seen())
	assert.Equal(t, map[string]any{"userId": float64(42), "productId": float64(3)}, body)

	raw, found, _ := h.mem.Get(context.Background(), storage.KeyWishlist)
	assert.False(t, found, "remote add must not write the local list: %s", raw)
}

func TestMoveToCart(t *testing.T) {
	h := newHarness(t, nil)
	h.seedLocal(t, `[{"id":5,"name":"Lamp","price":"12.25"}]`)
	ctx := context.Background()

	lines, err := h.wishlist.MoveToCart(ctx, "5")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, models.ID("5"), lines[0].ProductDetailID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "12.25", h.cart.Total(ctx).String())

	_, err = h.wishlist.MoveToCart(ctx, "5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDuplicateCartLine))
	assert.Equal(t, 1, h.cart.Count(ctx))

	_, err = h.wishlist.MoveToCart(ctx, "99")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestMoveToCartWhenVariantAlreadyInCart(t *testing.T) {
	h := newHarness(t, nil)
	h.seedLocal(t, `[{"id":5,"name":"Lamp","price":"12.25"}]`)
	ctx := context.Background()

	_, err := h.cart.Add(ctx, cart.ProductRef{ProductID: "5", Name: "Lamp"}, "50")
	require.NoError(t, err)

	_, err = h.wishlist.MoveToCart(ctx, "5")
	assert.True(t, errors.Is(err, apperrors.ErrDuplicateCartLine))
}
