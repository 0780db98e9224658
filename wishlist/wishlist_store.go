package wishlist

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/auth"
	"github.com/a7med3yad/Cartify-Frontend/cart"
	"github.com/a7med3yad/Cartify-Frontend/clients"
	"github.com/a7med3yad/Cartify-Frontend/logger"
	"github.com/a7med3yad/Cartify-Frontend/models"
	"github.com/a7med3yad/Cartify-Frontend/storage"
	"go.uber.org/zap"
)

// Endpoints are the remote wishlist paths. {userId} and {productId} are
// replaced with the path-escaped values.
type Endpoints struct {
	List   string
	Add    string
	Remove string
}

// DefaultEndpoints match the API's Wishlist controller.
var DefaultEndpoints = Endpoints{
	List:   "/api/Wishlist/GetWishlist/{userId}",
	Add:    "/api/Wishlist/Add",
	Remove: "/api/Wishlist/Remove/{productId}",
}

// Requester is the gateway call the wishlist makes.
type Requester interface {
	Do(ctx context.Context, path string, opts clients.RequestOptions) (*clients.Response, error)
}

// SessionSource yields the current session or nil.
type SessionSource interface {
	Session(ctx context.Context) *auth.Session
}

// Cart is the part of the cart a wishlist move touches.
type Cart interface {
	Contains(ctx context.Context, productID, detailID models.ID) bool
	Add(ctx context.Context, product cart.ProductRef, detailID models.ID) ([]models.CartLine, error)
}

// WishlistStore reads the remote wishlist for signed-in users and a locally
// persisted list for everyone else.
type WishlistStore struct {
	gateway   Requester
	sessions  SessionSource
	store     storage.Store
	cart      Cart
	endpoints Endpoints
	log       *zap.Logger
	mu        sync.Mutex
}

type Options struct {
	Gateway   Requester
	Sessions  SessionSource
	Store     storage.Store
	Cart      Cart
	Endpoints Endpoints
	Logger    *zap.Logger
}

func NewWishlistStore(opts Options) *WishlistStore {
	ep := opts.Endpoints
	if ep.List == "" {
		ep.List = DefaultEndpoints.List
	}
	if ep.Add == "" {
		ep.Add = DefaultEndpoints.Add
	}
	if ep.Remove == "" {
		ep.Remove = DefaultEndpoints.Remove
	}
	return &WishlistStore{
		gateway:   opts.Gateway,
		sessions:  opts.Sessions,
		store:     opts.Store,
		cart:      opts.Cart,
		endpoints: ep,
		log:       logger.OrNop(opts.Logger),
	}
}

// userID returns the signed-in user's id, or "" when the remote wishlist is
// not reachable for this session.
func (w *WishlistStore) userID(ctx context.Context) string {
	if w.sessions == nil || w.gateway == nil {
		return ""
	}
	if s := w.sessions.Session(ctx); s != nil {
		return s.UserID
	}
	return ""
}

// Load returns the wishlist. With a session it asks the API first and falls
// back to the local list on any failure; the fallback is logged, not
// returned. Without a session only the local list is read.
func (w *WishlistStore) Load(ctx context.Context) []models.WishlistLine {
	log := logger.FromContext(ctx, w.log)
	if userID := w.userID(ctx); userID != "" {
		lines, err := w.loadRemote(ctx, userID)
		if err == nil {
			return lines
		}
		log.Warn("failed to fetch wishlist from API, using local list", zap.String("user_id", userID), zap.Error(err))
	}
	return w.local(ctx)
}

func (w *WishlistStore) loadRemote(ctx context.Context, userID string) ([]models.WishlistLine, error) {
	resp, err := w.gateway.Do(ctx, expand(w.endpoints.List, userID, ""), clients.RequestOptions{NoRedirect: true})
	if err != nil {
		return nil, err
	}
	if len(resp.Raw) == 0 {
		return []models.WishlistLine{}, nil
	}
	lines, err := models.List[models.WishlistLine](resp.Raw)
	if err != nil {
		return nil, apperrors.DecodeFailure("wishlist", err)
	}
	return lines, nil
}

func (w *WishlistStore) local(ctx context.Context) []models.WishlistLine {
	var lines []models.WishlistLine
	if _, err := storage.GetJSON(ctx, w.store, storage.KeyWishlist, &lines); err != nil {
		logger.FromContext(ctx, w.log).Warn("unable to read wishlist", zap.Error(err))
		return []models.WishlistLine{}
	}
	if lines == nil {
		return []models.WishlistLine{}
	}
	return lines
}

// Add saves a product. Signed-in users add remotely and see the API's error
// on failure; otherwise the line is added to the local list unless a line
// with the same product id is already there.
func (w *WishlistStore) Add(ctx context.Context, line models.WishlistLine) error {
	if line.ProductID == "" {
		return apperrors.InvalidInput("product id is required")
	}
	if userID := w.userID(ctx); userID != "" {
		_, err := w.gateway.Do(ctx, expand(w.endpoints.Add, userID, string(line.ProductID)), clients.RequestOptions{
			Method: http.MethodPost,
			Body: map[string]any{
				"userId":    models.WireID(userID),
				"productId": models.WireID(line.ProductID),
			},
		})
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	lines := w.local(ctx)
	for _, l := range lines {
		if l.ProductID == line.ProductID {
			return nil
		}
	}
	return storage.SetJSON(ctx, w.store, storage.KeyWishlist, append(lines, line))
}

// Remove deletes a product. Signed-in users delete remotely; a failed
// delete is returned and nothing local changes. Without a session the line
// is dropped from the local list, and dropping an absent line is a no-op.
func (w *WishlistStore) Remove(ctx context.Context, productID models.ID) error {
	if userID := w.userID(ctx); userID != "" {
		_, err := w.gateway.Do(ctx, expand(w.endpoints.Remove, userID, string(productID)), clients.RequestOptions{
			Method: http.MethodDelete,
		})
		if err != nil {
			logger.FromContext(ctx, w.log).Warn("failed to remove from wishlist",
				zap.String("product_id", productID.String()), zap.Error(err))
		}
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	lines := w.local(ctx)
	kept := make([]models.WishlistLine, 0, len(lines))
	for _, l := range lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(lines) {
		return nil
	}
	return storage.SetJSON(ctx, w.store, storage.KeyWishlist, kept)
}

// MoveToCart copies a wishlist line into the cart with quantity 1. The
// wishlist carries no variant, so the product id doubles as the detail id.
// A product already in the cart yields DuplicateCartLine.
func (w *WishlistStore) MoveToCart(ctx context.Context, productID models.ID) ([]models.CartLine, error) {
	if w.cart == nil {
		return nil, apperrors.InvalidInput("no cart configured")
	}

	var line *models.WishlistLine
	for _, l := range w.Load(ctx) {
		if l.ProductID == productID {
			l := l
			line = &l
			break
		}
	}
	if line == nil {
		return nil, apperrors.NotFound("item not found")
	}

	if w.cart.Contains(ctx, line.ProductID, "") {
		return nil, apperrors.DuplicateCartLine(line.ProductID.String())
	}
	return w.cart.Add(ctx, cart.ProductRef{
		ProductID: line.ProductID,
		Name:      line.Name,
		UnitPrice: line.Price,
	}, line.ProductID)
}

func expand(pattern, userID, productID string) string {
	return strings.NewReplacer(
		"{userId}", url.PathEscape(userID),
		"{productId}", url.PathEscape(productID),
	).Replace(pattern)
}
