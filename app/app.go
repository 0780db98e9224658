// Package app builds the single application state the local host owns and
// the router that exposes it.
package app

import (
	"net/http"
	"time"

	"github.com/a7med3yad/Cartify-Frontend/auth"
	"github.com/a7med3yad/Cartify-Frontend/cart"
	"github.com/a7med3yad/Cartify-Frontend/clients"
	"github.com/a7med3yad/Cartify-Frontend/controllers"
	"github.com/a7med3yad/Cartify-Frontend/logger"
	"github.com/a7med3yad/Cartify-Frontend/middleware"
	"github.com/a7med3yad/Cartify-Frontend/preferences"
	"github.com/a7med3yad/Cartify-Frontend/routes"
	"github.com/a7med3yad/Cartify-Frontend/services"
	"github.com/a7med3yad/Cartify-Frontend/storage"
	"github.com/a7med3yad/Cartify-Frontend/wishlist"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Options struct {
	BaseURL    string
	LoginURL   string
	HTTPClient *http.Client
	Store      storage.Store
	Logger     *zap.Logger
	// Navigator defaults to a HeaderNavigator.
	Navigator clients.Navigator
	// Wishlist overrides the remote wishlist paths.
	Wishlist wishlist.Endpoints
}

// State is everything one browser profile's storefront holds.
type State struct {
	Tokens      *auth.TokenStore
	Gateway     *clients.GatewayClient
	Cart        *cart.CartStore
	Wishlist    *wishlist.WishlistStore
	Preferences *preferences.Preferences
	Account     *services.AccountService
	Catalog     *services.CatalogService
	Orders      *services.OrderService
	Merchant    *services.MerchantService

	log *zap.Logger
}

func New(opts Options) *State {
	log := logger.OrNop(opts.Logger)
	nav := opts.Navigator
	if nav == nil {
		nav = middleware.HeaderNavigator{Log: log}
	}

	tokens := auth.NewTokenStore(opts.Store, log.Named("auth"))
	gateway := clients.NewGatewayClient(opts.BaseURL, clients.GatewayOptions{
		HTTPClient: opts.HTTPClient,
		Tokens:     tokens,
		Navigator:  nav,
		LoginURL:   opts.LoginURL,
		Logger:     log.Named("gateway"),
	})
	cartStore := cart.NewCartStore(opts.Store, log.Named("cart"))
	prefs := preferences.New(opts.Store, log.Named("preferences"))

	return &State{
		Tokens:  tokens,
		Gateway: gateway,
		Cart:    cartStore,
		Wishlist: wishlist.NewWishlistStore(wishlist.Options{
			Gateway:   gateway,
			Sessions:  tokens,
			Store:     opts.Store,
			Cart:      cartStore,
			Endpoints: opts.Wishlist,
			Logger:    log.Named("wishlist"),
		}),
		Preferences: prefs,
		Account:     services.NewAccountService(gateway, tokens, log.Named("account")),
		Catalog:     services.NewCatalogService(gateway),
		Orders:      services.NewOrderService(gateway, tokens, cartStore, prefs, log.Named("orders")),
		Merchant:    services.NewMerchantService(gateway, prefs),
		log:         log,
	}
}

type RouterOptions struct {
	AllowedOrigins []string
	// RateLimit is requests per second per client; zero disables limiting.
	RateLimit rate.Limit
	Burst     int
}

// Router builds the gin engine. The returned limiter, if any, must be
// closed on shutdown.
func (s *State) Router(opts RouterOptions) (*gin.Engine, *middleware.RateLimiter) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Navigation())
	r.Use(middleware.RequestLogger(s.log.Named("http")))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(opts.AllowedOrigins))

	var limiter *middleware.RateLimiter
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = middleware.NewRateLimiter(opts.RateLimit, burst, 5*time.Minute)
		r.Use(limiter.Middleware())
	}

	routes.RegisterRoutes(r, routes.Handlers{
		Session:     controllers.NewSessionController(s.Account),
		Cart:        controllers.NewCartController(s.Cart, s.Orders),
		Wishlist:    controllers.NewWishlistController(s.Wishlist),
		Preferences: controllers.NewPreferencesController(s.Preferences),
		Catalog:     controllers.NewCatalogController(s.Catalog),
		Orders:      controllers.NewOrderController(s.Orders),
		Merchant:    controllers.NewMerchantController(s.Merchant),
	}, middleware.RequireRole(s.Tokens, services.RoleMerchant))

	return r, limiter
}
