package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/QuliyevMSH/gubre-evi-main/internal/admin"
	"github.com/QuliyevMSH/gubre-evi-main/internal/auth"
	"github.com/QuliyevMSH/gubre-evi-main/internal/cart"
	"github.com/QuliyevMSH/gubre-evi-main/internal/catalog"
	"github.com/QuliyevMSH/gubre-evi-main/internal/notify"
	"github.com/QuliyevMSH/gubre-evi-main/internal/profile"
	"github.com/QuliyevMSH/gubre-evi-main/internal/store"
)

type Server struct {
	log     *logrus.Logger
	auth    *auth.Service
	catalog *catalog.Service
	profile *profile.Service
	admin   *admin.Service
	facade  *cart.Facade
	basket  store.BasketStore
	feed    notify.Subscriber
	timeout time.Duration
}

func New(
	log *logrus.Logger,
	authSvc *auth.Service,
	catalogSvc *catalog.Service,
	profileSvc *profile.Service,
	adminSvc *admin.Service,
	facade *cart.Facade,
	basket store.BasketStore,
	feed notify.Subscriber,
	timeout time.Duration,
) *Server {
	return &Server{
		log:     log,
		auth:    authSvc,
		catalog: catalogSvc,
		profile: profileSvc,
		admin:   adminSvc,
		facade:  facade,
		basket:  basket,
		feed:    feed,
		timeout: timeout,
	}
}

// Handler builds the full HTTP surface, traced end to end.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router(), "storefront")
}

func (s *Server) router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(s.log, w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.timeout))

		r.Route("/api/v1", func(r chi.Router) {
			r.Post("/auth/signup", s.signUp)
			r.Post("/auth/signin", s.signIn)

			r.Get("/products", s.listProducts)
			r.Get("/products/{id}", s.getProduct)

			r.Group(func(r chi.Router) {
				r.Use(s.withAuth)

				r.Route("/cart", func(r chi.Router) {
					r.Get("/", s.getCart)
					r.Post("/items", s.addCartItem)
					r.Put("/items/{entry_id}", s.updateCartItem)
					r.Delete("/items/{entry_id}", s.removeCartItem)
				})

				r.Get("/profile", s.getProfile)
				r.Put("/profile", s.updateProfile)
				r.Post("/profile/avatar", s.uploadAvatar)
			})

			r.Group(func(r chi.Router) {
				r.Use(s.withAuth, s.requireAdmin)

				r.Route("/admin", func(r chi.Router) {
					r.Post("/products", s.adminAddProduct)
					r.Put("/products/{id}", s.adminUpdateProduct)
					r.Delete("/products/{id}", s.adminDeleteProduct)
					r.Get("/users", s.adminListUsers)
					r.Delete("/users/{id}", s.adminDeleteUser)
				})
			})
		})
	})

	// The watch stream stays open across changes, so it lives outside
	// the timeout group.
	r.Group(func(r chi.Router) {
		r.Use(s.withAuth)
		r.Get("/api/v1/cart/watch", s.watchCart)
	})

	return r
}
