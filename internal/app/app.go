package app

import (
	"gamehub-backend/internal/auth"
	"gamehub-backend/internal/authorlistings"
	"gamehub-backend/internal/cart"
	"gamehub-backend/internal/catalog"
	"gamehub-backend/internal/chat"
	"gamehub-backend/internal/config"
	"gamehub-backend/internal/favorites"
	"gamehub-backend/internal/health"
	"gamehub-backend/internal/listings"
	"gamehub-backend/internal/middleware"
	"gamehub-backend/internal/orders"
	"gamehub-backend/internal/pkg/response"
	"gamehub-backend/internal/reviews"
	"gamehub-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options carries the app's external dependencies. Redis may be nil in tests
// that do not exercise sessions or health counters.
type Options struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Config *config.Config
}

// New assembles the Fiber app: middleware chain, then all route groups under
// /api/v1. Admin-only routes check the configured role name.
func New(opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "gamehub-backend",
		ErrorHandler: middleware.ErrorHandler,
	})

	sessionCfg := middleware.SessionConfig{
		Secret:       opts.Config.SessionSecret,
		RedisURL:     opts.Config.RedisURL,
		IsProduction: opts.Config.Env == "production",
	}

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.CartSession())
	if opts.Redis != nil {
		app.Use(middleware.SessionWithClient(opts.Redis))
		app.Use(middleware.HealthMarker(opts.Redis))
	}

	adminRole := opts.Config.AdminRoleName
	requireAdmin := middleware.RequireRole(adminRole)

	usersSvc := users.NewService(opts.DB)

	catalogH := &catalog.Handlers{Service: catalog.NewService(opts.DB)}
	listingsH := &listings.Handlers{Service: listings.NewService(opts.DB)}
	authorH := &authorlistings.Handlers{Service: authorlistings.NewService(opts.DB)}
	cartH := &cart.Handlers{Service: cart.NewService(opts.DB)}
	ordersH := &orders.Handlers{Service: orders.NewService(opts.DB)}
	reviewsH := &reviews.Handlers{Service: reviews.NewService(opts.DB)}
	favoritesH := &favorites.Handlers{Service: favorites.NewService(opts.DB)}
	chatH := &chat.Handlers{Service: chat.NewService(opts.DB)}
	usersH := &users.Handlers{Service: usersSvc}
	authH := &auth.Handlers{Users: usersSvc, Redis: opts.Redis, SessionCfg: sessionCfg}
	healthH := &health.Handlers{Service: health.NewService(opts.DB, opts.Redis)}

	v1 := app.Group("/api/v1")

	hlt := v1.Group("/health")
	hlt.Get("/", healthH.Check)
	hlt.Get("/live", healthH.Live)

	au := v1.Group("/auth")
	au.Post("/login", authH.Login)
	au.Get("/me", authH.Me)
	au.Post("/logout", authH.Logout)

	products := v1.Group("/products")
	products.Get("/health", catalogH.Health)
	products.Get("/", catalogH.ListProducts)
	products.Get("/category/:category_name", catalogH.GetByCategory)
	products.Get("/:product_id", catalogH.GetProduct)
	products.Post("/", requireAdmin, catalogH.CreateProduct)
	products.Put("/:product_id", requireAdmin, catalogH.UpdateProduct)
	products.Delete("/:product_id", requireAdmin, catalogH.DeleteProduct)
	products.Post("/:product_id/increment-popularity", catalogH.IncrementPopularity)

	lst := v1.Group("/listings")
	lst.Get("/health", listingsH.Health)
	lst.Get("/featured", listingsH.GetFeatured)
	lst.Get("/recent", listingsH.GetRecent)
	lst.Get("/topics", listingsH.GetTopics)
	lst.Get("/statistics", listingsH.GetStatistics)
	lst.Get("/user/:user_id", listingsH.GetUserListings)
	lst.Get("/", listingsH.ListListings)
	lst.Get("/:listing_id", listingsH.GetListing)
	lst.Post("/", middleware.RequireAuth(), listingsH.CreateListing)
	lst.Put("/:listing_id", middleware.RequireAuth(), listingsH.UpdateListing)
	lst.Delete("/:listing_id", middleware.RequireAuth(), listingsH.DeleteListing)
	lst.Post("/:listing_id/like", listingsH.LikeListing)
	lst.Post("/:listing_id/feature", requireAdmin, listingsH.ToggleFeatured)

	al := v1.Group("/author-listings")
	al.Get("/health", authorH.Health)
	al.Get("/user/:user_id", authorH.GetUserAuthorListings)
	al.Get("/", authorH.ListAuthorListings)
	al.Get("/:listing_id", authorH.GetAuthorListing)
	al.Post("/", middleware.RequireAuth(), authorH.CreateAuthorListing)
	al.Put("/:listing_id", middleware.RequireAuth(), authorH.UpdateAuthorListing)
	al.Delete("/:listing_id", middleware.RequireAuth(), authorH.DeleteAuthorListing)
	al.Post("/:listing_id/like", authorH.LikeAuthorListing)

	crt := v1.Group("/cart")
	crt.Get("/health", cartH.Health)
	crt.Get("/items", cartH.GetGuestItems)
	crt.Post("/items", cartH.AddGuestItem)
	crt.Put("/items/:item_id", cartH.UpdateItemQuantity)
	crt.Delete("/items/:item_id", cartH.RemoveItem)
	crt.Get("/user/:user_id", cartH.GetUserCart)
	crt.Post("/user/:user_id/merge", cartH.MergeGuestCart)
	crt.Post("/:cart_id/items", cartH.AddItem)
	crt.Delete("/:cart_id/clear", cartH.ClearCart)

	ord := v1.Group("/orders")
	ord.Get("/health", ordersH.Health)
	ord.Get("/statistics", requireAdmin, ordersH.GetStatistics)
	ord.Get("/user/:user_id", ordersH.GetUserOrders)
	ord.Get("/", requireAdmin, ordersH.ListOrders)
	ord.Post("/", ordersH.CreateOrder)
	ord.Get("/:order_id", ordersH.GetOrder)
	ord.Get("/:order_id/items", ordersH.GetOrderItems)
	ord.Put("/:order_id/status", requireAdmin, ordersH.UpdateStatus)
	ord.Delete("/:order_id", ordersH.CancelOrder)

	rev := v1.Group("/reviews")
	rev.Get("/health", reviewsH.Health)
	rev.Get("/product/:product_id/statistics", reviewsH.GetProductStatistics)
	rev.Get("/", reviewsH.ListReviews)
	rev.Post("/", reviewsH.CreateReview)
	rev.Get("/:review_id", reviewsH.GetReview)
	rev.Put("/:review_id", reviewsH.UpdateReview)
	rev.Delete("/:review_id", reviewsH.DeleteReview)
	rev.Post("/:review_id/helpful", reviewsH.MarkHelpful)

	fav := v1.Group("/favorites")
	fav.Get("/health", favoritesH.Health)
	fav.Get("/user/:user_id", favoritesH.GetUserFavorites)
	fav.Get("/check/:user_id", favoritesH.CheckFavorited)
	fav.Post("/", favoritesH.AddFavorite)
	fav.Delete("/:favorite_id", favoritesH.RemoveFavorite)

	ch := v1.Group("/chat")
	ch.Get("/health", chatH.Health)
	ch.Get("/statistics", requireAdmin, chatH.GetStatistics)
	ch.Get("/user/:user_id", chatH.GetUserMessages)
	ch.Post("/messages/batch", chatH.CreateBatch)
	ch.Post("/messages", chatH.CreateMessage)
	ch.Get("/messages/:message_id", chatH.GetMessage)
	ch.Put("/messages/:message_id", chatH.UpdateMessage)
	ch.Delete("/messages/:message_id", chatH.DeleteMessage)

	usr := v1.Group("/users")
	usr.Get("/health", usersH.Health)
	usr.Get("/", requireAdmin, usersH.ListUsers)
	usr.Post("/", usersH.CreateUser)
	usr.Get("/:user_id", middleware.RequireAuth(), usersH.GetUser)
	usr.Put("/:user_id", middleware.RequireAuth(), usersH.UpdateUser)
	usr.Delete("/:user_id", requireAdmin, usersH.DeleteUser)

	app.Get("/", func(c *fiber.Ctx) error {
		return response.OK(c, fiber.Map{"name": "gamehub-backend", "status": "ok"})
	})

	return app
}
