package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/uyrtegeygr-a11y/Lojanew/internal/cart"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/catalog"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/checkout"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/customer"
	h "github.com/uyrtegeygr-a11y/Lojanew/internal/http"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/kv"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/relay"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/session"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// memory, redis, postgres or mongo
	KVBackend string
	// memory or sqlite
	CatalogBackend string

	RedisAddr     string
	RedisPassword string

	MongoURI string
	MongoDB  string

	DBHost               string
	DBPort               int
	DBUser               string
	DBPassword           string
	DBName               string
	KVMigrationsPath     string
	SQLitePath           string
	SQLiteMigrationsPath string

	RelayEndpoint string
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,

		KVBackend:      getEnv("KV_BACKEND", "memory"),
		CatalogBackend: getEnv("CATALOG_BACKEND", "memory"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "loja"),

		DBHost:               getEnv("DB_HOST", "localhost"),
		DBPort:               getEnvInt("DB_PORT", 5432),
		DBUser:               getEnv("DB_USER", "postgres"),
		DBPassword:           getEnv("DB_PASSWORD", "postgres"),
		DBName:               getEnv("DB_NAME", "loja"),
		KVMigrationsPath:     getEnv("KV_MIGRATIONS_PATH", "internal/kv/migrations"),
		SQLitePath:           getEnv("SQLITE_PATH", "loja.db"),
		SQLiteMigrationsPath: getEnv("SQLITE_MIGRATIONS_PATH", "internal/catalog/migrations"),

		RelayEndpoint: getEnv("RELAY_ENDPOINT", "https://api.sheetmonkey.io/form/ppCoQcSiZ6T1YwFSfWFsJs"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func newKVStore(cfg *Config) (kv.Store, func(), error) {
	switch cfg.KVBackend {
	case "memory":
		return kv.NewMemoryStore(), func() {}, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, nil, err
		}
		return kv.NewRedisStore(client), func() { client.Close() }, nil

	case "postgres":
		creds := &kv.Credentials{
			Host:              cfg.DBHost,
			Port:              cfg.DBPort,
			User:              cfg.DBUser,
			Password:          cfg.DBPassword,
			DBName:            cfg.DBName,
			MigrationsDirPath: cfg.KVMigrationsPath,
		}
		store, err := kv.NewPostgresStore(creds)
		if err != nil {
			return nil, nil, err
		}
		if err := store.RunMigrations(creds); err != nil {
			store.Close()
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil

	case "mongo":
		db, err := kv.ConnectMongoDB(context.Background(), cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewMongoStore(db), func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			db.Client().Disconnect(ctx)
		}, nil

	default:
		return nil, nil, errors.New("unknown KV_BACKEND: " + cfg.KVBackend)
	}
}

func newCatalog(cfg *Config) (catalog.Repository, func(), error) {
	switch cfg.CatalogBackend {
	case "memory":
		return catalog.NewMemoryRepository(catalog.DefaultProducts()), func() {}, nil

	case "sqlite":
		repo, err := catalog.NewSQLiteRepository(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := repo.RunMigrations(cfg.SQLiteMigrationsPath); err != nil {
			repo.Close()
			return nil, nil, err
		}
		return repo, func() { repo.Close() }, nil

	default:
		return nil, nil, errors.New("unknown CATALOG_BACKEND: " + cfg.CatalogBackend)
	}
}

func main() {
	cfg := loadConfig()

	kvStore, closeKV, err := newKVStore(cfg)
	if err != nil {
		log.Fatalf("failed to set up kv store (%s): %v", cfg.KVBackend, err)
	}
	defer closeKV()

	catalogRepo, closeCatalog, err := newCatalog(cfg)
	if err != nil {
		log.Fatalf("failed to set up catalog (%s): %v", cfg.CatalogBackend, err)
	}
	defer closeCatalog()

	sessions := session.NewStore(kvStore)
	outbox := relay.NewOutbox()

	cartService := cart.NewService(catalogRepo, sessions)
	customerService := customer.NewService(sessions, outbox)
	checkoutService := checkout.NewService(sessions, outbox)

	productHandler := h.NewProductHandler(catalogRepo)
	cartHandler := h.NewCartHandler(cartService)
	customerHandler := h.NewCustomerHandler(customerService)
	checkoutHandler := h.NewCheckoutHandler(checkoutService)
	ordersHandler := h.NewOrdersHandler(checkoutService)

	// Relay dispatcher runs until shutdown, flushing pending deliveries.
	dispatcher := relay.NewDispatcher(outbox, relay.NewClient(cfg.RelayEndpoint))
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		dispatcher.Run(dispatcherCtx)
	}()

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{product_id}", productHandler.GetProduct)
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", customerHandler.Register)
			r.Post("/login", customerHandler.Login)
			r.Post("/logout", customerHandler.Logout)
			r.Get("/me", customerHandler.Me)
		})
		r.Post("/checkout", checkoutHandler.Checkout)
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.ListOrders)
			r.Get("/{order_id}", ordersHandler.GetOrder)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server starting on :%s (kv=%s, catalog=%s)", cfg.HTTPPort, cfg.KVBackend, cfg.CatalogBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	stopDispatcher()
	<-dispatcherDone

	log.Println("server exited")
}
