package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/supermartlabs/supermart-backend/internal/database"
	"github.com/supermartlabs/supermart-backend/internal/modules/auth"
	"github.com/supermartlabs/supermart-backend/internal/modules/cart"
	"github.com/supermartlabs/supermart-backend/internal/modules/catalog"
	"github.com/supermartlabs/supermart-backend/internal/modules/inventory"
	"github.com/supermartlabs/supermart-backend/internal/modules/order"
	"github.com/supermartlabs/supermart-backend/internal/modules/payment"
	"github.com/supermartlabs/supermart-backend/internal/modules/supplier"
	"github.com/supermartlabs/supermart-backend/internal/modules/user"
	"github.com/supermartlabs/supermart-backend/internal/notify"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	db, err := database.Open(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := openRedis()
	notifier := buildNotifier()

	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		log.Fatal("JWT_SECRET is required")
	}
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@supermart.com"
	}

	authWrap := auth.RequireAuth(secret)
	staffWrap := func(next http.Handler) http.Handler {
		return authWrap(auth.RequireRole(
			user.RoleAdmin, user.RoleCashier, user.RoleStorekeeper)(next))
	}
	backOfficeWrap := func(next http.Handler) http.Handler {
		return authWrap(auth.RequireRole(user.RoleAdmin, user.RoleStorekeeper)(next))
	}
	cashierWrap := auth.RequireRole(user.RoleAdmin, user.RoleCashier)

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	authService := auth.NewService(userRepo, secret)

	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo, rdb)

	inventoryRepo := inventory.NewPostgresRepository(db)
	inventoryService := inventory.NewService(db, inventoryRepo, catalogService)

	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo, catalogRepo)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, orderRepo, notifier, adminEmail, catalogService)

	paymentRepo := payment.NewPostgresRepository(db)
	paymentService := payment.NewService(paymentRepo, paymentRepo, notifier, adminEmail)

	supplierRepo := supplier.NewPostgresRepository(db)
	supplierService := supplier.NewService(supplierRepo, catalogRepo, notifier)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	user.NewHandler(userService).RegisterRoutes(r)
	auth.NewHandler(authService).RegisterRoutes(r)
	catalog.NewHandler(catalogService, staffWrap).RegisterRoutes(r)
	inventory.NewHandler(inventoryService, staffWrap).RegisterRoutes(r)
	cart.NewHandler(cartService, authWrap).RegisterRoutes(r)
	order.NewHandler(orderService, authWrap, cashierWrap).RegisterRoutes(r)
	payment.NewHandler(paymentService, authWrap, cashierWrap).RegisterRoutes(r)
	supplier.NewHandler(supplierService, backOfficeWrap).RegisterRoutes(r)

	watchCtx, stopWatcher := context.WithCancel(context.Background())
	defer stopWatcher()
	go supplier.RestockWatcher(watchCtx, supplierService, time.Hour)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// openRedis returns nil when REDIS_URL is unset; the catalog cache then
// degrades to direct reads.
func openRedis() *redis.Client {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("redis: bad REDIS_URL, caching disabled: %v", err)
		return nil
	}
	return redis.NewClient(opts)
}

// buildNotifier prefers the AMQP mail queue, falls back to direct SMTP, and
// finally to a logging no-op so the app always starts.
func buildNotifier() notify.Notifier {
	if url := os.Getenv("AMQP_URL"); url != "" {
		pub, err := notify.NewQueuePublisher(url, "notify.exchange")
		if err != nil {
			log.Fatalf("amqp: %v", err)
		}
		return pub
	}
	if host := os.Getenv("MAIL_HOST"); host != "" {
		return notify.NewSMTPMailer(host, os.Getenv("MAIL_PORT"),
			os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"))
	}
	log.Println("mail: no AMQP_URL or MAIL_HOST configured, notifications are logged only")
	return notify.LogNotifier{}
}
