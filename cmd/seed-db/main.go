// Command seed-db populates a database with a demo catalog: a restaurant
// owner, a couple of customers, and restaurants with their dishes. Running it
// twice is safe; existing rows are left untouched.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/feastline/feastline/internal/repository"
)

type accountJSON struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	DateOfBirth string `json:"date_of_birth"`
}

type dishJSON struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Size        string          `json:"size"`
}

type restaurantJSON struct {
	Name           string          `json:"name"`
	OwnerEmail     string          `json:"owner_email"`
	Email          string          `json:"email"`
	Description    string          `json:"description"`
	Address        string          `json:"address"`
	Phone          string          `json:"phone"`
	Rating         decimal.Decimal `json:"rating"`
	OffersPickup   bool            `json:"offers_pickup"`
	OffersDelivery bool            `json:"offers_delivery"`
	Dishes         []dishJSON      `json:"dishes"`
}

type catalogJSON struct {
	Owners      []accountJSON    `json:"owners"`
	Customers   []accountJSON    `json:"customers"`
	Restaurants []restaurantJSON `json:"restaurants"`
}

func main() {
	var (
		databaseURL string
		catalogFile string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&catalogFile, "catalog-file", "db/seed/catalog.json", "path to catalog JSON file")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, catalogFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, catalogFile string) error {
	slog.Info("reading catalog file", slog.String("path", catalogFile))

	data, err := os.ReadFile(catalogFile)
	if err != nil {
		return errors.Wrap(err, "read catalog file")
	}
	var catalog catalogJSON
	if err := json.Unmarshal(data, &catalog); err != nil {
		return errors.Wrap(err, "parse catalog JSON")
	}

	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Owners must exist before restaurants reference them; customers and the
	// restaurant tree are independent of each other.
	if err := seedOwners(ctx, pool, catalog.Owners); err != nil {
		return errors.Wrap(err, "seed owners")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return errors.Wrap(seedCustomers(gctx, pool, catalog.Customers), "seed customers")
	})
	g.Go(func() error {
		return errors.Wrap(seedRestaurants(gctx, pool, catalog.Restaurants), "seed restaurants")
	})
	return g.Wait()
}

func seedOwners(ctx context.Context, pool *pgxpool.Pool, owners []accountJSON) error {
	const insertOwner = `
		INSERT INTO restaurant_owners (first_name, last_name, email, password, phone, address, date_of_birth)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date)
		ON CONFLICT (email) DO NOTHING`

	for _, o := range owners {
		hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrap(err, "hash password")
		}
		if _, err := pool.Exec(ctx, insertOwner,
			o.FirstName, o.LastName, o.Email, string(hash), o.Phone, o.Address, o.DateOfBirth,
		); err != nil {
			return errors.Wrapf(err, "insert owner %q", o.Email)
		}
		slog.Info("seeded owner", slog.String("email", o.Email))
	}
	return nil
}

func seedCustomers(ctx context.Context, pool *pgxpool.Pool, customers []accountJSON) error {
	const insertCustomer = `
		INSERT INTO customers (first_name, last_name, email, password, phone, address, date_of_birth)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date)
		ON CONFLICT (email) DO NOTHING`

	for _, c := range customers {
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrap(err, "hash password")
		}
		if _, err := pool.Exec(ctx, insertCustomer,
			c.FirstName, c.LastName, c.Email, string(hash), c.Phone, c.Address, c.DateOfBirth,
		); err != nil {
			return errors.Wrapf(err, "insert customer %q", c.Email)
		}
		slog.Info("seeded customer", slog.String("email", c.Email))
	}
	return nil
}

func seedRestaurants(ctx context.Context, pool *pgxpool.Pool, restaurants []restaurantJSON) error {
	// Restaurants and dishes have no natural unique key, so idempotency is
	// by name lookup rather than ON CONFLICT.
	const insertRestaurant = `
		INSERT INTO restaurants (owner_id, name, email, description, address, phone, rating, offers_pickup, offers_delivery)
		SELECT o.id, $2, $3, $4, $5, $6, $7, $8, $9
		FROM restaurant_owners o
		WHERE o.email = $1
		  AND NOT EXISTS (SELECT 1 FROM restaurants r WHERE r.name = $2)`

	const selectRestaurantID = `SELECT id FROM restaurants WHERE name = $1`

	const insertDish = `
		INSERT INTO dishes (restaurant_id, name, description, price, size)
		SELECT $1, $2, $3, $4, $5
		WHERE NOT EXISTS (
			SELECT 1 FROM dishes d WHERE d.restaurant_id = $1 AND d.name = $2 AND d.size = $5
		)`

	for _, r := range restaurants {
		if _, err := pool.Exec(ctx, insertRestaurant,
			r.OwnerEmail, r.Name, r.Email, r.Description, r.Address, r.Phone,
			r.Rating, r.OffersPickup, r.OffersDelivery,
		); err != nil {
			return errors.Wrapf(err, "insert restaurant %q", r.Name)
		}

		var restaurantID int64
		if err := pool.QueryRow(ctx, selectRestaurantID, r.Name).Scan(&restaurantID); err != nil {
			return errors.Wrapf(err, "look up restaurant %q", r.Name)
		}

		for _, d := range r.Dishes {
			size := d.Size
			if size == "" {
				size = "regular"
			}
			if _, err := pool.Exec(ctx, insertDish,
				restaurantID, d.Name, d.Description, d.Price, size,
			); err != nil {
				return errors.Wrapf(err, "insert dish %q", d.Name)
			}
		}
		slog.Info("seeded restaurant",
			slog.String("name", r.Name),
			slog.Int("dishes", len(r.Dishes)),
		)
	}
	return nil
}
