package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"hanbloom_back_end/internal/config"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// --- Clients globaux ---
var (
	DB      *sql.DB
	Redis   *redis.Client
	MinIO   *minio.Client
	Elastic *elasticsearch.Client
)

// ConnectDatabases initialise Postgres, Redis, MinIO et Elasticsearch.
// Postgres et Redis sont obligatoires ; MinIO et Elastic sont optionnels
// (les endpoints concernés se dégradent proprement s'ils manquent).
func ConnectDatabases(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := connectPostgres(cfg); err != nil {
		log.Fatalf("❌ Échec initialisation Postgres: %v", err)
	}

	if err := connectRedis(ctx, cfg); err != nil {
		log.Fatalf("❌ Échec initialisation Redis: %v", err)
	}

	connectMinIO(cfg)
	connectElastic(cfg)

	log.Println("✅ Toutes les bases de données sont connectées")
}

func connectPostgres(cfg *config.Config) error {
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return fmt.Errorf("ouverture Postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping Postgres: %w", err)
	}

	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	DB = db
	log.Println("✅ Postgres connecté")
	return nil
}

// RunMigrations applique les migrations SQL (no-op si déjà à jour)
func RunMigrations(cfg *config.Config) error {
	driver, err := postgres.WithInstance(DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("driver migration: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cfg.MigrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("instance migrate: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("exécution migrations: %w", err)
	}

	log.Println("✅ Migrations Postgres appliquées")
	return nil
}

func connectRedis(ctx context.Context, cfg *config.Config) error {
	Redis = redis.NewClient(&redis.Options{
		Addr:         cfg.RedisHost,
		Password:     cfg.RedisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if _, err := Redis.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("impossible de se connecter à Redis: %w", err)
	}

	log.Println("✅ Redis connecté")
	return nil
}

func connectMinIO(cfg *config.Config) {
	if cfg.MinioEndpoint == "" {
		log.Println("⚠️ MinIO non configuré — médias marketing désactivés")
		return
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		log.Println("⚠️ MinIO non configuré :", err)
		return
	}

	MinIO = client
	log.Println("✅ Connecté à MinIO :", cfg.MinioEndpoint)
}

func connectElastic(cfg *config.Config) {
	if cfg.ElasticURL == "" {
		log.Println("⚠️ Elasticsearch non configuré — recherche produits désactivée")
		return
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticURL},
	})
	if err != nil {
		log.Println("⚠️ Elasticsearch non configuré :", err)
		return
	}

	Elastic = client
	log.Println("✅ Elasticsearch connecté :", cfg.ElasticURL)
}

// Close ferme proprement les connexions (tests et arrêt serveur)
func Close() {
	if DB != nil {
		_ = DB.Close()
	}
	if Redis != nil {
		_ = Redis.Close()
	}
}
