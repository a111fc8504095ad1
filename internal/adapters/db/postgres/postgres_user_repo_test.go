package postgres

import (
	"context"
	"testing"

	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/auth/model"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// каждое соединение к :memory: видит свою базу
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestPostgresUserRepo_CreateAndGet(t *testing.T) {
	repo := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()
	user := model.User{Email: "test@example.com", Username: "user", PasswordHash: "h"}

	id, err := repo.CreateUser(ctx, user)
	if err != nil || id == 0 {
		t.Fatalf("create %v id=%d", err, id)
	}
	got, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil || got.ID != id {
		t.Fatalf("get by email %v", err)
	}
	got2, err := repo.GetUserByID(ctx, id)
	if err != nil || got2.Email != user.Email || got2.PasswordHash != "h" {
		t.Fatalf("get by id %v", err)
	}
	exists, err := repo.ExistsByEmail(ctx, user.Email)
	if err != nil || !exists {
		t.Fatalf("exists %v %v", exists, err)
	}
	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("ping %v", err)
	}
}

func TestPostgresUserRepo_DuplicateEmail(t *testing.T) {
	repo := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()
	user := model.User{Email: "dup@example.com", Username: "user", PasswordHash: "h"}

	if _, err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("first create %v", err)
	}
	if _, err := repo.CreateUser(ctx, user); !errors.IsAlreadyExists(err) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestPostgresUserRepo_NotFound(t *testing.T) {
	repo := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()

	if _, err := repo.GetUserByID(ctx, 23); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.GetUserByEmail(ctx, "bad@email.com"); !errors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	exists, err := repo.ExistsByEmail(ctx, "bad@email.com")
	if err != nil || exists {
		t.Fatalf("exists %v %v", exists, err)
	}
}

func TestIsUniqueViolation_PgError(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("23505 must be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("23503 is a foreign key violation")
	}
}
