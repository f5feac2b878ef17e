package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/db"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory SQLite database with foreign keys on
// and the full schema migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:testdb_" + uuid.New().String() + "?mode=memory&cache=shared&_foreign_keys=on"

	database, err := db.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return database
}

// NewEmptyDB is a database without any tables, for forcing store errors.
func NewEmptyDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:errdb_" + uuid.New().String() + "?mode=memory&cache=shared"

	database, err := db.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("failed to connect to error test database: %v", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return database
}

func create[T any](t *testing.T, database *gorm.DB, v *T, what string) {
	t.Helper()

	if err := database.Create(v).Error; err != nil {
		t.Fatalf("failed to seed %s: %v", what, err)
	}
}

func SeedAuthor(t *testing.T, database *gorm.DB, name string) model.Author {
	t.Helper()

	author := model.Author{
		Name:      name,
		Biography: "Biography of " + name,
	}
	create(t, database, &author, "author "+name)
	return author
}

func SeedCategory(t *testing.T, database *gorm.DB, name string) model.Category {
	t.Helper()

	category := model.Category{Name: name}
	create(t, database, &category, "category "+name)
	return category
}

func SeedBook(t *testing.T, database *gorm.DB, author model.Author, category model.Category, title, isbn string) model.Book {
	t.Helper()

	book := model.Book{
		Title:           title,
		Description:     "About " + title,
		AuthorID:        author.ID,
		CategoryID:      category.ID,
		ISBN:            isbn,
		CopiesAvailable: 5,
	}
	create(t, database, &book, "book "+title)
	return book
}

func SeedUser(t *testing.T, database *gorm.DB, username string) model.User {
	t.Helper()

	user := model.User{
		Username:     username,
		PasswordHash: "not-a-real-hash",
	}
	create(t, database, &user, "user "+username)
	return user
}

func SeedMember(t *testing.T, database *gorm.DB, user model.User, address string) model.Member {
	t.Helper()

	member := model.Member{
		UserID:  user.ID,
		Address: address,
	}
	create(t, database, &member, "member "+address)
	return member
}

func SeedLoan(t *testing.T, database *gorm.DB, member model.Member, book model.Book, loanDate time.Time, returnDate *time.Time) model.Loan {
	t.Helper()

	loan := model.Loan{
		MemberID:   member.ID,
		BookID:     book.ID,
		LoanDate:   loanDate,
		ReturnDate: returnDate,
	}
	create(t, database, &loan, "loan")
	return loan
}

// Library seeds one of everything and returns the loan with its parents.
type Library struct {
	Author   model.Author
	Category model.Category
	Book     model.Book
	User     model.User
	Member   model.Member
	Loan     model.Loan
}

func SeedLibrary(t *testing.T, database *gorm.DB) Library {
	t.Helper()

	var lib Library
	lib.Author = SeedAuthor(t, database, "J.K. Rowling")
	lib.Category = SeedCategory(t, database, "Fantasy")
	lib.Book = SeedBook(t, database, lib.Author, lib.Category, "Harry Potter", "1234567890123")
	lib.User = SeedUser(t, database, "testuser")
	lib.Member = SeedMember(t, database, lib.User, "123 Library Lane")
	lib.Loan = SeedLoan(t, database, lib.Member, lib.Book, time.Date(2024, 8, 25, 0, 0, 0, 0, time.UTC), nil)
	return lib
}
