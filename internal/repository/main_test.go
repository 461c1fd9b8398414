package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	"writoria/internal/database"
	"writoria/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")

	var err error
	testDB, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("failed to open in-memory database: %v", err)
	}

	if err := database.Migrate(testDB); err != nil {
		log.Fatalf("failed to migrate test schema: %v", err)
	}

	os.Exit(m.Run())
}

func truncateTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{"chat_messages", "bookmarks", "votes", "comments", "post_images", "posts", "profiles", "users"} {
		if err := testDB.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to clear table %s: %v", table, err)
		}
	}
}

var testUserSeq int

func createTestUser(t *testing.T) *models.User {
	t.Helper()
	testUserSeq++
	user := &models.User{
		Username: fmt.Sprintf("user%d", testUserSeq),
		Email:    fmt.Sprintf("user%d@example.com", testUserSeq),
		Password: "hashed-password",
	}
	if err := testDB.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestPost(t *testing.T, author *models.User, slug string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    "Post " + slug,
		Content:  "content",
		Slug:     slug,
		Category: models.CategoryGeneral,
		UserID:   author.ID,
	}
	if err := testDB.Create(post).Error; err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

func testCtx() context.Context {
	return context.Background()
}
