// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"warbler/internal/credentials"
	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is the password every generated user authenticates with.
const DefaultPassword = "password"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
	opts Options
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		opts: opts,
	}
}

// CreateUser persists a user with a generated identity. All generated
// users share DefaultPassword so any of them can be logged into during
// development.
func (f *Factory) CreateUser() (*models.User, error) {
	hash, err := credentials.HashPassword(DefaultPassword)
	if err != nil {
		return nil, err
	}

	username := strings.ToLower(gofakeit.Username())
	user := &models.User{
		Username: fmt.Sprintf("%s%d", username, f.rand.Intn(10000)),
		Email:    gofakeit.Email(),
		Password: hash,
		Bio:      gofakeit.Sentence(8),
		Location: fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.Country()),
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/400/400", gofakeit.UUID()),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildMessage constructs an unsaved message for the user with a
// realistic timestamp spread into the past.
func (f *Factory) BuildMessage(user *models.User) *models.Message {
	text := gofakeit.Sentence(f.rand.Intn(12) + 3)
	if len(text) > models.MaxMessageLen {
		text = text[:models.MaxMessageLen]
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rand.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rand.Intn(24))*time.Hour +
		time.Duration(f.rand.Intn(60))*time.Minute

	return &models.Message{
		Text:      text,
		Timestamp: time.Now().Add(-back),
		UserID:    user.ID,
	}
}

// CreateMessage persists a generated message for the user.
func (f *Factory) CreateMessage(user *models.User) (*models.Message, error) {
	message := f.BuildMessage(user)
	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}
