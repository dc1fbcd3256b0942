package seed

import (
	"fmt"
	"log"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumMessages int
	MaxDays     int
	ShouldClean bool
}

// Seed populates the database with generated users, messages, follows
// and likes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d messages...", opts.NumUsers, opts.NumMessages)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	messages := make([]*models.Message, 0, opts.NumMessages)
	for i := 0; i < opts.NumMessages; i++ {
		author := users[f.rand.Intn(len(users))]
		message, err := f.CreateMessage(author)
		if err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}
		messages = append(messages, message)
	}
	log.Printf("created %d messages", len(messages))

	follows, err := createFollowMesh(db, f, users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("created %d follow edges", follows)

	likes, err := createLikes(db, f, users, messages)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("created %d likes", likes)

	return nil
}

// createFollowMesh gives every user a handful of accounts to follow.
// Self-follow and repeat picks are simply skipped.
func createFollowMesh(db *gorm.DB, f *Factory, users []*models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, follower := range users {
		picked := map[uint]bool{follower.ID: true}
		wanted := f.rand.Intn(len(users)/2) + 1
		for i := 0; i < wanted; i++ {
			target := users[f.rand.Intn(len(users))]
			if picked[target.ID] {
				continue
			}
			picked[target.ID] = true

			edge := models.Follow{FollowerID: follower.ID, FollowedID: target.ID}
			if err := db.Create(&edge).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// createLikes sprinkles likes over the generated messages.
func createLikes(db *gorm.DB, f *Factory, users []*models.User, messages []*models.Message) (int, error) {
	if len(users) == 0 || len(messages) == 0 {
		return 0, nil
	}

	created := 0
	for _, message := range messages {
		picked := map[uint]bool{}
		wanted := f.rand.Intn(len(users) + 1)
		for i := 0; i < wanted; i++ {
			fan := users[f.rand.Intn(len(users))]
			if picked[fan.ID] {
				continue
			}
			picked[fan.ID] = true

			like := models.Like{UserID: fan.ID, MessageID: message.ID}
			if err := db.Create(&like).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// clearData removes all seedable rows so a fresh run starts clean.
// Edge tables go first to keep foreign keys satisfied.
func clearData(db *gorm.DB) error {
	for _, stmt := range []string{
		"DELETE FROM likes",
		"DELETE FROM follows",
		"DELETE FROM messages",
		"DELETE FROM users",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
