package database

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"strings"
	"time"

	"friendchat/internal/domain/message"
	"friendchat/internal/domain/user"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed seed_users.yaml
var seedUsersYAML []byte

// SeedUser is one fixture entry of seed_users.yaml
type SeedUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Image    string `yaml:"image"`
}

type seedFile struct {
	Users []SeedUser `yaml:"users"`
}

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	FakeUserCount int
	FakePassword  string
	FakeSeed      uint64
	HashCost      int
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		FakeUserCount: 0,
		FakePassword:  "password123",
		HashCost:      bcrypt.DefaultCost,
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	Fixtures  []user.User
	FakeUsers []user.User
}

// FixtureUsers parses the embedded fixture file.
func FixtureUsers() ([]SeedUser, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedUsersYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed fixtures: %w", err)
	}
	return f.Users, nil
}

// Seed removes every existing user and relationship, then inserts the
// fixture users and cfg.FakeUserCount generated users.
func Seed(ctx context.Context, db *gorm.DB, cfg *SeedConfig) (*SeedResult, error) {
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}
	if cfg.HashCost == 0 {
		cfg.HashCost = bcrypt.DefaultCost
	}

	fixtures, err := FixtureUsers()
	if err != nil {
		return nil, err
	}

	result := &SeedResult{}
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := truncate(tx); err != nil {
			return err
		}
		log.Println("Old users removed")

		for _, f := range fixtures {
			u, err := newSeedUser(f, cfg.HashCost)
			if err != nil {
				return err
			}
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("failed to insert fixture %s: %w", f.Email, err)
			}
			result.Fixtures = append(result.Fixtures, u)
		}

		fake, err := seedFakeUsers(tx, cfg)
		if err != nil {
			return err
		}
		result.FakeUsers = fake
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("%d users inserted successfully", len(result.Fixtures)+len(result.FakeUsers))
	return result, nil
}

func seedFakeUsers(tx *gorm.DB, cfg *SeedConfig) ([]user.User, error) {
	if cfg.FakeUserCount <= 0 {
		return nil, nil
	}
	faker := gofakeit.New(cfg.FakeSeed)

	users := make([]user.User, 0, cfg.FakeUserCount)
	for i := 0; i < cfg.FakeUserCount; i++ {
		gender := "men"
		if faker.Bool() {
			gender = "women"
		}
		u, err := newSeedUser(SeedUser{
			Name:     faker.Name(),
			Email:    fmt.Sprintf("%d.%s", i, strings.ToLower(faker.Email())),
			Password: cfg.FakePassword,
			Image:    fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", gender, faker.Number(1, 99)),
		}, cfg.HashCost)
		if err != nil {
			return nil, err
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&u)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to insert fake user: %w", res.Error)
		}
		if res.RowsAffected == 1 {
			users = append(users, u)
		}
	}
	return users, nil
}

func newSeedUser(f SeedUser, cost int) (user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), cost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	now := time.Now().UTC()
	return user.User{
		ID:           uuid.New(),
		Name:         f.Name,
		Email:        strings.ToLower(strings.TrimSpace(f.Email)),
		PasswordHash: string(hash),
		Image:        f.Image,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Truncate deletes every row of every application table.
func Truncate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(truncate)
}

func truncate(tx *gorm.DB) error {
	for _, model := range []any{&message.Message{}, &user.Friendship{}, &user.FriendRequest{}, &user.User{}} {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}
