// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"vitrine/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder populates the database with demo content.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Order respects foreign keys.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{
		&models.Comment{},
		&models.Post{},
		&models.ChatMessage{},
		&models.User{},
		&models.Settings{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// SeedDemo creates an admin, a set of subscribers, a feed and a few support
// conversations.
func (s *Seeder) SeedDemo(numUsers, numPosts int) error {
	if err := s.seedSettings(); err != nil {
		return err
	}

	users, err := s.seedUsers(numUsers)
	if err != nil {
		return err
	}
	if err := s.seedFeed(numPosts, users); err != nil {
		return err
	}
	return s.seedChats(users)
}

func (s *Seeder) seedSettings() error {
	settings := models.Settings{
		ID:          models.SettingsID,
		Nome:        gofakeit.FirstName(),
		Descricao:   gofakeit.Sentence(12),
		Visto:       "online agora",
		Destaque:    gofakeit.Sentence(8),
		DestaqueBtn: "Assinar agora",
	}
	return s.db.FirstOrCreate(&settings, models.Settings{ID: models.SettingsID}).Error
}

func (s *Seeder) seedUsers(n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	plans := []string{models.PlanMensal, models.Plan3Meses, models.Plan6Meses, models.Plan12Meses}
	users := make([]models.User, 0, n+1)

	admin := models.User{
		Email:   "admin@vitrine.local",
		Login:   "admin",
		Senha:   string(hashed),
		Plano:   models.Plan12Meses,
		Status:  models.UserStatusAtivo,
		IsAdmin: true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}
	users = append(users, admin)

	for i := 0; i < n; i++ {
		user := models.User{
			Email:  fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Login:  fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Senha:  string(hashed),
			Plano:  plans[s.rng.Intn(len(plans))],
			Status: models.UserStatusAtivo,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedFeed(n int, users []models.User) error {
	for i := 0; i < n; i++ {
		var texto, foto string
		switch s.rng.Intn(3) {
		case 0:
			texto = gofakeit.Sentence(10)
		case 1:
			foto = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		default:
			texto = gofakeit.Sentence(10)
			foto = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}

		post := models.Post{
			Tipo:  models.DerivePostTipo(texto, foto, ""),
			Texto: texto,
			Foto:  foto,
			TargetReactions: models.ReactionSet{
				models.ReactionHeart:  100 + s.rng.Intn(20),
				models.ReactionInLove: 60 + s.rng.Intn(20),
				models.ReactionThumbs: 40 + s.rng.Intn(20),
			},
			Reactions: models.ReactionSet{
				models.ReactionHeart:  0,
				models.ReactionInLove: 0,
				models.ReactionThumbs: 0,
			},
			CreatedAt: time.Now().Add(-time.Duration(s.rng.Intn(90*24)) * time.Hour),
		}
		if err := s.db.Create(&post).Error; err != nil {
			return err
		}

		for c := 0; c < s.rng.Intn(4); c++ {
			author := users[s.rng.Intn(len(users))]
			comment := models.Comment{
				PostID:    post.ID,
				Autor:     author.Login,
				Texto:     gofakeit.Sentence(6),
				CreatedAt: post.CreatedAt.Add(time.Duration(c+1) * time.Hour),
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedChats(users []models.User) error {
	for _, user := range users {
		if user.IsAdmin || s.rng.Intn(3) != 0 {
			continue
		}
		base := time.Now().Add(-time.Duration(s.rng.Intn(48)) * time.Hour)
		exchange := []models.ChatMessage{
			{UserID: user.Login, Mensagem: gofakeit.Question(), Role: models.ChatRoleUser, CreatedAt: base},
			{UserID: user.Login, Mensagem: gofakeit.Sentence(8), Role: models.ChatRoleAssistant, CreatedAt: base.Add(5 * time.Minute)},
		}
		for i := range exchange {
			if err := s.db.Create(&exchange[i]).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
