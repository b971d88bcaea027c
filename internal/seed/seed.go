package seed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/evimeria/catalog-service/internal/category"
	"github.com/evimeria/catalog-service/internal/model"
	"github.com/evimeria/catalog-service/internal/slug"
	"github.com/evimeria/catalog-service/internal/subcategory"
	"github.com/evimeria/catalog-service/internal/user"
)

type subEntry struct {
	name        string
	description string
}

type catEntry struct {
	name        string
	description string
	subs        []subEntry
}

// taxonomy is the storefront's launch catalog structure.
var taxonomy = []catEntry{
	{
		name:        "Hommes",
		description: "Mode et accessoires pour hommes",
		subs: []subEntry{
			{"Vêtements", "T-shirts, pulls, chemises, vestes et pantalons"},
			{"Chaussures", "Sneakers, baskets, sandales et bottes"},
			{"Accessoires", "Ceintures, colliers, gants et écharpes"},
			{"Montres", "Montres analogiques et smartwatches"},
			{"Casquettes & Sacs", "Casquettes, sacs à dos et sacs de sport"},
			{"Produits cosmétiques", "Parfums, gels douche et déodorants"},
		},
	},
	{
		name:        "Femmes",
		description: "Mode et accessoires pour femmes",
		subs: []subEntry{
			{"Vêtements", "T-shirts, pulls, chemises, robes et pantalons"},
			{"Chaussures", "Sneakers, baskets, sandales et bottes"},
			{"Accessoires", "Ceintures, colliers, gants et bijoux"},
			{"Montres", "Montres analogiques et smartwatches"},
			{"Sacs", "Casquettes, sacs à main et sacs à dos"},
			{"Produits cosmétiques", "Parfums, crèmes et produits de beauté"},
		},
	},
	{
		name:        "Enfants",
		description: "Mode et accessoires pour enfants",
		subs: []subEntry{
			{"Vêtements garçons", "T-shirts, pantalons et vêtements pour garçons"},
			{"Vêtements filles", "Robes, jupes, t-shirts et vêtements pour filles"},
			{"Chaussures", "Sneakers, baskets, sandales et bottes pour enfants"},
			{"Accessoires", "Ceintures, écharpes et accessoires pour enfants"},
		},
	},
}

// Seeder populates the initial catalog taxonomy and administrative users.
// All operations are get-or-create on natural keys, so re-running is safe.
type Seeder struct {
	cats   category.Repository
	subs   subcategory.Repository
	users  user.Repository
	logger *zap.Logger
}

func New(cats category.Repository, subs subcategory.Repository, users user.Repository, log *zap.Logger) *Seeder {
	return &Seeder{cats: cats, subs: subs, users: users, logger: log}
}

func (s *Seeder) Run(ctx context.Context) error {
	for _, entry := range taxonomy {
		cat, err := s.ensureCategory(ctx, entry)
		if err != nil {
			return err
		}

		created := 0
		for _, sub := range entry.subs {
			ok, err := s.ensureSubCategory(ctx, cat, sub)
			if err != nil {
				return err
			}
			if ok {
				created++
			}
		}
		s.logger.Info("category seeded",
			zap.String("name", cat.Name),
			zap.Int("new_subcategories", created))
	}
	return nil
}

func (s *Seeder) ensureCategory(ctx context.Context, entry catEntry) (*model.Category, error) {
	existing, err := s.cats.FindByName(ctx, entry.name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logger.Debug("category exists", zap.String("name", entry.name))
		return existing, nil
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        entry.name,
		Slug:        slug.Make(entry.name),
		Description: entry.description,
		IsPublished: true,
	}
	if err := s.cats.Create(ctx, cat); err != nil {
		return nil, err
	}
	s.logger.Info("category created", zap.String("name", cat.Name), zap.String("slug", cat.Slug))
	return cat, nil
}

func (s *Seeder) ensureSubCategory(ctx context.Context, cat *model.Category, entry subEntry) (bool, error) {
	existing, err := s.subs.FindByNaturalKey(ctx, cat.ID, entry.name)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	now := time.Now()
	sub := &model.SubCategory{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		CategoryID:  cat.ID,
		Name:        entry.name,
		Slug:        slug.Make(entry.name),
		Description: entry.description,
		IsPublished: true,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return false, err
	}
	return true, nil
}

// CreateAdmin makes sure an admin account with the given username exists.
// An existing non-admin user is promoted; an existing admin is left alone.
func (s *Seeder) CreateAdmin(ctx context.Context, username, email, password string) error {
	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	if existing != nil {
		if existing.IsAdmin {
			s.logger.Info("admin already exists", zap.String("username", username))
			return nil
		}
		existing.IsAdmin = true
		if err := s.users.Update(ctx, existing); err != nil {
			return err
		}
		s.logger.Info("user promoted to admin", zap.String("username", username))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return err
	}
	s.logger.Info("admin created", zap.String("username", username))
	return nil
}
