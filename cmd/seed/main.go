package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipebook/internal/config"
	"recipebook/internal/database"
	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

type tagSeed struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type ingredientSeed struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// seed imports the tag and ingredient dictionaries from JSON files.
// Rows that already exist are skipped, so reruns are safe.
func main() {
	tagsPath := flag.String("tags", "data/tags.json", "path to tags JSON")
	ingredientsPath := flag.String("ingredients", "data/ingredients.json", "path to ingredients JSON")
	demo := flag.Bool("demo", false, "also create a demo user with one recipe")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	ctx := context.Background()
	tagRepo := repository.NewTagRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)

	tags, err := readJSON[tagSeed](*tagsPath)
	if err != nil {
		logger.Fatal("reading tags", zap.Error(err))
	}
	var tagsAdded, tagsSkipped int
	for _, t := range tags {
		err := tagRepo.Create(ctx, &domain.Tag{Name: t.Name, Color: t.Color, Slug: t.Slug})
		switch {
		case err == nil:
			tagsAdded++
		case repository.IsUniqueViolation(err):
			tagsSkipped++
			logger.Info("tag already present", zap.String("name", t.Name))
		default:
			logger.Fatal("creating tag", zap.String("name", t.Name), zap.Error(err))
		}
	}

	ingredients, err := readJSON[ingredientSeed](*ingredientsPath)
	if err != nil {
		logger.Fatal("reading ingredients", zap.Error(err))
	}
	var ingAdded, ingSkipped int
	for _, ing := range ingredients {
		err := ingredientRepo.Create(ctx, &domain.Ingredient{
			Name:            ing.Name,
			MeasurementUnit: ing.MeasurementUnit,
		})
		switch {
		case err == nil:
			ingAdded++
		case repository.IsUniqueViolation(err):
			ingSkipped++
			logger.Info("ingredient already present", zap.String("name", ing.Name))
		default:
			logger.Fatal("creating ingredient", zap.String("name", ing.Name), zap.Error(err))
		}
	}

	if *demo {
		if err := seedDemo(ctx, db, logger); err != nil {
			logger.Fatal("seeding demo data", zap.Error(err))
		}
	}

	logger.Info("seed finished",
		zap.Int("tags_added", tagsAdded),
		zap.Int("tags_skipped", tagsSkipped),
		zap.Int("ingredients_added", ingAdded),
		zap.Int("ingredients_skipped", ingSkipped),
	)
}

// seedDemo creates one user with a single recipe so a fresh local instance
// has something to show. Safe to rerun.
func seedDemo(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	tagRepo := repository.NewTagRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &domain.User{
		Email:        "demo@example.com",
		Username:     "demo",
		FirstName:    "Demo",
		LastName:     "Cook",
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			logger.Info("demo user already present")
			return nil
		}
		return err
	}

	ingredients, err := ingredientRepo.List(ctx, "")
	if err != nil {
		return err
	}
	tags, err := tagRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(ingredients) < 2 || len(tags) == 0 {
		logger.Info("not enough catalog data for a demo recipe, skipping")
		return nil
	}

	rec := &domain.Recipe{
		Name:        "Demo pancakes",
		AuthorID:    user.ID,
		Text:        "Mix everything and fry on both sides until golden.",
		CookingTime: 25,
	}
	lines := []domain.IngredientLine{
		{IngredientID: ingredients[0].ID, Amount: 200},
		{IngredientID: ingredients[1].ID, Amount: 50},
	}
	if err := recipeRepo.Create(ctx, rec, lines, tags[:1]); err != nil {
		return err
	}
	logger.Info("demo data created", zap.Int64("user_id", user.ID), zap.Int64("recipe_id", rec.ID))
	return nil
}

func readJSON[T any](path string) ([]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, nil
}
