package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recipebook/internal/database"
	"recipebook/internal/domain"
)

// sqlRecorder captures every executed statement so tests can assert on the
// query shape, not just the result.
type sqlRecorder struct {
	mu         sync.Mutex
	statements []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...any)     {}
func (r *sqlRecorder) Warn(context.Context, string, ...any)     {}
func (r *sqlRecorder) Error(context.Context, string, ...any)    {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	r.statements = append(r.statements, sql)
	r.mu.Unlock()
}

func (r *sqlRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.statements...)
}

func setupRecipeRepo(t *testing.T) (RecipeRepository, *gorm.DB, *sqlRecorder) {
	db, err := database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	rec := &sqlRecorder{}
	return NewRecipeRepository(db.Session(&gorm.Session{Logger: rec})), db, rec
}

// seedRecipes creates one author with three recipes: breakfast, dinner, and
// one carrying both tags, published an hour apart.
func seedRecipes(t *testing.T, db *gorm.DB, repo RecipeRepository) {
	require.NoError(t, db.Create(&domain.User{
		Email:        "chef@example.com",
		Username:     "chef",
		PasswordHash: "irrelevant",
	}).Error)

	breakfast := domain.Tag{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"}
	dinner := domain.Tag{Name: "Dinner", Color: "#8775D2", Slug: "dinner"}
	require.NoError(t, db.Create(&breakfast).Error)
	require.NoError(t, db.Create(&dinner).Error)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	fixtures := []struct {
		name string
		tags []domain.Tag
	}{
		{"Morning pancakes", []domain.Tag{breakfast}},
		{"Evening stew", []domain.Tag{dinner}},
		{"Allday omelette", []domain.Tag{breakfast, dinner}},
	}
	for i, f := range fixtures {
		rec := &domain.Recipe{
			Name:        f.name,
			AuthorID:    1,
			Text:        "Cook it slowly",
			CookingTime: 30,
			PublishedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(context.Background(), rec, nil, f.tags))
	}
}

func TestRecipeRepository_List_OrdersAndFiltersByTag(t *testing.T) {
	repo, db, rec := setupRecipeRepo(t)
	seedRecipes(t, db, repo)
	ctx := context.Background()

	all, total, err := repo.List(ctx, RecipeFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, "Allday omelette", all[0].Name)
	assert.Equal(t, "Evening stew", all[1].Name)
	assert.Equal(t, "Morning pancakes", all[2].Name)
	require.NotNil(t, all[0].Author)
	assert.Equal(t, "chef", all[0].Author.Username)

	filtered, total, err := repo.List(ctx, RecipeFilter{TagSlugs: []string{"breakfast"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Allday omelette", filtered[0].Name)
	assert.Equal(t, "Morning pancakes", filtered[1].Name)

	// a recipe carrying both tags counts once
	both, total, err := repo.List(ctx, RecipeFilter{TagSlugs: []string{"breakfast", "dinner"}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, both, 3)

	// postgres rejects SELECT DISTINCT with an ORDER BY column outside the
	// select list, so the id resolution must never render one
	for _, stmt := range rec.all() {
		assert.NotRegexp(t, `(?i)SELECT\s+DISTINCT\s`, stmt)
	}
}

func TestRecipeRepository_List_Paginates(t *testing.T) {
	repo, db, _ := setupRecipeRepo(t)
	seedRecipes(t, db, repo)
	ctx := context.Background()

	page1, total, err := repo.List(ctx, RecipeFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page1, 2)
	assert.Equal(t, "Allday omelette", page1[0].Name)
	assert.Equal(t, "Evening stew", page1[1].Name)

	page2, total, err := repo.List(ctx, RecipeFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page2, 1)
	assert.Equal(t, "Morning pancakes", page2[0].Name)
}

func TestRecipeRepository_List_FiltersByAuthor(t *testing.T) {
	repo, db, _ := setupRecipeRepo(t)
	seedRecipes(t, db, repo)
	ctx := context.Background()

	require.NoError(t, db.Create(&domain.User{
		Email:        "baker@example.com",
		Username:     "baker",
		PasswordHash: "irrelevant",
	}).Error)
	require.NoError(t, repo.Create(ctx, &domain.Recipe{
		Name:        "Sourdough bread",
		AuthorID:    2,
		Text:        "Knead and wait",
		CookingTime: 90,
	}, nil, nil))

	mine, total, err := repo.List(ctx, RecipeFilter{AuthorID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mine, 1)
	assert.Equal(t, "Sourdough bread", mine[0].Name)
}
