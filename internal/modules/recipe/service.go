package recipe

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

type Service struct {
	recipes     RecipeRepo
	ingredients IngredientRepo
	tags        TagRepo
	favorites   RelationMarks
	cart        RelationMarks
	subs        AuthorMarks
	images      ImageStore
	nameMin     int
	textMin     int
}

func NewService(
	recipes RecipeRepo,
	ingredients IngredientRepo,
	tags TagRepo,
	favorites RelationMarks,
	cart RelationMarks,
	subs AuthorMarks,
	images ImageStore,
	nameMin, textMin int,
) *Service {
	return &Service{
		recipes:     recipes,
		ingredients: ingredients,
		tags:        tags,
		favorites:   favorites,
		cart:        cart,
		subs:        subs,
		images:      images,
		nameMin:     nameMin,
		textMin:     textMin,
	}
}

// Create validates the header, tag ids and ingredient entries, then persists
// the recipe with all its relations in one transaction.
func (s *Service) Create(ctx context.Context, authorID int64, req RecipeRequest) (*RecipeResponse, error) {
	name, text, err := s.validateHeader(req)
	if err != nil {
		return nil, err
	}

	// Duplicate-name policy applies on creation only.
	exists, err := s.recipes.ExistsByAuthorAndName(ctx, authorID, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRecipeName
	}

	lines, err := s.validateIngredients(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}
	image, err := s.resolveImage(req.Image)
	if err != nil {
		return nil, err
	}

	rec := &domain.Recipe{
		Name:        name,
		AuthorID:    authorID,
		Image:       image,
		Text:        text,
		CookingTime: req.CookingTime,
	}

	if err := s.recipes.Create(ctx, rec, lines, tags); err != nil {
		// Two identical submissions racing past the exists check: the
		// (author, name) unique index decides, we report the conflict.
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateRecipeName
		}
		return nil, err
	}

	return s.Get(ctx, authorID, rec.ID)
}

// Replace swaps the header, ingredient lines and tag links of an existing
// recipe for the submitted set. Replace-all, not a patch.
func (s *Service) Replace(ctx context.Context, userID, recipeID int64, req RecipeRequest) (*RecipeResponse, error) {
	existing, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if existing.AuthorID != userID {
		return nil, ErrForbidden
	}

	name, text, err := s.validateHeader(req)
	if err != nil {
		return nil, err
	}
	lines, err := s.validateIngredients(ctx, req.Ingredients)
	if err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	image := existing.Image
	if req.Image != "" {
		image, err = s.resolveImage(req.Image)
		if err != nil {
			return nil, err
		}
	}

	rec := &domain.Recipe{
		ID:          recipeID,
		Name:        name,
		AuthorID:    existing.AuthorID,
		Image:       image,
		Text:        text,
		CookingTime: req.CookingTime,
	}

	if err := s.recipes.Replace(ctx, rec, lines, tags); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateRecipeName
		}
		return nil, err
	}

	return s.Get(ctx, userID, recipeID)
}

// Delete removes a recipe with everything hanging off it. Admins may delete
// anyone's recipe, everyone else only their own.
func (s *Service) Delete(ctx context.Context, userID, recipeID int64, isAdmin bool) error {
	existing, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if existing.AuthorID != userID && !isAdmin {
		return ErrForbidden
	}
	return s.recipes.Delete(ctx, recipeID)
}

// Get returns the full representation with the viewer's favorite/cart flags.
// viewerID 0 means anonymous; both flags stay false.
func (s *Service) Get(ctx context.Context, viewerID, recipeID int64) (*RecipeResponse, error) {
	rec, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fav, cart, err := s.markFor(ctx, viewerID, []int64{rec.ID})
	if err != nil {
		return nil, err
	}
	followed, err := s.subs.AuthorIDsFor(ctx, viewerID, []int64{rec.AuthorID})
	if err != nil {
		return nil, err
	}
	resp := ToRecipeResponse(rec, fav[rec.ID], cart[rec.ID], followed[rec.AuthorID])
	return &resp, nil
}

func (s *Service) List(ctx context.Context, viewerID int64, f repository.RecipeFilter, page, perPage int) (*RecipeListResponse, error) {
	f.Limit = perPage
	f.Offset = (page - 1) * perPage

	recipes, total, err := s.recipes.List(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(recipes))
	authorIDs := make([]int64, len(recipes))
	for i, rec := range recipes {
		ids[i] = rec.ID
		authorIDs[i] = rec.AuthorID
	}
	fav, cart, err := s.markFor(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	followed, err := s.subs.AuthorIDsFor(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	items := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		items[i] = ToRecipeResponse(&recipes[i], fav[recipes[i].ID], cart[recipes[i].ID], followed[recipes[i].AuthorID])
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	return &RecipeListResponse{
		Recipes:    items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) markFor(ctx context.Context, viewerID int64, ids []int64) (fav, cart map[int64]bool, err error) {
	fav, err = s.favorites.RecipeIDsFor(ctx, viewerID, ids)
	if err != nil {
		return nil, nil, err
	}
	cart, err = s.cart.RecipeIDsFor(ctx, viewerID, ids)
	if err != nil {
		return nil, nil, err
	}
	return fav, cart, nil
}

// validateHeader normalizes and checks the non-relational fields. Name and
// text are trimmed and get their first rune upper-cased.
func (s *Service) validateHeader(req RecipeRequest) (name, text string, err error) {
	name = capitalize(strings.TrimSpace(req.Name))
	if utf8.RuneCountInString(name) < s.nameMin {
		return "", "", ErrInvalidName
	}

	text = capitalize(strings.TrimSpace(req.Text))
	if utf8.RuneCountInString(text) < s.textMin {
		return "", "", ErrInvalidDescription
	}

	if req.CookingTime < domain.MinCookingTime || req.CookingTime > domain.MaxCookingTime {
		return "", "", ErrInvalidCookingTime
	}
	return name, text, nil
}

// validateIngredients checks the submitted entries and turns them into
// ingredient lines. Pure validation; nothing is persisted here.
func (s *Service) validateIngredients(ctx context.Context, entries []IngredientEntry) ([]domain.IngredientLine, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyIngredientList
	}

	seen := make(map[int64]bool, len(entries))
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		if e.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		if seen[e.ID] {
			return nil, ErrDuplicateIngredient
		}
		seen[e.ID] = true
		ids = append(ids, e.ID)
	}

	known, err := s.ingredients.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(known) != len(ids) {
		return nil, ErrUnknownIngredient
	}

	lines := make([]domain.IngredientLine, len(entries))
	for i, e := range entries {
		lines[i] = domain.IngredientLine{IngredientID: e.ID, Amount: e.Amount}
	}
	return lines, nil
}

func (s *Service) resolveTags(ctx context.Context, tagIDs []int64) ([]domain.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	seen := make(map[int64]bool, len(tagIDs))
	unique := make([]int64, 0, len(tagIDs))
	for _, id := range tagIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	tags, err := s.tags.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(unique) {
		return nil, ErrUnknownTag
	}
	return tags, nil
}

// resolveImage stores inline base64 payloads and passes through references
// that already point at the image store.
func (s *Service) resolveImage(payload string) (string, error) {
	if payload == "" || !strings.HasPrefix(payload, "data:") {
		return payload, nil
	}
	return s.images.SaveBase64(payload)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
