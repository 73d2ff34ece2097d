package subscription

import (
	"context"

	"recipebook/internal/domain"
	"recipebook/internal/repository"
)

type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type RecipeReader interface {
	RecentByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Recipe, error)
}

type Repo interface {
	Add(ctx context.Context, followerID, authorID int64) error
	Remove(ctx context.Context, followerID, authorID int64) error
	Exists(ctx context.Context, followerID, authorID int64) (bool, error)
	ListByFollower(ctx context.Context, followerID int64) ([]domain.Subscription, error)
}

type Service struct {
	subs    Repo
	users   UserGetter
	recipes RecipeReader
}

func NewService(subs Repo, users UserGetter, recipes RecipeReader) *Service {
	return &Service{subs: subs, users: users, recipes: recipes}
}

// Subscribe follows the author and returns their public profile with up to
// five recent recipes. Self-follow is rejected regardless of prior state.
func (s *Service) Subscribe(ctx context.Context, followerID, authorID int64) (*AuthorProfile, error) {
	if followerID == authorID {
		return nil, ErrSelfSubscription
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	exists, err := s.subs.Exists(ctx, followerID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	if err := s.subs.Add(ctx, followerID, authorID); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	recent, err := s.recipes.RecentByAuthor(ctx, authorID, recentRecipeLimit)
	if err != nil {
		return nil, err
	}

	profile := ToAuthorProfile(author, recent)
	return &profile, nil
}

func (s *Service) Unsubscribe(ctx context.Context, followerID, authorID int64) error {
	if err := s.subs.Remove(ctx, followerID, authorID); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// List returns the profiles of every followed author, each with their
// recent recipes.
func (s *Service) List(ctx context.Context, followerID int64) ([]AuthorProfile, error) {
	subs, err := s.subs.ListByFollower(ctx, followerID)
	if err != nil {
		return nil, err
	}

	out := make([]AuthorProfile, 0, len(subs))
	for _, sub := range subs {
		if sub.Author == nil {
			continue
		}
		recent, err := s.recipes.RecentByAuthor(ctx, sub.AuthorID, recentRecipeLimit)
		if err != nil {
			return nil, err
		}
		out = append(out, ToAuthorProfile(sub.Author, recent))
	}
	return out, nil
}
