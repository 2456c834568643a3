package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	authentity "wellness_backend/internal/feature/auth/domain/entity"
	"wellness_backend/internal/feature/forms/domain/entity"
)

// mockProfileRepository is a mock implementation of the ProfileRepository interface.
type mockProfileRepository struct {
	FindUserByEmailFunc       func(ctx context.Context, email string) (*authentity.User, error)
	LatestOnboardingFunc      func(ctx context.Context, email string) (*entity.OnboardingQuestion, error)
	LatestJournalFunc         func(ctx context.Context, email string) (*entity.Journal, error)
	LatestMuscleSelectionFunc func(ctx context.Context, email string) (*entity.MuscleSelection, error)
	LatestJourneyFunc         func(ctx context.Context, email string) (*entity.Journey, error)
	LatestPostExperienceFunc  func(ctx context.Context, email string) (*entity.PostExperience, error)
	LatestAudioFunc           func(ctx context.Context, email string) (*entity.Audio, error)
	AllJournalsFunc           func(ctx context.Context, email string) ([]entity.Journal, error)
	AllMuscleSelectionsFunc   func(ctx context.Context, email string) ([]entity.MuscleSelection, error)
	AllJourneysFunc           func(ctx context.Context, email string) ([]entity.Journey, error)
	AllPostExperiencesFunc    func(ctx context.Context, email string) ([]entity.PostExperience, error)
	AllAudiosFunc             func(ctx context.Context, email string) ([]entity.Audio, error)
}

func (m *mockProfileRepository) FindUserByEmail(ctx context.Context, email string) (*authentity.User, error) {
	if m.FindUserByEmailFunc != nil {
		return m.FindUserByEmailFunc(ctx, email)
	}
	return &authentity.User{ID: 1, Email: email, Name: "Test User"}, nil
}

func (m *mockProfileRepository) LatestOnboarding(ctx context.Context, email string) (*entity.OnboardingQuestion, error) {
	if m.LatestOnboardingFunc != nil {
		return m.LatestOnboardingFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockProfileRepository) LatestJournal(ctx context.Context, email string) (*entity.Journal, error) {
	if m.LatestJournalFunc != nil {
		return m.LatestJournalFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockProfileRepository) LatestMuscleSelection(ctx context.Context, email string) (*entity.MuscleSelection, error) {
	if m.LatestMuscleSelectionFunc != nil {
		return m.LatestMuscleSelectionFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockProfileRepository) LatestJourney(ctx context.Context, email string) (*entity.Journey, error) {
	if m.LatestJourneyFunc != nil {
		return m.LatestJourneyFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockProfileRepository) LatestPostExperience(ctx context.Context, email string) (*entity.PostExperience, error) {
	if m.LatestPostExperienceFunc != nil {
		return m.LatestPostExperienceFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockProfileRepository) LatestAudio(ctx context.Context, email string) (*entity.Audio, error) {
	if m.LatestAudioFunc != nil {
		return m.LatestAudioFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockProfileRepository) AllJournals(ctx context.Context, email string) ([]entity.Journal, error) {
	if m.AllJournalsFunc != nil {
		return m.AllJournalsFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockProfileRepository) AllMuscleSelections(ctx context.Context, email string) ([]entity.MuscleSelection, error) {
	if m.AllMuscleSelectionsFunc != nil {
		return m.AllMuscleSelectionsFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockProfileRepository) AllJourneys(ctx context.Context, email string) ([]entity.Journey, error) {
	if m.AllJourneysFunc != nil {
		return m.AllJourneysFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockProfileRepository) AllPostExperiences(ctx context.Context, email string) ([]entity.PostExperience, error) {
	if m.AllPostExperiencesFunc != nil {
		return m.AllPostExperiencesFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockProfileRepository) AllAudios(ctx context.Context, email string) ([]entity.Audio, error) {
	if m.AllAudiosFunc != nil {
		return m.AllAudiosFunc(ctx, email)
	}
	return nil, nil
}

// mockBundleCache is an in-memory implementation of the BundleCache interface.
type mockBundleCache struct {
	store map[string][]byte
	sets  int
}

func newMockBundleCache() *mockBundleCache {
	return &mockBundleCache{store: map[string][]byte{}}
}

func (m *mockBundleCache) Get(ctx context.Context, email string) ([]byte, bool) {
	b, ok := m.store[email]
	return b, ok
}

func (m *mockBundleCache) Set(ctx context.Context, email string, bundle []byte) {
	m.store[email] = bundle
	m.sets++
}

func TestProfileUsecase_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("failure: empty email", func(t *testing.T) {
		uc := NewProfileUsecase(&mockProfileRepository{}, newMockBundleCache())

		_, err := uc.GetProfile(ctx, "   ")
		if !errors.Is(err, ErrEmailRequired) {
			t.Errorf("expected ErrEmailRequired, got: %v", err)
		}
	})

	t.Run("failure: unknown user", func(t *testing.T) {
		repo := &mockProfileRepository{
			FindUserByEmailFunc: func(ctx context.Context, email string) (*authentity.User, error) {
				return nil, ErrUserNotFound
			},
		}
		uc := NewProfileUsecase(repo, newMockBundleCache())

		_, err := uc.GetProfile(ctx, "ghost@example.com")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got: %v", err)
		}
	})

	t.Run("email is normalized before lookup", func(t *testing.T) {
		var gotEmail string
		repo := &mockProfileRepository{
			FindUserByEmailFunc: func(ctx context.Context, email string) (*authentity.User, error) {
				gotEmail = email
				return &authentity.User{ID: 1, Email: email}, nil
			},
		}
		uc := NewProfileUsecase(repo, newMockBundleCache())

		_, err := uc.GetProfile(ctx, "  USER@Example.COM ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotEmail != "user@example.com" {
			t.Errorf("expected normalized email, got %q", gotEmail)
		}
	})

	t.Run("empty collections yield empty lists and null latest records", func(t *testing.T) {
		uc := NewProfileUsecase(&mockProfileRepository{}, newMockBundleCache())

		profile, err := uc.GetProfile(ctx, "user@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.Journals != nil || profile.OnboardingQuestion != nil {
			t.Error("latest records should be nil when no submissions exist")
		}
		if profile.JournalAllData == nil || profile.Dates == nil || profile.AudiosAll == nil {
			t.Error("history lists should be empty, not nil")
		}
		if len(profile.JournalAllData) != 0 {
			t.Errorf("expected empty journal history, got %d", len(profile.JournalAllData))
		}
	})

	t.Run("dates are derived from the journal history in order", func(t *testing.T) {
		repo := &mockProfileRepository{
			AllJournalsFunc: func(ctx context.Context, email string) ([]entity.Journal, error) {
				return []entity.Journal{
					{ID: 1, ExperienceDate: "2024-01-10"},
					{ID: 2, ExperienceDate: "2024-02-20"},
				}, nil
			},
		}
		uc := NewProfileUsecase(repo, newMockBundleCache())

		profile, err := uc.GetProfile(ctx, "user@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(profile.Dates) != 2 || profile.Dates[0] != "2024-01-10" || profile.Dates[1] != "2024-02-20" {
			t.Errorf("unexpected dates: %v", profile.Dates)
		}
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		cache := newMockBundleCache()
		cached, _ := json.Marshal(&Profile{
			User:  &authentity.User{ID: 1, Email: "user@example.com"},
			Dates: []string{"2024-01-10"},
		})
		cache.store["user@example.com"] = cached

		repo := &mockProfileRepository{
			FindUserByEmailFunc: func(ctx context.Context, email string) (*authentity.User, error) {
				t.Error("repository should not be touched on cache hit")
				return nil, nil
			},
		}
		uc := NewProfileUsecase(repo, cache)

		profile, err := uc.GetProfile(ctx, "user@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(profile.Dates) != 1 {
			t.Errorf("expected cached bundle, got: %+v", profile)
		}
	})

	t.Run("cache miss stores the assembled bundle", func(t *testing.T) {
		cache := newMockBundleCache()
		uc := NewProfileUsecase(&mockProfileRepository{}, cache)

		_, err := uc.GetProfile(ctx, "user@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cache.sets != 1 {
			t.Errorf("expected 1 cache write, got %d", cache.sets)
		}
	})

	t.Run("malformed cache entry falls back to assembly", func(t *testing.T) {
		cache := newMockBundleCache()
		cache.store["user@example.com"] = []byte("{not json")

		uc := NewProfileUsecase(&mockProfileRepository{}, cache)

		profile, err := uc.GetProfile(ctx, "user@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.User == nil {
			t.Error("expected freshly assembled bundle")
		}
	})

	t.Run("read failure is surfaced", func(t *testing.T) {
		repo := &mockProfileRepository{
			AllAudiosFunc: func(ctx context.Context, email string) ([]entity.Audio, error) {
				return nil, errors.New("db down")
			},
		}
		uc := NewProfileUsecase(repo, newMockBundleCache())

		if _, err := uc.GetProfile(ctx, "user@example.com"); err == nil {
			t.Error("expected error when a read fails")
		}
	})
}
