package usecase

import (
	"context"
	"errors"
	"maps"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/loginflow/services/profile-service/internal/model"
	"github.com/vasapolrittideah/loginflow/services/profile-service/internal/repository"
)

// ProfileUsecase defines the interface for profile-related use cases.
type ProfileUsecase interface {
	// GetProfile returns the owner's profile, or nil when none exists.
	GetProfile(ctx context.Context, ownerID string) (*model.Profile, error)

	// CreateProfile returns the owner's profile, creating it with the default
	// data when absent. created reports whether this call created it.
	CreateProfile(ctx context.Context, params CreateProfileParams) (profile *model.Profile, created bool, err error)
}

// CreateProfileParams defines the parameters for profile creation.
type CreateProfileParams struct {
	OwnerID string
	Email   string
}

var ErrMissingOwner = errors.New("profile owner is required")

// WelcomeNotifier is told about every newly created profile.
type WelcomeNotifier interface {
	NotifyWelcome(ctx context.Context, profile *model.Profile) error
}

type profileUsecase struct {
	logger      *zerolog.Logger
	profileRepo repository.ProfileRepository
	defaultData map[string]any
	notifier    WelcomeNotifier
}

// NewProfileUsecase creates a ProfileUsecase. notifier may be nil.
func NewProfileUsecase(
	logger *zerolog.Logger,
	profileRepo repository.ProfileRepository,
	defaultData map[string]any,
	notifier WelcomeNotifier,
) ProfileUsecase {
	return &profileUsecase{
		logger:      logger,
		profileRepo: profileRepo,
		defaultData: defaultData,
		notifier:    notifier,
	}
}

func (u *profileUsecase) GetProfile(ctx context.Context, ownerID string) (*model.Profile, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}

	profile, err := u.profileRepo.GetProfileByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, err
	}

	return profile, nil
}

func (u *profileUsecase) CreateProfile(
	ctx context.Context,
	params CreateProfileParams,
) (*model.Profile, bool, error) {
	if params.OwnerID == "" {
		return nil, false, ErrMissingOwner
	}

	profile, created, err := u.profileRepo.CreateProfileIfAbsent(ctx, &model.Profile{
		OwnerID: params.OwnerID,
		Email:   params.Email,
		Data:    maps.Clone(u.defaultData),
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		u.logger.Info().Str("owner_id", profile.OwnerID).Msg("profile created")

		if u.notifier != nil {
			if err := u.notifier.NotifyWelcome(ctx, profile); err != nil {
				u.logger.Warn().Err(err).Str("owner_id", profile.OwnerID).Msg("failed to send welcome notification")
			}
		}
	}

	return profile, created, nil
}
