package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/greeklink/greeklink/internal/app/models"
	appRepos "github.com/greeklink/greeklink/internal/app/repositories"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
	"github.com/greeklink/greeklink/internal/pkg/auth"
)

// CreateDefaultData creates the default chapter and admin account if they
// don't exist. Collected errors are returned without stopping the process.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	chapterRepo := appRepos.NewChapterRepository(dbPool)
	profileRepo := appRepos.NewProfileRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (chapters/admin)...")
	var finalErr error

	// --- Default Chapter --- //
	defaultChapter := &appModels.Chapter{
		Name:    "Alpha Chapter",
		Letters: "ΑΑ",
		School:  "State University",
		State:   "NY",
	}
	chapterID, err := chapterRepo.Create(ctx, defaultChapter)
	if err != nil && !errors.Is(err, apperrors.ErrChapterAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating default chapter")
		finalErr = errors.Join(finalErr, err)
	} else if errors.Is(err, apperrors.ErrChapterAlreadyExists) {
		existing, errGet := chapterRepo.GetByName(ctx, defaultChapter.Name)
		if errGet != nil {
			lgr.Error().Err(errGet).Msg("Error looking up existing default chapter")
			finalErr = errors.Join(finalErr, errGet)
		} else {
			chapterID = existing.ID
		}
	}

	// --- Default Admin Account --- //
	const adminEmail = "admin@greeklink.app"
	_, err = profileRepo.GetByEmail(ctx, adminEmail)
	switch {
	case err == nil:
		lgr.Info().Msg("Admin account already exists, skipping creation")
	case errors.Is(err, apperrors.ErrProfileNotFound):
		lgr.Info().Msg("Creating default admin account...")

		hashedPassword, hashErr := auth.HashPassword("Admin123!")
		if hashErr != nil {
			lgr.Error().Err(hashErr).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, hashErr)
			break
		}

		admin := &appModels.Profile{
			Email:     adminEmail,
			Password:  hashedPassword,
			FirstName: "System",
			LastName:  "Administrator",
			Role:      appModels.RoleAdmin,
			IsActive:  true,
		}
		if chapterID > 0 {
			admin.ChapterID = &chapterID
		}

		adminID, createErr := profileRepo.Create(ctx, admin)
		if createErr != nil {
			lgr.Error().Err(createErr).Msg("Error creating admin account")
			finalErr = errors.Join(finalErr, createErr)
		} else {
			lgr.Info().Int64("adminID", adminID).Msg("Default admin account created successfully")
		}
	default:
		lgr.Error().Err(err).Msg("Error checking if admin account exists")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
