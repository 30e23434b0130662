// internal/service/profile_service.go
package service

import (
	"context"
	"errors"
	"time"

	"hanyu_keep/internal/middleware"
	"hanyu_keep/internal/model"
	"hanyu_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(ctx context.Context, ownerID uuid.UUID) (*model.LearnerProfile, error)
	UpdateProfile(ctx context.Context, ownerID uuid.UUID, req *model.PutProfileRequest) (*model.LearnerProfile, error)
}

type profileService struct {
	db          *gorm.DB
	profileRepo repository.ProfileRepository
}

func NewProfileService(db *gorm.DB, profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{
		db:          db,
		profileRepo: profileRepo,
	}
}

func (s *profileService) GetProfile(ctx context.Context, ownerID uuid.UUID) (*model.LearnerProfile, error) {
	profile, err := s.profileRepo.Find(ctx, s.db, ownerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// 未設定ならデフォルト（UTC）を返す
			return &model.LearnerProfile{OwnerID: ownerID, Timezone: "UTC"}, nil
		}
		middleware.GetLogger(ctx).Error("Failed to find learner profile", "owner_id", ownerID, "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "プロフィールの取得に失敗しました。", "", err)
	}
	return profile, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, ownerID uuid.UUID, req *model.PutProfileRequest) (*model.LearnerProfile, error) {
	logger := middleware.GetLogger(ctx).With("owner_id", ownerID)

	// validator の timezone タグで検証済みだが、保存前にも確認しておく
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return nil, model.NewAppError("VALIDATION_ERROR", "有効なIANAタイムゾーン名を指定してください。", "timezone", model.ErrInvalidInput)
	}

	profile := &model.LearnerProfile{
		OwnerID:  ownerID,
		Timezone: req.Timezone,
		Email:    req.Email,
	}
	if err := s.profileRepo.Upsert(ctx, s.db, profile); err != nil {
		logger.Error("Failed to upsert learner profile", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "プロフィールの更新に失敗しました。", "", err)
	}

	logger.Info("Learner profile updated", "timezone", req.Timezone)
	return profile, nil
}

// ownerLocation はオーナーのタイムゾーンを解決します。未設定・不正ならUTC。
// 期日・暦日の計算は必ずこの結果を明示的に受け取って行います。
func ownerLocation(ctx context.Context, db *gorm.DB, profileRepo repository.ProfileRepository, ownerID uuid.UUID) *time.Location {
	profile, err := profileRepo.Find(ctx, db, ownerID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			middleware.GetLogger(ctx).Warn("Failed to load learner profile, falling back to UTC", "owner_id", ownerID, "error", err)
		}
		return time.UTC
	}
	loc, err := time.LoadLocation(profile.Timezone)
	if err != nil {
		middleware.GetLogger(ctx).Warn("Invalid timezone in profile, falling back to UTC", "owner_id", ownerID, "timezone", profile.Timezone)
		return time.UTC
	}
	return loc
}
