package services

import (
	"errors"
	"strings"

	"github.com/keeptrack-dev/keeptrack/internal/apperr"
	"github.com/keeptrack-dev/keeptrack/internal/models"
	"github.com/keeptrack-dev/keeptrack/internal/types"
	"gorm.io/gorm"
)

// AssetService is the ownership boundary for assets: every query it runs is
// scoped by the owning user's id, so another user's assets are
// indistinguishable from assets that do not exist.
type AssetService struct {
	db *gorm.DB
}

func NewAssetService(db *gorm.DB) *AssetService {
	return &AssetService{db: db}
}

type AssetInput struct {
	Name        string
	Description string
}

type AssetPatch struct {
	Name        *string
	Description *string
}

func (s *AssetService) Create(userID uint, input AssetInput) (*types.AssetResponse, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperr.Validation("Asset name is required")
	}

	asset := models.Asset{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
	}

	if err := s.db.Create(&asset).Error; err != nil {
		return nil, apperr.Internal("Failed to create asset", err)
	}

	return assetResponse(&asset), nil
}

// GetByID returns (nil, nil) when no asset matches (id, userID); the handler
// decides what a miss means.
func (s *AssetService) GetByID(id, userID uint) (*types.AssetResponse, error) {
	asset, err := s.ownedAsset(id, userID)

	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return assetResponse(asset), nil
}

func (s *AssetService) List(userID uint) ([]types.AssetResponse, error) {
	var assets []models.Asset

	if err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&assets).Error; err != nil {
		return nil, apperr.Internal("Failed to list assets", err)
	}

	response := make([]types.AssetResponse, 0, len(assets))

	for i := range assets {
		response = append(response, *assetResponse(&assets[i]))
	}

	return response, nil
}

// Update re-checks ownership, then applies only the supplied fields. The
// UPDATE itself still carries the ownership predicate, so a concurrent delete
// between check and write degrades to zero affected rows.
func (s *AssetService) Update(id, userID uint, patch AssetPatch) (*types.AssetResponse, error) {
	asset, err := s.ownedAsset(id, userID)

	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, apperr.Validation("Asset name cannot be empty")
		}
		updates["name"] = *patch.Name
	}

	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) == 0 {
		return assetResponse(asset), nil
	}

	err = s.db.Model(&models.Asset{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates).Error

	if err != nil {
		return nil, apperr.Internal("Failed to update asset", err)
	}

	asset, err = s.ownedAsset(id, userID)

	if err != nil {
		return nil, err
	}

	return assetResponse(asset), nil
}

// Delete removes the asset; the store's cascade removes its maintenance
// records.
func (s *AssetService) Delete(id, userID uint) error {
	if _, err := s.ownedAsset(id, userID); err != nil {
		return err
	}

	err := s.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Asset{}).Error

	if err != nil {
		return apperr.Internal("Failed to delete asset", err)
	}

	return nil
}

func (s *AssetService) ownedAsset(id, userID uint) (*models.Asset, error) {
	var asset models.Asset

	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&asset).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Asset not found")
		}
		return nil, apperr.Internal("Failed to fetch asset", err)
	}

	return &asset, nil
}

func assetResponse(asset *models.Asset) *types.AssetResponse {
	return &types.AssetResponse{
		ID:          asset.ID,
		Name:        asset.Name,
		Description: asset.Description,
		CreatedAt:   asset.CreatedAt,
		UpdatedAt:   asset.UpdatedAt,
	}
}
