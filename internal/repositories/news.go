package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ndu/talent-platform/internal/models"
)

type NewsRepository interface {
	Create(news *models.News) error
	FindByID(id uuid.UUID) (*models.News, error)
	FindBySlug(slug string) (*models.News, error)
	FindAll(limit int) ([]models.News, error)
	Update(news *models.News) error
	Delete(id uuid.UUID) error
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(news *models.News) error {
	if err := r.db.Create(news).Error; err != nil {
		return fmt.Errorf("failed to create news: %w", err)
	}
	return nil
}

func (r *newsRepository) FindByID(id uuid.UUID) (*models.News, error) {
	var news models.News
	if err := r.db.Where("id = ?", id).First(&news).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("news %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find news: %w", err)
	}
	return &news, nil
}

func (r *newsRepository) FindBySlug(slug string) (*models.News, error) {
	var news models.News
	if err := r.db.Where("slug = ?", slug).First(&news).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("news %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find news: %w", err)
	}
	return &news, nil
}

func (r *newsRepository) FindAll(limit int) ([]models.News, error) {
	query := r.db.Model(&models.News{}).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var news []models.News
	if err := query.Find(&news).Error; err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	return news, nil
}

func (r *newsRepository) Update(news *models.News) error {
	news.UpdatedAt = time.Now()
	if err := r.db.Save(news).Error; err != nil {
		return fmt.Errorf("failed to update news: %w", err)
	}
	return nil
}

func (r *newsRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.News{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete news: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("news %s: %w", id, ErrNotFound)
	}
	return nil
}
