package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"collex.backend/internal/domain/entities"
	domainerrors "collex.backend/internal/domain/errors"
	domainRepos "collex.backend/internal/domain/repositories"
	"collex.backend/internal/infrastructure/models"
)

// ProductRepository implements listing data operations
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create creates a new listing with its ordered images
func (r *ProductRepository) Create(ctx context.Context, product *entities.Product) error {
	m := productToModel(product)
	for i, url := range product.Images {
		m.Images = append(m.Images, models.ProductImage{
			ID:       uuid.New(),
			URL:      url,
			Position: i,
		})
	}
	if err := getDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	product.ID = m.ID
	return nil
}

// GetByID gets a product. With the lock flag on ctx the row is read FOR UPDATE.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	var m models.Product
	q := lockScope(ctx, getDB(ctx, r.db).WithContext(ctx))
	if err := q.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	if err := getDB(ctx, r.db).WithContext(ctx).
		Where("product_id = ?", id).Order("position ASC").Find(&m.Images).Error; err != nil {
		return nil, err
	}
	return productToEntity(&m), nil
}

// Update rewrites the content fields of a listing and replaces its images
func (r *ProductRepository) Update(ctx context.Context, product *entities.Product) error {
	db := getDB(ctx, r.db).WithContext(ctx)

	updates := map[string]interface{}{
		"title":         product.Title,
		"description":   product.Description,
		"category":      string(product.Category),
		"condition":     string(product.Condition),
		"mrp":           product.MRP,
		"price":         product.Price,
		"age_in_months": product.AgeInMonths,
		"updated_at":    time.Now(),
	}

	result := db.Model(&models.Product{}).Where("id = ?", product.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}

	if err := db.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
		return err
	}
	for i, url := range product.Images {
		img := models.ProductImage{
			ID:        uuid.New(),
			ProductID: product.ID,
			URL:       url,
			Position:  i,
		}
		if err := db.Create(&img).Error; err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus applies a moderation outcome. Approval clears the
// rejection fields; rejection stamps the reason.
func (r *ProductRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ProductStatus, reason string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": now,
	}
	switch status {
	case entities.ProductStatusApproved:
		updates["approved_at"] = now
		updates["rejected_at"] = nil
		updates["rejection_reason"] = nil
	case entities.ProductStatusRejected:
		updates["rejected_at"] = now
		updates["rejection_reason"] = reason
	}

	result := getDB(ctx, r.db).WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns listings matching the filter, newest first
func (r *ProductRepository) List(ctx context.Context, filter domainRepos.ProductFilter, limit, offset int) ([]*entities.Product, int64, error) {
	db := getDB(ctx, r.db).WithContext(ctx).Model(&models.Product{})

	if filter.Status != "" {
		db = db.Where("status = ?", string(filter.Status))
	}
	if filter.Category != "" {
		db = db.Where("category = ?", string(filter.Category))
	}
	if filter.SellerID != uuid.Nil {
		db = db.Where("seller_id = ?", filter.SellerID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit).Offset(offset)
	}

	var productModels []models.Product
	if err := db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Find(&productModels).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*entities.Product, 0, len(productModels))
	for i := range productModels {
		products = append(products, productToEntity(&productModels[i]))
	}
	return products, total, nil
}

// SoftDelete soft deletes a listing (seller withdrawal)
func (r *ProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := getDB(ctx, r.db).WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func productToModel(p *entities.Product) *models.Product {
	return &models.Product{
		ID:              p.ID,
		SellerID:        p.SellerID,
		Title:           p.Title,
		Description:     p.Description,
		Category:        string(p.Category),
		Condition:       string(p.Condition),
		MRP:             p.MRP,
		Price:           p.Price,
		AgeInMonths:     p.AgeInMonths,
		Status:          string(p.Status),
		RejectionReason: p.RejectionReason.Ptr(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		ApprovedAt:      p.ApprovedAt,
		RejectedAt:      p.RejectedAt,
	}
}

func productToEntity(m *models.Product) *entities.Product {
	images := make([]string, 0, len(m.Images))
	for _, img := range m.Images {
		images = append(images, img.URL)
	}
	return &entities.Product{
		ID:              m.ID,
		SellerID:        m.SellerID,
		Title:           m.Title,
		Description:     m.Description,
		Category:        entities.ProductCategory(m.Category),
		Condition:       entities.ProductCondition(m.Condition),
		MRP:             m.MRP,
		Price:           m.Price,
		AgeInMonths:     m.AgeInMonths,
		Images:          images,
		Status:          entities.ProductStatus(m.Status),
		RejectionReason: null.StringFromPtr(m.RejectionReason),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		ApprovedAt:      m.ApprovedAt,
		RejectedAt:      m.RejectedAt,
	}
}
