package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"collex.backend/internal/domain/entities"
	domainerrors "collex.backend/internal/domain/errors"
	"collex.backend/internal/domain/repositories"
	"collex.backend/internal/interfaces/http/middleware"
	"collex.backend/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

type userRepoStub struct {
	getByID    func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	getByEmail func(ctx context.Context, email string) (*entities.User, error)
	create     func(ctx context.Context, user *entities.User) error
	setActive  func(ctx context.Context, id uuid.UUID, active bool) error
}

func (s *userRepoStub) Create(ctx context.Context, user *entities.User) error {
	if s.create != nil {
		return s.create(ctx, user)
	}
	return nil
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if s.getByEmail != nil {
		return s.getByEmail(ctx, email)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) Update(context.Context, *entities.User) error            { return nil }
func (s *userRepoStub) UpdatePassword(context.Context, uuid.UUID, string) error { return nil }
func (s *userRepoStub) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if s.setActive != nil {
		return s.setActive(ctx, id, active)
	}
	return nil
}
func (s *userRepoStub) SoftDelete(context.Context, uuid.UUID) error { return nil }

type productRepoStub struct {
	create       func(ctx context.Context, product *entities.Product) error
	getByID      func(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	updateStatus func(ctx context.Context, id uuid.UUID, status entities.ProductStatus, reason string) error
	list         func(ctx context.Context, filter repositories.ProductFilter, limit, offset int) ([]*entities.Product, int64, error)
	softDelete   func(ctx context.Context, id uuid.UUID) error
}

func (s *productRepoStub) Create(ctx context.Context, product *entities.Product) error {
	if s.create != nil {
		return s.create(ctx, product)
	}
	return nil
}

func (s *productRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *productRepoStub) Update(context.Context, *entities.Product) error { return nil }

func (s *productRepoStub) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ProductStatus, reason string) error {
	if s.updateStatus != nil {
		return s.updateStatus(ctx, id, status, reason)
	}
	return nil
}

func (s *productRepoStub) List(ctx context.Context, filter repositories.ProductFilter, limit, offset int) ([]*entities.Product, int64, error) {
	if s.list != nil {
		return s.list(ctx, filter, limit, offset)
	}
	return []*entities.Product{}, 0, nil
}

func (s *productRepoStub) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if s.softDelete != nil {
		return s.softDelete(ctx, id)
	}
	return nil
}

type orderRepoStub struct {
	create         func(ctx context.Context, order *entities.Order) error
	getByID        func(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	updateIfStatus func(ctx context.Context, order *entities.Order, expected entities.OrderStatus) error
	countActive    func(ctx context.Context, productID uuid.UUID) (int64, error)
	list           func(ctx context.Context, filter repositories.OrderFilter, limit, offset int) ([]*entities.Order, int64, error)
}

func (s *orderRepoStub) Create(ctx context.Context, order *entities.Order) error {
	if s.create != nil {
		return s.create(ctx, order)
	}
	return nil
}

func (s *orderRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	if s.getByID != nil {
		return s.getByID(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *orderRepoStub) UpdateIfStatus(ctx context.Context, order *entities.Order, expected entities.OrderStatus) error {
	if s.updateIfStatus != nil {
		return s.updateIfStatus(ctx, order, expected)
	}
	return nil
}

func (s *orderRepoStub) CountActiveByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	if s.countActive != nil {
		return s.countActive(ctx, productID)
	}
	return 0, nil
}

func (s *orderRepoStub) List(ctx context.Context, filter repositories.OrderFilter, limit, offset int) ([]*entities.Order, int64, error) {
	if s.list != nil {
		return s.list(ctx, filter, limit, offset)
	}
	return []*entities.Order{}, 0, nil
}

type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
func (uowStub) WithLock(ctx context.Context) context.Context                     { return ctx }

// asUser injects an authenticated identity the way the auth middleware does.
func asUser(id uuid.UUID, role entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id)
		c.Set(middleware.UserRoleKey, string(role))
		c.Next()
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
