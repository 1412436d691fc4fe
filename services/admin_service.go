package services

import (
	"context"
	"math"
	"strings"
	"time"

	"gummy-store/models"
	"gummy-store/utils"

	"github.com/google/uuid"
)

type AdminOrderStore interface {
	List(ctx context.Context, status string, limit, offset int) ([]models.Order, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListForExport(ctx context.Context, status string) ([]models.OrderExportRow, error)
}

type AdminService struct {
	orders       AdminOrderStore
	email        string
	passwordHash string
	secret       string
	ttl          time.Duration
}

func NewAdminService(orders AdminOrderStore, email, passwordHash, secret string, ttl time.Duration) *AdminService {
	return &AdminService{
		orders:       orders,
		email:        email,
		passwordHash: passwordHash,
		secret:       secret,
		ttl:          ttl,
	}
}

func (s *AdminService) Login(req models.AdminLoginRequest) (*models.SessionResponse, error) {
	if s.email == "" || s.passwordHash == "" {
		return nil, models.ErrInvalidCredentials
	}
	if !strings.EqualFold(strings.TrimSpace(req.Email), s.email) {
		return nil, models.ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(s.passwordHash, req.Password)
	if err != nil || !valid {
		return nil, models.ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateAdminToken(s.secret, s.email, s.ttl)
	if err != nil {
		return nil, err
	}
	return &models.SessionResponse{SessionID: s.email, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AdminService) ListOrders(ctx context.Context, status string, page, limit int) ([]models.Order, models.PaginationMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	orders, total, err := s.orders.List(ctx, status, limit, (page-1)*limit)
	if err != nil {
		return nil, models.PaginationMeta{}, err
	}

	meta := models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	return orders, meta, nil
}

func (s *AdminService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return s.orders.UpdateStatus(ctx, id, status)
}

func (s *AdminService) ExportOrders(ctx context.Context, status string) ([]models.OrderExportRow, error) {
	return s.orders.ListForExport(ctx, status)
}
