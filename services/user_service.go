package services

import (
	"context"
	"errors"
	"strings"

	"lovelens.link/configs/configslog"
	"lovelens.link/models"
	"lovelens.link/pkg/queryparams"
	"lovelens.link/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceError özel servis hataları
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUserNotFound           UserServiceError = "kullanıcı bulunamadı"
	ErrUserCreationFailed     UserServiceError = "kullanıcı oluşturulamadı"
	ErrUserEmailTaken         UserServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrUserInvalidCredentials UserServiceError = "e-posta veya şifre hatalı"
	ErrUserInactive           UserServiceError = "hesabınız pasif durumda"
	ErrUserPasswordTooShort   UserServiceError = "şifre en az 8 karakter olmalı"
	ErrUserHashingFailed      UserServiceError = "şifre oluşturulamadı"
)

// IUserService kullanıcı işlemleri için arayüz.
type IUserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	GetAllUsersPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetUserCount(ctx context.Context) (int64, error)
}

// UserService IUserService arayüzünü uygular.
type UserService struct {
	repo repositories.IUserRepository
}

// NewUserService yeni bir UserService örneği oluşturur.
func NewUserService() IUserService {
	return &UserService{repo: repositories.NewUserRepository()}
}

// Register yeni bir çift hesabı oluşturur.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, ErrUserCreationFailed
	}
	if len(password) < 8 {
		return nil, ErrUserPasswordTooShort
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrUserEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrUserHashingFailed
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		IsSystem: false,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		configslog.Log.Error("Register: kullanıcı oluşturulamadı", zap.String("email", email), zap.Error(err))
		return nil, ErrUserCreationFailed
	}

	configslog.SLog.Infof("Kullanıcı kaydı tamamlandı: ID %d (%s)", user.ID, user.Email)
	return &user, nil
}

// Authenticate e-posta/şifre doğrulaması yapar.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrUserInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

// GetUserByID kullanıcıyı ID ile getirir.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdatePassword mevcut şifreyi doğrulayıp yenisini kaydeder.
func (s *UserService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return ErrUserInvalidCredentials
	}
	if len(newPassword) < 8 {
		return ErrUserPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrUserHashingFailed
	}
	user.Password = string(hashed)
	return s.repo.Update(context.WithValue(ctx, models.CtxUserIDKey, userID), user)
}

// GetAllUsersPaginated tüm kullanıcıları sayfalayarak getirir (Dashboard).
func (s *UserService) GetAllUsersPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	users, totalCount, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: users,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// GetUserCount toplam kullanıcı sayısını döndürür.
func (s *UserService) GetUserCount(ctx context.Context) (int64, error) {
	return s.repo.CountAll(ctx)
}

var _ IUserService = (*UserService)(nil)
