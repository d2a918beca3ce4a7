// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/apperr"
	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/wifi-access-portal/internal/lib/password"
	"github.com/magabrotheeeer/wifi-access-portal/internal/models"
	"github.com/magabrotheeeer/wifi-access-portal/internal/storage/repository"
)

// Минимальная длина пароля при регистрации.
const minPasswordLen = 6

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// UpdateUser обновляет профиль пользователя.
	UpdateUser(ctx context.Context, userUID, username, email string) (int, error)
	// DeleteUser удаляет пользователя.
	DeleteUser(ctx context.Context, userUID string) (int, error)
	// CountSubscriptionsByUser возвращает число подписок пользователя.
	CountSubscriptionsByUser(ctx context.Context, userUID string) (int, error)
}

// AuthService отвечает за регистрацию, авторизацию и управление профилем.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Email нормализуется к нижнему регистру, поэтому дубликат с другим
// регистром также отклоняется.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (*models.User, error) {
	if len(rawPassword) < minPasswordLen {
		return nil, apperr.New(apperr.KindValidation, "password must be at least 6 characters long")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, apperr.New(apperr.KindValidation, "email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to register user", err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to register user", err)
	}
	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to register user", err)
	}
	user.UID = uid
	return &user, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
// Отсутствие пользователя и неверный пароль намеренно неразличимы
// для вызывающего: оба случая дают одну и ту же ошибку авторизации.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", apperr.New(apperr.KindUnauthorized, "invalid email or password")
		}
		return nil, "", apperr.Wrap(apperr.KindInternal, "failed to login", err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", apperr.New(apperr.KindUnauthorized, "invalid email or password")
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.UID)
	if err != nil {
		return nil, "", apperr.Wrap(apperr.KindInternal, "failed to login", err)
	}
	return user, token, nil
}

// UpdateProfile обновляет username и email пользователя.
func (s *AuthService) UpdateProfile(ctx context.Context, userUID, username, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	count, err := s.users.UpdateUser(ctx, userUID, username, email)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update profile", err)
	}
	if count == 0 {
		return nil, apperr.New(apperr.KindNotFound, "user not found")
	}
	return s.users.GetUser(ctx, userUID)
}

// Delete удаляет пользователя. Пользователь с историей подписок
// не удаляется: правило каскада зафиксировано как запрет, а не удаление.
func (s *AuthService) Delete(ctx context.Context, userUID string) error {
	subs, err := s.users.CountSubscriptionsByUser(ctx, userUID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete user", err)
	}
	if subs > 0 {
		return apperr.New(apperr.KindConflict, "user has subscription history and cannot be deleted")
	}
	count, err := s.users.DeleteUser(ctx, userUID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete user", err)
	}
	if count == 0 {
		return apperr.New(apperr.KindNotFound, "user not found")
	}
	return nil
}
