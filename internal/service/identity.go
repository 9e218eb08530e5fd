package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/auth"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/repository"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/validation"
)

// ProfileImage is an uploaded image attached to a registration.
type ProfileImage struct {
	Filename    string
	ContentType string
	Body        []byte
}

type Session struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"user"`
}

type IdentityService struct {
	users     *repository.UserRepo
	dams      *repository.DamRepo
	overviews *overviewLoader
	tokens    *auth.TokenManager
	images    ImageStore
}

func (s *IdentityService) session(u *domain.User) (*Session, error) {
	if s.tokens == nil {
		return nil, apperr.Internal(errors.New("token manager not configured"))
	}
	access, err := s.tokens.AccessToken(u.ID, u.Role)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	refresh, err := s.tokens.RefreshToken(u.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &Session{Token: access, RefreshToken: refresh, User: u}, nil
}

func (s *IdentityService) Register(ctx context.Context, in domain.RegisterInput, image *ProfileImage) (*Session, error) {
	for _, v := range []string{in.Name, in.Email, in.Password, in.Mobile, in.Place, in.State} {
		if strings.TrimSpace(v) == "" {
			return nil, apperr.Validation("Please fill all required fields")
		}
	}
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperr.Validation("User already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internal(fmt.Errorf("look up user: %w", err))
	}

	role, err := s.grantedRole(ctx, domain.Role(in.Role))
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: hash,
		Mobile:       in.Mobile,
		Place:        in.Place,
		State:        in.State,
		Role:         role,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Validation("User already exists")
		}
		return nil, apperr.Internal(fmt.Errorf("create user: %w", err))
	}

	if image != nil && len(image.Body) > 0 {
		s.attachImage(ctx, u, image)
	}
	return s.session(u)
}

// grantedRole resolves the role of a self-registering user. Admin is only
// handed out while no account exists yet; later requests get the user role.
func (s *IdentityService) grantedRole(ctx context.Context, requested domain.Role) (domain.Role, error) {
	switch requested {
	case "":
		return domain.RoleUser, nil
	case domain.RoleAdmin:
	default:
		return requested, nil
	}
	n, err := s.users.Count(ctx)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("count users: %w", err))
	}
	if n > 0 {
		log.Warn().Int("users", n).Msg("self-registration asked for admin role, granting user")
		return domain.RoleUser, nil
	}
	return domain.RoleAdmin, nil
}

// attachImage stores the profile image when an image store is configured.
// Registration succeeds even if the upload fails.
func (s *IdentityService) attachImage(ctx context.Context, u *domain.User, image *ProfileImage) {
	if s.images == nil {
		log.Debug().Str("user_id", u.ID).Msg("profile image dropped, no image store configured")
		return
	}
	url, err := s.images.UploadProfileImage(ctx, u.ID, image.Filename, image.ContentType, image.Body)
	if err != nil {
		log.Warn().Err(err).Str("user_id", u.ID).Msg("upload profile image")
		return
	}
	if err := s.users.SetProfileImage(ctx, u.ID, url); err != nil {
		log.Warn().Err(err).Str("user_id", u.ID).Msg("save profile image url")
		return
	}
	u.ProfileImage = &url
}

func (s *IdentityService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.InvalidCredentials("Invalid credentials")
		}
		return nil, apperr.Internal(fmt.Errorf("look up user: %w", err))
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, apperr.InvalidCredentials("Invalid credentials")
	}
	return s.session(u)
}

// Refresh exchanges a refresh token for a new access token carrying the
// user's current role.
func (s *IdentityService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", apperr.Unauthenticated("No refresh token provided")
	}
	if s.tokens == nil {
		return "", apperr.Internal(errors.New("token manager not configured"))
	}
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return "", apperr.Forbidden("Invalid or expired refresh token")
	}
	u, err := s.users.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperr.Forbidden("Invalid or expired refresh token")
		}
		return "", apperr.Internal(fmt.Errorf("load user: %w", err))
	}
	access, err := s.tokens.AccessToken(u.ID, u.Role)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return access, nil
}

// Authenticate resolves an access token to its claims.
func (s *IdentityService) Authenticate(token string) (*auth.AccessClaims, error) {
	if s.tokens == nil {
		return nil, apperr.Internal(errors.New("token manager not configured"))
	}
	claims, err := s.tokens.ParseAccess(token)
	if err != nil {
		return nil, apperr.Unauthenticated("Not authorized, token failed")
	}
	return claims, nil
}

func (s *IdentityService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "User not found", "load user")
	}
	return u, nil
}

func (s *IdentityService) SavedDams(ctx context.Context, userID string) ([]domain.DamOverview, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, storeErr(err, "User not found", "load user")
	}
	ids, err := s.users.SavedDamIDs(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list saved dams: %w", err))
	}
	dams, err := s.dams.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("load saved dams: %w", err))
	}
	return s.overviews.load(ctx, dams)
}

// ToggleSavedDam bookmarks the dam when absent and removes it when present.
// It returns the resulting saved dam list.
func (s *IdentityService) ToggleSavedDam(ctx context.Context, userID, damID string) ([]domain.Dam, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, storeErr(err, "User not found", "load user")
	}
	if _, err := s.dams.Get(ctx, damID); err != nil {
		return nil, storeErr(err, "Dam not found", "load dam")
	}

	saved, err := s.users.HasSavedDam(ctx, userID, damID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("check saved dam: %w", err))
	}
	if saved {
		err = s.users.RemoveSavedDam(ctx, userID, damID)
	} else {
		err = s.users.AddSavedDam(ctx, userID, damID)
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) && !errors.Is(err, repository.ErrDuplicate) {
		return nil, apperr.Internal(fmt.Errorf("toggle saved dam: %w", err))
	}

	ids, err := s.users.SavedDamIDs(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list saved dams: %w", err))
	}
	dams, err := s.dams.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("load saved dams: %w", err))
	}
	return dams, nil
}
