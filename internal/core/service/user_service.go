package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lunchvote/voting-api/internal/core/domain"
	"github.com/lunchvote/voting-api/internal/core/ports"
	"github.com/lunchvote/voting-api/internal/pkg/metrics"
)

// UserService implements the user directory. Every write drops the cached
// user listing as a whole.
type UserService struct {
	repo   ports.UserRepository
	cache  ports.UserListCache
	logger zerolog.Logger
	now    func() time.Time

	// cacheMu orders listing refills against invalidations. gen counts
	// invalidations; a refill loaded under an older gen is discarded.
	cacheMu sync.Mutex
	gen     uint64
}

func NewUserService(repo ports.UserRepository, cache ports.UserListCache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, logger: logger, now: time.Now}
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if err := validateProfile(in.Name, in.Email, in.Password, true); err != nil {
		return nil, err
	}
	roles, err := normalizeRoles(in.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        domain.NormalizeEmail(in.Email),
		PasswordHash: hash,
		Roles:        roles,
		Registered:   s.now().UTC(),
		Enabled:      in.Enabled,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.invalidate(ctx)

	s.logger.Info().Str("user_id", created.ID).Strs("roles", created.Roles).Msg("user created")
	return created, nil
}

// Register creates an enabled account with the user role.
func (s *UserService) Register(ctx context.Context, in ports.ProfileInput) (*domain.User, error) {
	return s.Create(ctx, ports.CreateUserInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Roles:    []string{domain.RoleUser},
		Enabled:  true,
	})
}

func (s *UserService) Update(ctx context.Context, in ports.UpdateUserInput) error {
	if err := validateProfile(in.Name, in.Email, in.Password, false); err != nil {
		return err
	}
	roles, err := normalizeRoles(in.Roles)
	if err != nil {
		return err
	}

	existing, err := s.Get(ctx, in.ID)
	if err != nil {
		return err
	}

	existing.Name = strings.TrimSpace(in.Name)
	existing.Email = domain.NormalizeEmail(in.Email)
	existing.Roles = roles
	existing.Enabled = in.Enabled
	if in.Password != "" {
		if existing.PasswordHash, err = hashPassword(in.Password); err != nil {
			return err
		}
	}

	return s.save(ctx, existing)
}

// UpdateProfile applies a self-service edit. The password is mandatory, as
// on registration.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ports.ProfileInput) error {
	if err := validateProfile(in.Name, in.Email, in.Password, true); err != nil {
		return err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	existing.Name = strings.TrimSpace(in.Name)
	existing.Email = domain.NormalizeEmail(in.Email)
	if existing.PasswordHash, err = hashPassword(in.Password); err != nil {
		return err
	}

	return s.save(ctx, existing)
}

func (s *UserService) SetEnabled(ctx context.Context, id string, enabled bool) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	existing.Enabled = enabled
	return s.save(ctx, existing)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user id=%s: %w", id, err)
	}
	s.invalidate(ctx)
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user id=%s: %w", id, err)
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("email must not be empty: %w", domain.ErrValidation)
	}
	email = domain.NormalizeEmail(email)
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user email=%s: %w", email, err)
	}
	return user, nil
}

// GetAll serves the listing from the cache, loading it from the repository on a miss.
// Cache failures are logged and never fail the call.
func (s *UserService) GetAll(ctx context.Context) ([]*domain.User, error) {
	users, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("user cache read failed")
	} else if ok {
		metrics.UserCacheRequestsTotal.WithLabelValues("hit").Inc()
		return users, nil
	}
	metrics.UserCacheRequestsTotal.WithLabelValues("miss").Inc()

	gen := s.generation()
	users, err = s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	s.refill(ctx, gen, users)
	return users, nil
}

func (s *UserService) generation() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.gen
}

// refill caches users unless a write invalidated the listing after gen was read.
func (s *UserService) refill(ctx context.Context, gen uint64, users []*domain.User) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.gen != gen {
		s.logger.Debug().Msg("user listing changed while loading, skipping cache refill")
		return
	}
	if err := s.cache.Set(ctx, users); err != nil {
		s.logger.Warn().Err(err).Msg("user cache write failed")
	}
}

func (s *UserService) save(ctx context.Context, user *domain.User) error {
	if _, err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user id=%s: %w", user.ID, err)
	}
	s.invalidate(ctx)
	s.logger.Info().Str("user_id", user.ID).Msg("user updated")
	return nil
}

func (s *UserService) invalidate(ctx context.Context) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.gen++
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Error().Err(err).Msg("user cache invalidation failed")
	}
}

// validateProfile only guards against blank fields; format rules live on
// the request schemas.
func validateProfile(name, email, password string, passwordRequired bool) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	case strings.TrimSpace(email) == "":
		return fmt.Errorf("email is required: %w", domain.ErrValidation)
	case passwordRequired && password == "":
		return fmt.Errorf("password is required: %w", domain.ErrValidation)
	}
	return nil
}

func normalizeRoles(roles []string) ([]string, error) {
	if len(roles) == 0 {
		return []string{domain.RoleUser}, nil
	}
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.ToUpper(strings.TrimSpace(r))
		if !domain.ValidRole(r) {
			return nil, fmt.Errorf("unknown role %q: %w", r, domain.ErrValidation)
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
