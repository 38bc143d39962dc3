package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/lunchvote/voting-api/internal/core/domain"
	"github.com/lunchvote/voting-api/internal/core/ports"
	"github.com/lunchvote/voting-api/internal/pkg/metrics"
)

// VotingConfig controls when votes are accepted.
type VotingConfig struct {
	Cutoff domain.Cutoff
	// Location is the time zone "today" and the cutoff are evaluated in. Defaults to UTC.
	Location *time.Location
	// Clock defaults to time.Now.
	Clock func() time.Time
}

type VoteService struct {
	repo        ports.VoteRepository
	restaurants ports.RestaurantRepository
	users       ports.UserRepository
	dispatcher  ports.VoteEventDispatcher
	cutoff      domain.Cutoff
	loc         *time.Location
	clock       func() time.Time
	logger      zerolog.Logger
}

// NewVoteService returns a VoteService. Only existing, enabled users found
// in users may vote. dispatcher may be nil, in which case no vote events
// are emitted.
func NewVoteService(
	repo ports.VoteRepository,
	restaurants ports.RestaurantRepository,
	users ports.UserRepository,
	dispatcher ports.VoteEventDispatcher,
	cfg VotingConfig,
	logger zerolog.Logger,
) *VoteService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &VoteService{
		repo:        repo,
		restaurants: restaurants,
		users:       users,
		dispatcher:  dispatcher,
		cutoff:      cfg.Cutoff,
		loc:         cfg.Location,
		clock:       cfg.Clock,
		logger:      logger,
	}
}

// Cast creates or overwrites today's vote of userID.
func (s *VoteService) Cast(ctx context.Context, userID, restaurantID string) (*ports.CastResult, error) {
	now := s.clock().In(s.loc)
	if !s.cutoff.IsOpen(now) {
		metrics.VotesRejectedTotal.Inc()
		return nil, fmt.Errorf("voting closes at %s: %w", s.cutoff, domain.ErrVotingTimeIsOut)
	}

	voter, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("voter id=%s: %w", userID, err)
	}
	if !voter.Enabled {
		return nil, fmt.Errorf("voter id=%s is disabled: %w", userID, domain.ErrNotFound)
	}

	if _, err := s.restaurants.FindByID(ctx, restaurantID); err != nil {
		return nil, fmt.Errorf("restaurant id=%s: %w", restaurantID, err)
	}

	today := domain.DateOf(now)
	existing, err := s.repo.FindByUserAndDate(ctx, userID, today)
	switch {
	case err == nil:
		return s.change(ctx, existing, restaurantID, now)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("find vote: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.Vote{
		UserID:       userID,
		RestaurantID: restaurantID,
		Date:         today,
		Time:         now.UTC(),
	})
	if errors.Is(err, domain.ErrDataConflict) {
		// A concurrent request of the same user won the insert; overwrite it instead.
		existing, ferr := s.repo.FindByUserAndDate(ctx, userID, today)
		if ferr != nil {
			return nil, fmt.Errorf("find vote after conflict: %w", ferr)
		}
		return s.change(ctx, existing, restaurantID, now)
	}
	if err != nil {
		return nil, fmt.Errorf("create vote: %w", err)
	}

	s.emit(ports.VoteEventCast, created)
	metrics.VotesCastTotal.WithLabelValues("created").Inc()
	s.logger.Info().
		Str("user_id", userID).
		Str("restaurant_id", restaurantID).
		Str("date", domain.FormatDate(today)).
		Msg("vote cast")
	return &ports.CastResult{Vote: created}, nil
}

func (s *VoteService) change(ctx context.Context, v *domain.Vote, restaurantID string, now time.Time) (*ports.CastResult, error) {
	previous := v.RestaurantID
	v.RestaurantID = restaurantID
	v.Time = now.UTC()
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, fmt.Errorf("update vote id=%s: %w", v.ID, err)
	}

	s.emit(ports.VoteEventChanged, v)
	metrics.VotesCastTotal.WithLabelValues("changed").Inc()
	s.logger.Info().
		Str("user_id", v.UserID).
		Str("from_restaurant_id", previous).
		Str("restaurant_id", restaurantID).
		Str("date", domain.FormatDate(v.Date)).
		Msg("vote changed")
	return &ports.CastResult{Vote: v, Changed: true}, nil
}

func (s *VoteService) emit(eventType string, v *domain.Vote) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Enqueue(ports.VoteEvent{
		Type:         eventType,
		VoteID:       v.ID,
		UserID:       v.UserID,
		RestaurantID: v.RestaurantID,
		Date:         domain.FormatDate(v.Date),
		Time:         v.Time,
	})
}

func (s *VoteService) Get(ctx context.Context, id, userID string) (*domain.Vote, error) {
	v, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("vote id=%s: %w", id, err)
	}
	return v, nil
}

func (s *VoteService) GetForUser(ctx context.Context, userID string, date time.Time) (*domain.Vote, error) {
	v, err := s.repo.FindByUserAndDate(ctx, userID, domain.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("vote of user=%s on %s: %w", userID, domain.FormatDate(date), err)
	}
	return v, nil
}

func (s *VoteService) GetAllForDate(ctx context.Context, date time.Time) ([]*domain.Vote, error) {
	return s.repo.ListByDate(ctx, domain.DateOf(date))
}

// Results returns the per-restaurant tally for date, most voted first and
// ties broken by restaurant name.
func (s *VoteService) Results(ctx context.Context, date time.Time) ([]domain.VoteResult, error) {
	counts, err := s.repo.CountByDate(ctx, domain.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}
	if len(counts) == 0 {
		return []domain.VoteResult{}, nil
	}

	restaurants, err := s.restaurants.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	names := make(map[string]string, len(restaurants))
	for _, r := range restaurants {
		names[r.ID] = r.Name
	}
	for i := range counts {
		counts[i].RestaurantName = names[counts[i].RestaurantID]
	}
	sortResults(counts)
	return counts, nil
}

// Today returns the current date in the voting time zone.
func (s *VoteService) Today() time.Time {
	return domain.DateOf(s.clock().In(s.loc))
}

func sortResults(rs []domain.VoteResult) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Votes != rs[j].Votes {
			return rs[i].Votes > rs[j].Votes
		}
		return rs[i].RestaurantName < rs[j].RestaurantName
	})
}
