package portfolio

import (
	"context"
	"fmt"

	"github.com/zulandar/portfolio/internal/models"
)

// ListSponsors returns the registered areas.
func (s *Service) ListSponsors(ctx context.Context) ([]models.Sponsor, error) {
	sp, err := s.repo.ListSponsors(ctx)
	if err != nil {
		return nil, fmt.Errorf("portfolio: list sponsors: %w", err)
	}
	return sp, nil
}

// AddSponsor registers an area. Adding an existing area is a no-op.
func (s *Service) AddSponsor(ctx context.Context, name string) (models.Sponsor, error) {
	if err := required("name", name); err != nil {
		return models.Sponsor{}, err
	}
	sp := models.Sponsor{Name: name}
	if err := s.repo.CreateSponsor(ctx, &sp); err != nil {
		return models.Sponsor{}, fmt.Errorf("portfolio: add sponsor: %w", err)
	}
	return sp, nil
}

// ListTeam returns every team member.
func (s *Service) ListTeam(ctx context.Context) ([]models.TeamMember, error) {
	members, err := s.repo.ListTeamMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("portfolio: list team: %w", err)
	}
	return members, nil
}

// AddTeamMember registers a person.
func (s *Service) AddTeamMember(ctx context.Context, m models.TeamMember) (models.TeamMember, error) {
	if err := required("name", m.Name); err != nil {
		return models.TeamMember{}, err
	}
	m.ID = 0
	if err := s.repo.CreateTeamMember(ctx, &m); err != nil {
		return models.TeamMember{}, fmt.Errorf("portfolio: add team member: %w", err)
	}
	return m, nil
}
