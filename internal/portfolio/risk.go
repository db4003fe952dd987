package portfolio

import (
	"context"
	"fmt"

	"github.com/zulandar/portfolio/internal/models"
)

// NewRisk is the input for AddRisk.
type NewRisk struct {
	Description    string `json:"description"`
	Probability    string `json:"probability"`
	Impact         string `json:"impact"`
	MitigationPlan string `json:"mitigation_plan"`
	Owner          string `json:"owner"`
}

// AddRisk logs an active risk against a project.
func (s *Service) AddRisk(ctx context.Context, projectID uint, in NewRisk) (models.Risk, error) {
	if err := required("description", in.Description); err != nil {
		return models.Risk{}, err
	}
	if _, err := s.repo.GetProject(ctx, projectID); err != nil {
		return models.Risk{}, fmt.Errorf("portfolio: add risk: %w", err)
	}
	r := models.Risk{
		ProjectID:      projectID,
		Description:    in.Description,
		Probability:    in.Probability,
		Impact:         in.Impact,
		MitigationPlan: in.MitigationPlan,
		Owner:          in.Owner,
		Status:         models.RiskActive,
	}
	if err := s.repo.CreateRisk(ctx, &r); err != nil {
		return models.Risk{}, fmt.Errorf("portfolio: add risk: %w", err)
	}
	return r, nil
}

// DeleteRisk removes a risk.
func (s *Service) DeleteRisk(ctx context.Context, id uint) error {
	if err := s.repo.DeleteRisk(ctx, id); err != nil {
		return fmt.Errorf("portfolio: delete risk: %w", err)
	}
	return nil
}

// ListRisks returns the risks of one project.
func (s *Service) ListRisks(ctx context.Context, projectID uint) ([]models.Risk, error) {
	risks, err := s.repo.ListRisks(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("portfolio: list risks: %w", err)
	}
	return risks, nil
}

// RiskMatrix counts risks per probability (row) and impact (column). Index 0
// is the low tier, 2 the high one.
type RiskMatrix struct {
	Cells [3][3]int `json:"cells"`
	Total int       `json:"total"`
}

// Count returns the number of risks at the given 1..3 levels.
func (m RiskMatrix) Count(probability, impact int) int {
	if probability < 1 || probability > 3 || impact < 1 || impact > 3 {
		return 0
	}
	return m.Cells[probability-1][impact-1]
}

// RiskMatrix builds the probability/impact matrix for a project.
func (s *Service) RiskMatrix(ctx context.Context, projectID uint) (RiskMatrix, error) {
	risks, err := s.ListRisks(ctx, projectID)
	if err != nil {
		return RiskMatrix{}, err
	}
	var m RiskMatrix
	for _, r := range risks {
		p, i := models.RiskLevel(r.Probability), models.RiskLevel(r.Impact)
		m.Cells[p-1][i-1]++
		m.Total++
	}
	return m, nil
}
