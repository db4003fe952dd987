package models

// Risk status default for newly logged risks.
const RiskActive = "Ativo"

// Risk is a threat logged against a project with a probability/impact rating.
type Risk struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	ProjectID      uint   `gorm:"index"`
	Description    string `gorm:"type:text"`
	Probability    string `gorm:"size:16"`
	Impact         string `gorm:"size:16"`
	MitigationPlan string `gorm:"type:text"`
	Owner          string `gorm:"size:128"`
	Status         string `gorm:"size:16;default:Ativo"`
}

// RiskLevel maps a probability or impact tier to 1 (low) .. 3 (high).
// Unknown or empty tiers sit in the middle.
func RiskLevel(tier string) int {
	switch tier {
	case "Baixa", "Baixo", "Low":
		return 1
	case "Média", "Médio", "Medium":
		return 2
	case "Alta", "Alto", "High":
		return 3
	default:
		return 2
	}
}
