package dashboard

// RiskView selects what the risk page shows next to the risk list.
type RiskView int

const (
	RiskViewMatrix RiskView = iota
	RiskViewNew
)

// ParseRiskView reads the view query parameter. Anything unknown falls back
// to the matrix.
func ParseRiskView(s string) RiskView {
	if s == "new" {
		return RiskViewNew
	}
	return RiskViewMatrix
}

func (v RiskView) String() string {
	if v == RiskViewNew {
		return "new"
	}
	return "matrix"
}
