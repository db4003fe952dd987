package health

import (
	"encoding/json"
	"fmt"
)

// Tier is the ordered health classification: Healthy < Attention < Critical.
type Tier int

const (
	Healthy Tier = iota
	Attention
	Critical
)

// Tiers lists all tiers in ascending severity.
var Tiers = []Tier{Healthy, Attention, Critical}

func (t Tier) String() string {
	switch t {
	case Healthy:
		return "healthy"
	case Attention:
		return "attention"
	case Critical:
		return "critical"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Label is the dashboard caption for the tier.
func (t Tier) Label() string {
	switch t {
	case Healthy:
		return "🟢 Saudável"
	case Attention:
		return "🟡 Atenção"
	default:
		return "🔴 Crítico"
	}
}

// Color is the hex color used for bars and chat attachments.
func (t Tier) Color() string {
	switch t {
	case Healthy:
		return "#22C55E"
	case Attention:
		return "#F59E0B"
	default:
		return "#EF4444"
	}
}

// Icon is a short glyph for tabular output.
func (t Tier) Icon() string {
	switch t {
	case Healthy:
		return "🟢"
	case Attention:
		return "🟡"
	default:
		return "🔴"
	}
}

// ParseTier is the inverse of Tier.String.
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("health: unknown tier %q", s)
}

// MarshalJSON encodes the tier as its string name.
func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a tier name.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseTier(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
