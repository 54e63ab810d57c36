package gamedata

import "github.com/samdwyer/delve/internal/world"

// TierTemplates is the template pool for one tier.
type TierTemplates struct {
	Tier      int              `json:"tier"`
	Templates []world.Template `json:"templates"`
}

type templatesFile struct {
	Start world.Template  `json:"start"`
	Tiers []TierTemplates `json:"tiers"`
}
