package gamedata

import "github.com/samdwyer/delve/internal/stats"

// ProfessionDef is a playable profession and its skill tree.
type ProfessionDef struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Symbol            string           `json:"symbol"`
	Attributes        stats.Attributes `json:"attributes"`
	StartingAbilities []string         `json:"startingAbilities"`
	Actives           []string         `json:"actives"`
	Passives          []string         `json:"passives"`
	StartingItems     []string         `json:"startingItems"`
	StartingEquipment []string         `json:"startingEquipment"`
}

type professionsFile struct {
	Professions []ProfessionDef `json:"professions"`
}
