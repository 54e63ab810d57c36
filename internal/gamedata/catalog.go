package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/status"
	"github.com/samdwyer/delve/internal/world"
)

// ErrUnknownProfession is returned for a profession missing from the catalog.
var ErrUnknownProfession = errors.New("unknown profession")

// Catalog is the loaded game content. It resolves save-game identifiers and
// spawns tier-appropriate board content.
type Catalog struct {
	statuses    map[string]*status.Status
	items       map[string]entity.Item
	loot        *Registry[lootDef]
	enemies     *Registry[EnemyDef]
	traps       *Registry[TrapDef]
	trapProtos  map[string]*entity.Trap
	actives     map[string]*entity.ActiveAbility
	passives    map[string]*entity.PassiveAbility
	professions map[string]ProfessionDef
	start       world.Template
	tiers       map[int][]world.Template
	palette     Palette
}

// SkillTree lists what a profession can learn, in display order.
type SkillTree struct {
	Actives  []*entity.ActiveAbility
	Passives []*entity.PassiveAbility
}

// LoadCatalog loads the embedded catalog.
func LoadCatalog() (*Catalog, error) {
	return LoadCatalogFS(dataFS)
}

// MustLoadCatalog is LoadCatalog for the built-in data, which is known good.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalogFS loads and cross-checks every catalog file from fsys.
func LoadCatalogFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{
		statuses:    make(map[string]*status.Status),
		items:       make(map[string]entity.Item),
		trapProtos:  make(map[string]*entity.Trap),
		actives:     make(map[string]*entity.ActiveAbility),
		passives:    make(map[string]*entity.PassiveAbility),
		professions: make(map[string]ProfessionDef),
		tiers:       make(map[int][]world.Template),
	}

	// Statuses first: items, traps and abilities refer to them by name.
	sf, err := LoadFS[statusesFile](fsys, "statuses.json")
	if err != nil {
		return nil, err
	}
	for _, d := range sf.Statuses {
		s, err := d.Build()
		if err != nil {
			return nil, err
		}
		c.statuses[d.Name] = s
	}

	if err := c.loadItems(fsys); err != nil {
		return nil, err
	}

	ef, err := LoadFS[enemiesFile](fsys, "enemies.json")
	if err != nil {
		return nil, err
	}
	for _, d := range ef.Enemies {
		if _, err := d.Build(1); err != nil {
			return nil, err
		}
	}
	c.enemies = NewRegistry(ef.Enemies)

	tf, err := LoadFS[trapsFile](fsys, "traps.json")
	if err != nil {
		return nil, err
	}
	for _, d := range tf.Traps {
		t, err := d.Build(c.statuses)
		if err != nil {
			return nil, err
		}
		c.trapProtos[d.ID] = t
	}
	c.traps = NewRegistry(tf.Traps)

	af, err := LoadFS[abilitiesFile](fsys, "abilities.json")
	if err != nil {
		return nil, err
	}
	for _, d := range af.Actives {
		a, err := d.Build(c.statuses)
		if err != nil {
			return nil, err
		}
		c.actives[d.ID] = a
	}
	for _, d := range af.Passives {
		c.passives[d.ID] = d.Build()
	}

	if err := c.loadProfessions(fsys); err != nil {
		return nil, err
	}
	if err := c.loadTemplates(fsys); err != nil {
		return nil, err
	}

	pal, err := LoadFS[Palette](fsys, "palette.json")
	if err != nil {
		return nil, err
	}
	if err := pal.Validate(); err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	c.palette = pal

	return c, nil
}

func (c *Catalog) loadItems(fsys fs.FS) error {
	f, err := LoadFS[itemsFile](fsys, "items.json")
	if err != nil {
		return err
	}
	var loot []lootDef
	for _, d := range f.Consumables {
		item, err := d.Build(c.statuses)
		if err != nil {
			return err
		}
		c.items[d.ID] = item
		loot = append(loot, lootDef{id: d.ID, tier: d.MinTier, weight: d.SpawnWeight})
	}
	for _, d := range f.Equipment {
		item, err := d.Build()
		if err != nil {
			return err
		}
		c.items[d.ID] = item
		loot = append(loot, lootDef{id: d.ID, tier: d.MinTier, weight: d.SpawnWeight})
	}
	c.loot = NewRegistry(loot)
	return nil
}

func (c *Catalog) loadProfessions(fsys fs.FS) error {
	f, err := LoadFS[professionsFile](fsys, "professions.json")
	if err != nil {
		return err
	}
	for _, d := range f.Professions {
		for _, id := range append(append([]string(nil), d.Actives...), d.StartingAbilities...) {
			if _, ok := c.actives[id]; !ok {
				return fmt.Errorf("profession %s: unknown ability %q", d.ID, id)
			}
		}
		for _, id := range d.Passives {
			if _, ok := c.passives[id]; !ok {
				return fmt.Errorf("profession %s: unknown passive %q", d.ID, id)
			}
		}
		for _, id := range append(append([]string(nil), d.StartingItems...), d.StartingEquipment...) {
			if _, ok := c.items[id]; !ok {
				return fmt.Errorf("profession %s: unknown item %q", d.ID, id)
			}
		}
		c.professions[d.ID] = d
	}
	return nil
}

func (c *Catalog) loadTemplates(fsys fs.FS) error {
	f, err := LoadFS[templatesFile](fsys, "templates.json")
	if err != nil {
		return err
	}
	if err := f.Start.Validate(); err != nil {
		return fmt.Errorf("start template: %w", err)
	}
	c.start = f.Start
	for _, tier := range f.Tiers {
		for i, tmpl := range tier.Templates {
			if err := tmpl.Validate(); err != nil {
				return fmt.Errorf("tier %d template %d: %w", tier.Tier, i, err)
			}
		}
		c.tiers[tier.Tier] = append(c.tiers[tier.Tier], tier.Templates...)
	}
	return nil
}

// Item returns a fresh copy of the item with id.
func (c *Catalog) Item(id string) (entity.Item, bool) {
	item, ok := c.items[id]
	if !ok {
		return nil, false
	}
	return item.Copy(), true
}

// Status returns the status prototype. Apply a Clone, never the prototype.
func (c *Catalog) Status(name string) (*status.Status, bool) {
	s, ok := c.statuses[name]
	return s, ok
}

// Active returns the ability prototype.
func (c *Catalog) Active(id string) (*entity.ActiveAbility, bool) {
	a, ok := c.actives[id]
	return a, ok
}

// Passive returns the passive definition.
func (c *Catalog) Passive(id string) (*entity.PassiveAbility, bool) {
	p, ok := c.passives[id]
	return p, ok
}

// EnemyDef returns the definition behind an enemy's Key.
func (c *Catalog) EnemyDef(key string) (EnemyDef, bool) {
	return c.enemies.Get(key)
}

// Enemy spawns a random enemy available at tier. Its level equals the tier.
func (c *Catalog) Enemy(rng entity.Roller, tier int) (*entity.Enemy, error) {
	d, err := c.enemies.SpawnRandom(rng, tier)
	if err != nil {
		return nil, fmt.Errorf("enemy: %w", err)
	}
	return d.Build(max(tier, 1))
}

// Chest spawns a chest holding a random item available at tier.
func (c *Catalog) Chest(rng entity.Roller, tier int) (*entity.Chest, error) {
	d, err := c.loot.SpawnRandom(rng, tier)
	if err != nil {
		return nil, fmt.Errorf("chest: %w", err)
	}
	return &entity.Chest{Item: c.items[d.id].Copy()}, nil
}

// Trap returns a random trap prototype available at tier.
func (c *Catalog) Trap(rng entity.Roller, tier int) (*entity.Trap, error) {
	d, err := c.traps.SpawnRandom(rng, tier)
	if err != nil {
		return nil, fmt.Errorf("trap: %w", err)
	}
	return c.trapProtos[d.ID], nil
}

// Template draws a random template from the pool for exactly tier.
func (c *Catalog) Template(rng entity.Roller, tier int) (world.Template, error) {
	pool := c.tiers[tier]
	if len(pool) == 0 {
		return nil, fmt.Errorf("template: %w: %d", ErrUnknownTier, tier)
	}
	return pool[rng.Intn(len(pool))], nil
}

// StartTemplate returns the layout of the first board.
func (c *Catalog) StartTemplate() world.Template {
	return c.start
}

// Tiers returns the tiers that have templates, ascending.
func (c *Catalog) Tiers() []int {
	out := make([]int, 0, len(c.tiers))
	for t := range c.tiers {
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}

// Profession returns a profession definition.
func (c *Catalog) Profession(id string) (ProfessionDef, bool) {
	d, ok := c.professions[id]
	return d, ok
}

// Palette returns the colour palette.
func (c *Catalog) Palette() Palette {
	return c.palette
}

// SkillTree returns what the profession can learn.
func (c *Catalog) SkillTree(profession string) (SkillTree, error) {
	d, ok := c.professions[profession]
	if !ok {
		return SkillTree{}, fmt.Errorf("%w: %q", ErrUnknownProfession, profession)
	}
	var tree SkillTree
	for _, id := range d.Actives {
		tree.Actives = append(tree.Actives, c.actives[id])
	}
	for _, id := range d.Passives {
		tree.Passives = append(tree.Passives, c.passives[id])
	}
	return tree, nil
}

// NewPlayer creates a level 1 character of the given profession with its
// starting abilities, inventory and equipment.
func (c *Catalog) NewPlayer(name, profession string) (*entity.Player, error) {
	d, ok := c.professions[profession]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfession, profession)
	}
	p := entity.NewPlayer(name, d.ID, d.Attributes)

	for _, id := range d.StartingAbilities {
		a := c.actives[id].Copy()
		a.Level = 1
		p.Abilities = append(p.Abilities, a)
	}
	for _, id := range d.StartingEquipment {
		if err := p.AddItem(c.items[id].Copy()); err != nil {
			return nil, err
		}
		if _, err := p.Equip(len(p.Inventory) - 1); err != nil {
			return nil, fmt.Errorf("equip %s: %w", id, err)
		}
	}
	for _, id := range d.StartingItems {
		if err := p.AddItem(c.items[id].Copy()); err != nil {
			return nil, err
		}
	}
	return p, nil
}
