package pantry

import (
	"strings"

	"github.com/samber/lo"

	"fridgechef/internal/state"
)

// Suggested holds the quick-add starter ingredients shown on the pantry page,
// filtered against what the user already has.
var Suggested = []string{
	"계란", "양파", "대파", "마늘", "김치", "두부",
	"당근", "감자", "고추", "버섯", "스팸", "참치캔",
	"밥", "라면", "어묵", "햄", "치즈", "우유",
}

// Pantry is the one wholly client-owned entity: a de-duplicated ingredient
// list in durable client storage. It never reaches the backend except when
// merged into an outgoing ingredient list.
type Pantry struct {
	items *state.Persisted[[]string]
}

func New(store state.Store) *Pantry {
	return &Pantry{items: state.NewPersisted(store, state.KeyPantryItems, []string{})}
}

func (p *Pantry) Items() []string {
	return p.items.Get()
}

func (p *Pantry) Has(item string) bool {
	return lo.Contains(p.items.Get(), strings.TrimSpace(item))
}

// Add appends a trimmed item, rejecting empties and exact duplicates.
func (p *Pantry) Add(item string) {
	trimmed := strings.TrimSpace(item)
	if trimmed == "" {
		return
	}
	p.items.Update(func(items []string) []string {
		if lo.Contains(items, trimmed) {
			return items
		}
		return append(items, trimmed)
	})
}

func (p *Pantry) Remove(item string) {
	p.items.Update(func(items []string) []string {
		return lo.Filter(items, func(i string, _ int) bool { return i != item })
	})
}

func (p *Pantry) Clear() {
	p.items.Set([]string{})
}

// Suggestions returns the starter items not yet in the pantry.
func (p *Pantry) Suggestions() []string {
	items := p.items.Get()
	return lo.Filter(Suggested, func(s string, _ int) bool {
		return !lo.Contains(items, s)
	})
}

// Merge folds the pantry into the current parsed ingredient list: pantry
// items first, then the current ones, exact-string duplicates removed,
// first-occurrence order kept. One-shot transform, not a sync.
func Merge(pantryItems, current []string) []string {
	return lo.Uniq(append(append([]string{}, pantryItems...), current...))
}
