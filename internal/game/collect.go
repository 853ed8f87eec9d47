package game

import "fmt"

// Collection records one resource stack picked up by a villager.
type Collection struct {
	Collector UnitID
	Resource  ResourceID
	Kind      ResourceKind
	Quantity  int
}

// CollectNearbyResources lets every Villager pick up the stacks within the
// collection radius. A stack is removed on first match, so no two villagers
// can credit the same stack.
func (a *Arena) CollectNearbyResources() []Collection {
	a.mu.Lock()
	var out []Collection
	radius := float64(a.settings.CollectRadius)
	for _, u := range a.units {
		if u.kind != Villager {
			continue
		}
		ux, uy := u.Center()
		for id, r := range a.resources {
			rx, ry := r.Center()
			if distance(ux, uy, rx, ry) > radius {
				continue
			}
			delete(a.resources, id)
			a.stockpile[r.kind] += r.quantity
			out = append(out, Collection{
				Collector: u.id,
				Resource:  id,
				Kind:      r.kind,
				Quantity:  r.quantity,
			})
			a.emit(u.label, r.kind.String(), CategoryResource, KeyCollected,
				fmt.Sprintf("Villager collected %d %s", r.quantity, r.kind),
				float64(r.quantity))
		}
	}
	a.mu.Unlock()

	if len(out) > 0 {
		a.signalRedraw()
	}
	return out
}
