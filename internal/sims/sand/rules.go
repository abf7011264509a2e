package sand

import "fmt"

// Rule stages the next state for self (and possibly one neighbor) given the
// frozen neighborhood. Rules only ever write pending state.
type Rule func(self Cell, n Neighborhood, g *Grid)

var rules = [materialCount]Rule{
	Empty:   stayRule,
	Sand:    sandRule,
	Ceramic: stayRule,
}

func init() {
	for m, r := range rules {
		if r == nil {
			panic(fmt.Sprintf("sand: no rule registered for %s", Material(m)))
		}
	}
}

func ruleFor(m Material) Rule {
	if !m.Valid() {
		return stayRule
	}
	return rules[m]
}

// stayRule proposes nothing; the cell keeps its material.
func stayRule(Cell, Neighborhood, *Grid) {}

// sandFallOrder is the fixed priority in which a grain looks for room.
var sandFallOrder = [3]Direction{BotMid, BotRight, BotLeft}

func sandRule(self Cell, n Neighborhood, g *Grid) {
	for _, d := range sandFallOrder {
		target, ok := n.Get(d)
		if !ok || target.Material != Empty {
			continue
		}
		if !g.propose(target.pos, Sand) {
			// Another grain claimed this slot earlier in the pass.
			continue
		}
		g.propose(self.pos, Empty)
		g.moves++
		return
	}
	g.propose(self.pos, self.Material)
}
