// Package combat resolves melee attacks between units.
package combat

import "fmt"

// Combatant is the interface for any entity that can participate in combat.
// Both the player and monsters implement this interface.
type Combatant interface {
	GetName() string
	IsAlive() bool

	GetHP() int
	GetMaxHP() int
	GetDamage() int
	GetDefense() int

	// TakeDamage applies a positive amount and returns the HP actually lost.
	TakeDamage(amount int) int
}

// Outcome classifies how an attack went.
type Outcome int

const (
	// OutcomeHit means damage got through the defender's defense.
	OutcomeHit Outcome = iota
	// OutcomeAbsorbed means the attacker can deal damage but the defense soaked all of it.
	OutcomeAbsorbed
	// OutcomeTooWeak means the attacker has no damage to deal at all.
	OutcomeTooWeak
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeAbsorbed:
		return "absorbed"
	case OutcomeTooWeak:
		return "too_weak"
	default:
		return "unknown"
	}
}

// Result contains the outcome of resolving one attack.
type Result struct {
	Outcome Outcome
	Damage  int    // HP actually removed from the defender
	Killed  bool   // True if this attack moved the defender from alive to dead
	Message string // Human-readable description
}

// Resolve makes attacker strike defender once. Damage is attacker damage minus
// defender defense and is only applied when positive. Every outcome counts as
// a spent turn for the attacker.
func Resolve(attacker, defender Combatant) Result {
	if attacker.GetDamage() <= 0 {
		return Result{
			Outcome: OutcomeTooWeak,
			Message: fmt.Sprintf("%s is too weak to hurt %s.", attacker.GetName(), defender.GetName()),
		}
	}

	damage := CalculateDamage(attacker, defender)
	if damage <= 0 {
		return Result{
			Outcome: OutcomeAbsorbed,
			Message: fmt.Sprintf("%s attacks %s but it has no effect.", attacker.GetName(), defender.GetName()),
		}
	}

	wasAlive := defender.IsAlive()
	actual := defender.TakeDamage(damage)

	result := Result{
		Outcome: OutcomeHit,
		Damage:  actual,
		Killed:  wasAlive && !defender.IsAlive(),
		Message: fmt.Sprintf("%s attacks %s for %d hit points.", attacker.GetName(), defender.GetName(), actual),
	}
	if result.Killed {
		result.Message += fmt.Sprintf(" %s dies!", defender.GetName())
	}
	return result
}

// CalculateDamage returns the damage an attack would deal without applying it.
// Never negative.
func CalculateDamage(attacker, defender Combatant) int {
	damage := attacker.GetDamage() - defender.GetDefense()
	if damage < 0 {
		return 0
	}
	return damage
}
