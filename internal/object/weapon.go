package object

import (
	"fmt"
	"strings"
)

// WeaponColor is the player's selectable attack type.
type WeaponColor int

const (
	Green WeaponColor = iota
	Red
	Yellow
)

// WeaponColors lists every color in selection order (keys 1-3).
var WeaponColors = []WeaponColor{Green, Red, Yellow}

func (c WeaponColor) String() string {
	switch c {
	case Green:
		return "green"
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	default:
		return fmt.Sprintf("weapon(%d)", int(c))
	}
}

// EnemyKind is one of the three enemy archetypes.
type EnemyKind int

const (
	EnemyA EnemyKind = iota
	EnemyB
	EnemyC
)

// EnemyKinds lists every archetype.
var EnemyKinds = []EnemyKind{EnemyA, EnemyB, EnemyC}

func (k EnemyKind) String() string {
	switch k {
	case EnemyA:
		return "A"
	case EnemyB:
		return "B"
	case EnemyC:
		return "C"
	default:
		return fmt.Sprintf("enemy(%d)", int(k))
	}
}

// Kind returns the entity kind for the archetype.
func (k EnemyKind) Kind() Kind {
	return KindEnemyA + Kind(k)
}

// EnemyKind returns the archetype for an enemy entity kind.
func (k Kind) EnemyKind() (EnemyKind, bool) {
	if !k.IsEnemy() {
		return 0, false
	}
	return EnemyKind(k - KindEnemyA), true
}

// ParseEnemyKind parses "A", "B" or "C" (case-insensitive).
func ParseEnemyKind(s string) (EnemyKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return EnemyA, nil
	case "B":
		return EnemyB, nil
	case "C":
		return EnemyC, nil
	}
	return 0, fmt.Errorf("unknown enemy kind %q", s)
}

// weakness maps each weapon color to the only archetype it destroys.
var weakness = map[WeaponColor]EnemyKind{
	Green:  EnemyA,
	Red:    EnemyB,
	Yellow: EnemyC,
}

// Destroys reports whether a shot of the given color destroys the archetype.
func Destroys(c WeaponColor, k EnemyKind) bool {
	target, ok := weakness[c]
	return ok && target == k
}

// Target returns the archetype a weapon color destroys.
func (c WeaponColor) Target() EnemyKind {
	return weakness[c]
}
