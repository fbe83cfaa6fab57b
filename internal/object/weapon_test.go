package object

import "testing"

func TestDestroysExhaustiveAndExclusive(t *testing.T) {
	matches := map[WeaponColor]EnemyKind{Green: EnemyA, Red: EnemyB, Yellow: EnemyC}

	pairs := 0
	for _, color := range WeaponColors {
		for _, kind := range EnemyKinds {
			pairs++
			want := matches[color] == kind
			if got := Destroys(color, kind); got != want {
				t.Errorf("Destroys(%s, %s) = %v, want %v", color, kind, got, want)
			}
		}
	}
	if pairs != 9 {
		t.Fatalf("checked %d pairs, want 9", pairs)
	}
}

func TestDestroysUnknownColor(t *testing.T) {
	for _, kind := range EnemyKinds {
		if Destroys(WeaponColor(7), kind) {
			t.Errorf("unknown color destroys %s", kind)
		}
	}
}

func TestEnemyKindRoundTrip(t *testing.T) {
	for _, k := range EnemyKinds {
		got, ok := k.Kind().EnemyKind()
		if !ok || got != k {
			t.Errorf("%s -> %s -> %s (ok=%v)", k, k.Kind(), got, ok)
		}
		parsed, err := ParseEnemyKind(k.String())
		if err != nil || parsed != k {
			t.Errorf("ParseEnemyKind(%q) = %v, %v", k.String(), parsed, err)
		}
	}
	if _, ok := KindProjectile.EnemyKind(); ok {
		t.Error("projectile reported as enemy")
	}
	if _, err := ParseEnemyKind("d"); err == nil {
		t.Error("ParseEnemyKind accepted d")
	}
	if k, err := ParseEnemyKind(" c "); err != nil || k != EnemyC {
		t.Errorf("ParseEnemyKind(\" c \") = %v, %v", k, err)
	}
}
