package schedule

import "testing"

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"09:00", 540},
		{"9:00", 540},
		{"19:00", 1140},
		{"00:00", 0},
		{"12:30", 750},
		{"", 0},        // leniente: vazio vale 0
		{"abc", 0},     // leniente: ilegível vale 0
		{"10", 600},    // sem minutos
		{"10:xx", 600}, // minutos ilegíveis valem 0
	}

	for _, c := range cases {
		if got := ToMinutes(c.in); got != c.want {
			t.Fatalf("ToMinutes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Label(540); got != "09:00" {
		t.Fatalf("Label(540) = %q, want 09:00", got)
	}
	if got := Label(990); got != "16:30" {
		t.Fatalf("Label(990) = %q, want 16:30", got)
	}
	if got := Label(0); got != "00:00" {
		t.Fatalf("Label(0) = %q, want 00:00", got)
	}
}

func TestOverlapsSymmetry(t *testing.T) {
	cases := []struct{ sa, da, sb, db int }{
		{600, 30, 615, 30},
		{600, 60, 630, 30},
		{600, 30, 630, 30},
		{540, 480, 720, 60},
	}
	for _, c := range cases {
		ab := Overlaps(c.sa, c.da, c.sb, c.db)
		ba := Overlaps(c.sb, c.db, c.sa, c.da)
		if ab != ba {
			t.Fatalf("Overlaps not symmetric for %+v: %v vs %v", c, ab, ba)
		}
	}
}

func TestOverlapsBoundaryTouch(t *testing.T) {
	// 10:00–10:30 e 10:30–11:00 convivem.
	if Overlaps(600, 30, 630, 30) {
		t.Fatal("boundary touch must not overlap")
	}
	// 10:15–10:45 contra 10:00–11:00 conflita.
	if !Overlaps(615, 30, 600, 60) {
		t.Fatal("expected overlap for 10:15+30 vs 10:00+60")
	}
}
