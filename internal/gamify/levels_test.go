package gamify

import (
	"sort"
	"testing"
)

func TestLevelBoundaries(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{49, 1},
		{50, 2},
		{149, 2},
		{150, 3},
		{349, 3},
		{350, 4},
		{699, 4},
		{700, 5},
		{1199, 5},
		{1200, 6},
		{1699, 6},
		{1700, 7},
		{2200, 8},
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.want {
			t.Fatalf("LevelForXP(%d)=%d, want %d", c.xp, got, c.want)
		}
	}
}

func TestXPForLevelRoundTrip(t *testing.T) {
	if got := XPForLevel(1); got != 0 {
		t.Fatalf("XPForLevel(1)=%d, want 0", got)
	}
	for level := 2; level <= 10; level++ {
		floor := XPForLevel(level)
		if got := LevelForXP(floor); got != level {
			t.Fatalf("LevelForXP(XPForLevel(%d))=%d, want %d", level, got, level)
		}
		if got := LevelForXP(floor - 1); got != level-1 {
			t.Fatalf("LevelForXP(XPForLevel(%d)-1)=%d, want %d", level, got, level-1)
		}
	}
}

func TestProgress(t *testing.T) {
	have, need := Progress(0)
	if have != 0 || need != 50 {
		t.Fatalf("Progress(0)=(%d,%d), want (0,50)", have, need)
	}
	have, need = Progress(75)
	if have != 25 || need != 100 {
		t.Fatalf("Progress(75)=(%d,%d), want (25,100)", have, need)
	}
	have, need = Progress(1200)
	if have != 0 || need != 500 {
		t.Fatalf("Progress(1200)=(%d,%d), want (0,500)", have, need)
	}
}

func TestNewBadges(t *testing.T) {
	earned := NewBadges(
		[]string{"first_application"},
		[]string{"first_application", "five_applications", "url_scraper"},
	)
	sort.Strings(earned)
	if len(earned) != 2 || earned[0] != "five_applications" || earned[1] != "url_scraper" {
		t.Fatalf("NewBadges=%v, want [five_applications url_scraper]", earned)
	}

	if got := NewBadges([]string{"a", "b"}, []string{"a", "b"}); len(got) != 0 {
		t.Fatalf("NewBadges same sets=%v, want empty", got)
	}
}

func TestBadgeMetaFallback(t *testing.T) {
	meta := BadgeMeta("first_offer")
	if meta.Label != "Offer Received" {
		t.Fatalf("BadgeMeta(first_offer).Label=%q", meta.Label)
	}
	unknown := BadgeMeta("mystery_badge")
	if unknown.Label != "mystery_badge" || unknown.Icon == "" {
		t.Fatalf("unknown badge should fall back to its code: %+v", unknown)
	}
}
