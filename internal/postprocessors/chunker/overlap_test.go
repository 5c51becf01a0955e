package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildOverlap(t *testing.T) {
	t.Run("zero budget", func(t *testing.T) {
		if got := BuildOverlap("Some text here.", 0); got != "" {
			t.Errorf("expected empty overlap for zero budget, got %q", got)
		}
	})

	t.Run("negative budget", func(t *testing.T) {
		if got := BuildOverlap("Some text here.", -5); got != "" {
			t.Errorf("expected empty overlap for negative budget, got %q", got)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		if got := BuildOverlap("", 100); got != "" {
			t.Errorf("expected empty overlap for empty text, got %q", got)
		}
	})

	t.Run("budget covers everything", func(t *testing.T) {
		text := "First one here. Second one here."
		got := BuildOverlap(text, 1000)
		if got != text {
			t.Errorf("expected full text, got %q", got)
		}
	})

	t.Run("whole sentences accumulated backward", func(t *testing.T) {
		text := "Alpha sentence one. Beta sentence two. Gamma sentence three."
		got := BuildOverlap(text, 45)

		if !strings.HasSuffix(got, "Gamma sentence three.") {
			t.Errorf("expected last sentence kept whole, got %q", got)
		}
		if !strings.Contains(got, "Beta sentence two.") {
			t.Errorf("expected second-to-last sentence included, got %q", got)
		}
		if strings.Contains(got, "Alpha sentence one.") {
			t.Errorf("expected first sentence excluded at this budget, got %q", got)
		}
	})

	t.Run("partial tail from first over-budget sentence", func(t *testing.T) {
		text := strings.Repeat("a", 40)
		got := BuildOverlap(text, 15)

		if got != strings.Repeat("a", 15) {
			t.Errorf("expected 15-char tail, got %q", got)
		}
	})

	t.Run("partial tail lands on rune boundary", func(t *testing.T) {
		text := "Modèle évalué sur un corpus de référence avec une précision élevée"
		for budget := 1; budget < len(text); budget++ {
			got := BuildOverlap(text, budget)
			if !utf8.ValidString(got) {
				t.Errorf("budget %d: overlap %q is not valid UTF-8", budget, got)
			}
			if len(got) > budget {
				t.Errorf("budget %d: overlap length %d exceeds budget", budget, len(got))
			}
		}
	})

	t.Run("result within budget", func(t *testing.T) {
		text := "One sentence here. Another sentence follows. And one more closes it."
		for _, budget := range []int{5, 10, 25, 40, 60} {
			got := BuildOverlap(text, budget)
			if len(got) > budget {
				t.Errorf("budget %d: overlap length %d exceeds budget", budget, len(got))
			}
		}
	})
}
