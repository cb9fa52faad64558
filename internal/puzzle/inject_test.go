package puzzle

import (
	"testing"

	"github.com/akosenkov/lapsus/internal/model"
)

func TestInject_AllOccurrences(t *testing.T) {
	source := "Paris is the capital and most populous city of France. As the capital, it hosts the government."

	inj := Inject(source, model.Replacement{Original: "capital", Replacement: "largest"})

	want := "Paris is the largest and most populous city of France. As the largest, it hosts the government."
	if inj.Text != want {
		t.Errorf("Text = %q, want %q", inj.Text, want)
	}
	if inj.Applied != 2 {
		t.Errorf("Applied = %d, want 2", inj.Applied)
	}
	if inj.AlteredOccurrence != 0 || inj.WrongOccurrence != 0 {
		t.Errorf("untargeted injection should not record ordinals: %+v", inj)
	}
}

func TestInject_TargetedOccurrence(t *testing.T) {
	source := "The capital rose. The capital fell. The capital endured."

	inj := Inject(source, model.Replacement{Original: "capital", Replacement: "largest", Occurrence: 2})

	want := "The capital rose. The largest fell. The capital endured."
	if inj.Text != want {
		t.Errorf("Text = %q, want %q", inj.Text, want)
	}
	if inj.Applied != 1 {
		t.Errorf("Applied = %d, want 1", inj.Applied)
	}
	if inj.AlteredOccurrence != 2 {
		t.Errorf("AlteredOccurrence = %d, want 2", inj.AlteredOccurrence)
	}
	if inj.WrongOccurrence != 1 {
		t.Errorf("WrongOccurrence = %d, want 1 (only instance of the wrong word)", inj.WrongOccurrence)
	}
}

func TestInject_WrongOccurrenceCountsNaturalDecoys(t *testing.T) {
	// The wrong word already occurs naturally before the planted spot,
	// so the planted instance is the second "planet" in the output.
	source := "A planet is massive. The satellite orbits one."

	inj := Inject(source, model.Replacement{Original: "satellite", Replacement: "planet", Occurrence: 1})

	want := "A planet is massive. The planet orbits one."
	if inj.Text != want {
		t.Errorf("Text = %q, want %q", inj.Text, want)
	}
	if inj.WrongOccurrence != 2 {
		t.Errorf("WrongOccurrence = %d, want 2", inj.WrongOccurrence)
	}
}

func TestInject_CasePreserved(t *testing.T) {
	source := "Capital cities grow. Every capital matters."

	inj := Inject(source, model.Replacement{Original: "capital", Replacement: "largest"})

	want := "Largest cities grow. Every largest matters."
	if inj.Text != want {
		t.Errorf("Text = %q, want %q", inj.Text, want)
	}
}

func TestInject_CaseInsensitiveFind(t *testing.T) {
	// The authored original is lowercase; the text capitalizes it.
	source := "The Ming dynasty built the best-known sections."

	inj := Inject(source, model.Replacement{Original: "ming", Replacement: "qing"})

	want := "The Qing dynasty built the best-known sections."
	if inj.Text != want {
		t.Errorf("Text = %q, want %q", inj.Text, want)
	}
}

func TestInject_WordBoundary(t *testing.T) {
	source := "The cat sat near the catalog of catastrophes."

	inj := Inject(source, model.Replacement{Original: "cat", Replacement: "dog"})

	want := "The dog sat near the catalog of catastrophes."
	if inj.Text != want {
		t.Errorf("Text = %q, want %q", inj.Text, want)
	}
	if inj.Applied != 1 {
		t.Errorf("Applied = %d, want 1", inj.Applied)
	}
}

func TestInject_Miss(t *testing.T) {
	source := "Nothing here matches."

	inj := Inject(source, model.Replacement{Original: "capital", Replacement: "largest"})

	if inj.Text != source {
		t.Errorf("a miss must leave the text untouched, got %q", inj.Text)
	}
	if !inj.Missed() || inj.Applied != 0 {
		t.Errorf("expected a silent miss, got %+v", inj)
	}
}

func TestInject_OccurrenceBeyondCount(t *testing.T) {
	source := "Only one capital here."

	inj := Inject(source, model.Replacement{Original: "capital", Replacement: "largest", Occurrence: 3})

	if inj.Text != source || !inj.Missed() {
		t.Errorf("targeting a missing instance must miss silently, got %+v", inj)
	}
}

func TestInject_EmptySpec(t *testing.T) {
	source := "Some text."

	if inj := Inject(source, model.Replacement{}); inj.Text != source || !inj.Missed() {
		t.Errorf("empty replacement must miss, got %+v", inj)
	}
	if inj := Inject(source, model.Replacement{Original: "text"}); inj.Text != source || !inj.Missed() {
		t.Errorf("replacement without a wrong word must miss, got %+v", inj)
	}
}

func TestInject_Phrase(t *testing.T) {
	source := "She ordered ice cream after dinner."

	inj := Inject(source, model.Replacement{Original: "ice cream", Replacement: "hot chocolate"})

	want := "She ordered hot chocolate after dinner."
	if inj.Text != want {
		t.Errorf("Text = %q, want %q", inj.Text, want)
	}
}
