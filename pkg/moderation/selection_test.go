package moderation

import (
	"testing"

	"lovelens.link/models"
)

func TestSelectionToggle(t *testing.T) {
	ss := NewSelectionSet()

	ss.Toggle(7)
	if !ss.Contains(7) || ss.Len() != 1 {
		t.Fatalf("ilk toggle sonrası 7 seçili olmalı")
	}
	ss.Toggle(7)
	if ss.Contains(7) || ss.Len() != 0 {
		t.Fatalf("ikinci toggle seçimi kaldırmalı")
	}
}

func TestSelectionToggleAll(t *testing.T) {
	visible := []models.Submission{
		{BaseModel: models.BaseModel{ID: 1}},
		{BaseModel: models.BaseModel{ID: 2}},
		{BaseModel: models.BaseModel{ID: 3}},
	}

	ss := NewSelectionSet()
	ss.Toggle(2)

	// Tamamı seçili değil: hepsi seçilir, mevcut seçim korunur
	ss.ToggleAll(visible)
	if ss.Len() != 3 {
		t.Fatalf("ToggleAll sonrası 3 kayıt seçili olmalı, %d seçili", ss.Len())
	}

	// Tamamı seçiliyken: küme temizlenir
	ss.ToggleAll(visible)
	if ss.Len() != 0 {
		t.Fatalf("ikinci ToggleAll kümeyi boşaltmalı, %d seçili", ss.Len())
	}

	// Boş görünür liste hiçbir şey seçmez
	ss.ToggleAll(nil)
	if ss.Len() != 0 {
		t.Fatalf("boş liste için ToggleAll seçim yapmamalı")
	}
}

func TestVisibleSelectedIntersection(t *testing.T) {
	visible := []models.Submission{
		{BaseModel: models.BaseModel{ID: 5}},
		{BaseModel: models.BaseModel{ID: 9}},
	}

	ss := NewSelectionSet()
	ss.Toggle(9)
	ss.Toggle(5)
	ss.Toggle(12) // filtreyle gizlenmiş bir kayıt

	got := ss.VisibleSelected(visible)
	if want := []uint{5, 9}; !equalIDs(got, want) {
		t.Fatalf("VisibleSelected = %v, beklenen %v (görünür sırada, gizli 12 hariç)", got, want)
	}
}
