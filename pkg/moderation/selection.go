package moderation

import "lovelens.link/models"

// SelectionSet toplu işlem için seçilen gönderim ID'lerinin geçici
// kümesi. Kalıcı değildir; her toplu işlemden sonra temizlenir.
type SelectionSet struct {
	ids map[uint]struct{}
}

// NewSelectionSet boş bir seçim kümesi oluşturur.
func NewSelectionSet() *SelectionSet {
	return &SelectionSet{ids: make(map[uint]struct{})}
}

// Toggle tek bir ID'nin seçim durumunu tersine çevirir.
func (ss *SelectionSet) Toggle(id uint) {
	if _, ok := ss.ids[id]; ok {
		delete(ss.ids, id)
		return
	}
	ss.ids[id] = struct{}{}
}

// Contains ID'nin seçili olup olmadığını söyler.
func (ss *SelectionSet) Contains(id uint) bool {
	_, ok := ss.ids[id]
	return ok
}

// Len seçili ID sayısı.
func (ss *SelectionSet) Len() int {
	return len(ss.ids)
}

// Clear kümeyi boşaltır (toplu işlem sonrası ve mod çıkışında çağrılır).
func (ss *SelectionSet) Clear() {
	ss.ids = make(map[uint]struct{})
}

// ToggleAll "tümünü seç" davranışı: görünür kayıtların tamamı zaten
// seçiliyse küme temizlenir, değilse görünür kayıtların hepsi seçilir.
func (ss *SelectionSet) ToggleAll(visible []models.Submission) {
	allSelected := len(visible) > 0
	for i := range visible {
		if !ss.Contains(visible[i].ID) {
			allSelected = false
			break
		}
	}
	if allSelected {
		ss.Clear()
		return
	}
	for i := range visible {
		ss.ids[visible[i].ID] = struct{}{}
	}
}

// VisibleSelected toplu işlemin hedefini üretir: görünür ∩ seçili.
// Filtreyle gizlenmiş kayıtlar seçili olsalar bile asla dahil edilmez.
// Sıra, görünür listenin sırasıdır.
func (ss *SelectionSet) VisibleSelected(visible []models.Submission) []uint {
	ids := make([]uint, 0, len(ss.ids))
	for i := range visible {
		if ss.Contains(visible[i].ID) {
			ids = append(ids, visible[i].ID)
		}
	}
	return ids
}
