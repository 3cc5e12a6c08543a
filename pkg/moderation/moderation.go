package moderation

import (
	"strings"

	"lovelens.link/models"
)

// View moderasyon ekranının bakış açısını belirler. Guestbook görünümü
// mesaj odaklıdır ve boş mesajlı (sadece medya) kayıtları tamamen dışlar;
// medya görünümü mesaj içeriğinden bağımsız tüm kayıtları tutar.
type View int

const (
	ViewGuestbook View = iota
	ViewMedia
)

// Filter tek seferde yalnızca biri aktif olan filtre modları.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterApproved Filter = "approved"
	FilterPending  Filter = "pending"
	FilterPhoto    Filter = "photo"
	FilterVideo    Filter = "video"
)

// ParseFilter query string'den gelen değeri doğrular; bilinmeyen değerler
// FilterAll'a düşer.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterApproved, FilterPending, FilterPhoto, FilterVideo:
		return Filter(s)
	default:
		return FilterAll
	}
}

// Counts filtre rozetlerinde gösterilen sayılar. Arama terimi bu
// sayıları ETKİLEMEZ: rozetler aramasız küme üzerinden hesaplanır.
type Counts struct {
	All      int
	Approved int
	Pending  int
	Photos   int
	Videos   int
}

// eligible kaydın görünümün temel kümesine girip girmediğini söyler.
func eligible(s *models.Submission, view View) bool {
	if view == ViewGuestbook {
		return s.HasMessage()
	}
	return true
}

// matchFilter kaydı aktif filtre moduna göre değerlendirir.
func matchFilter(s *models.Submission, f Filter) bool {
	switch f {
	case FilterApproved:
		return s.IsApproved
	case FilterPending:
		return !s.IsApproved
	case FilterPhoto:
		return s.MediaKind == models.MediaKindPhoto
	case FilterVideo:
		return s.MediaKind == models.MediaKindVideo
	default:
		return true
	}
}

// matchSearch misafir adı VEYA mesaj üzerinde büyük/küçük harf duyarsız
// substring araması yapar. Boş terim her kayda uyar.
func matchSearch(s *models.Submission, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(s.GuestName), term) ||
		strings.Contains(strings.ToLower(s.Message), term)
}

// Visible tam listeden görünür alt kümeyi üretir: temel küme (görünüm),
// filtre modu ve arama terimi VE ile birleşir. Girdi sırası korunur.
func Visible(subs []models.Submission, view View, f Filter, term string) []models.Submission {
	term = strings.TrimSpace(term)
	visible := make([]models.Submission, 0, len(subs))
	for i := range subs {
		s := &subs[i]
		if !eligible(s, view) {
			continue
		}
		if !matchFilter(s, f) {
			continue
		}
		if !matchSearch(s, term) {
			continue
		}
		visible = append(visible, *s)
	}
	return visible
}

// Count rozet sayılarını görünümün temel kümesi üzerinden hesaplar;
// arama terimi uygulanmaz.
func Count(subs []models.Submission, view View) Counts {
	var c Counts
	for i := range subs {
		s := &subs[i]
		if !eligible(s, view) {
			continue
		}
		c.All++
		if s.IsApproved {
			c.Approved++
		} else {
			c.Pending++
		}
		switch s.MediaKind {
		case models.MediaKindPhoto:
			c.Photos++
		case models.MediaKindVideo:
			c.Videos++
		}
	}
	return c
}
