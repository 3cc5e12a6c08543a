package moderation

import (
	"testing"

	"lovelens.link/models"
)

func sampleSubmissions() []models.Submission {
	return []models.Submission{
		{BaseModel: models.BaseModel{ID: 1}, GuestName: "Amy", Message: "Harika bir düğündü!", MediaURL: "https://cdn.example.com/a.jpg", MediaKind: models.MediaKindPhoto, IsApproved: true},
		{BaseModel: models.BaseModel{ID: 2}, GuestName: "Bo", Message: "Tebrikler", IsApproved: false},
		{BaseModel: models.BaseModel{ID: 3}, GuestName: "Cem", Message: "   ", MediaURL: "https://cdn.example.com/c.mp4", MediaKind: models.MediaKindVideo, IsApproved: true},
		{BaseModel: models.BaseModel{ID: 4}, GuestName: "", Message: "amy ile tanıştık", MediaURL: "https://cdn.example.com/d.jpg", MediaKind: models.MediaKindPhoto, IsApproved: false},
	}
}

func idsOf(subs []models.Submission) []uint {
	ids := make([]uint, len(subs))
	for i, s := range subs {
		ids[i] = s.ID
	}
	return ids
}

func equalIDs(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"approved": FilterApproved,
		"pending":  FilterPending,
		"photo":    FilterPhoto,
		"video":    FilterVideo,
		"all":      FilterAll,
		"":         FilterAll,
		"garbage":  FilterAll,
	}
	for raw, want := range cases {
		if got := ParseFilter(raw); got != want {
			t.Errorf("ParseFilter(%q) = %q, beklenen %q", raw, got, want)
		}
	}
}

func TestVisibleGuestbookExcludesBlankMessages(t *testing.T) {
	subs := sampleSubmissions()

	got := idsOf(Visible(subs, ViewGuestbook, FilterAll, ""))
	// ID 3 sadece boşluk içeren mesaj taşır, guestbook görünümüne giremez
	if want := []uint{1, 2, 4}; !equalIDs(got, want) {
		t.Fatalf("guestbook görünümü = %v, beklenen %v", got, want)
	}

	if got := idsOf(Visible(subs, ViewMedia, FilterAll, "")); !equalIDs(got, []uint{1, 2, 3, 4}) {
		t.Fatalf("medya görünümü tüm kayıtları içermeli, geldi: %v", got)
	}
}

func TestVisibleFilterAndSearchCompose(t *testing.T) {
	subs := sampleSubmissions()

	// Arama ada VE mesaja bakar, büyük/küçük harfe duyarsız
	got := idsOf(Visible(subs, ViewGuestbook, FilterAll, "amy"))
	if want := []uint{1, 4}; !equalIDs(got, want) {
		t.Fatalf("arama 'amy' = %v, beklenen %v", got, want)
	}

	// Filtre ve arama kesişir
	got = idsOf(Visible(subs, ViewGuestbook, FilterPending, "amy"))
	if want := []uint{4}; !equalIDs(got, want) {
		t.Fatalf("pending+arama = %v, beklenen %v", got, want)
	}

	// "Bo" hem Bo'nun adına hem başka kayıtların mesajına uymuyorsa tek sonuç
	got = idsOf(Visible(subs, ViewGuestbook, FilterAll, "bo"))
	if want := []uint{2}; !equalIDs(got, want) {
		t.Fatalf("arama 'bo' = %v, beklenen %v", got, want)
	}
}

func TestVisiblePreservesOrder(t *testing.T) {
	subs := sampleSubmissions()
	got := idsOf(Visible(subs, ViewMedia, FilterApproved, ""))
	if want := []uint{1, 3}; !equalIDs(got, want) {
		t.Fatalf("onaylı filtre sırası = %v, beklenen %v", got, want)
	}
}

func TestCountIgnoresSearch(t *testing.T) {
	subs := sampleSubmissions()

	c := Count(subs, ViewGuestbook)
	if c.All != 3 || c.Approved != 1 || c.Pending != 2 {
		t.Fatalf("guestbook sayıları hatalı: %+v", c)
	}
	if c.Photos != 2 || c.Videos != 0 {
		t.Fatalf("guestbook medya sayıları hatalı: %+v", c)
	}

	m := Count(subs, ViewMedia)
	if m.All != 4 || m.Approved != 2 || m.Pending != 2 || m.Photos != 2 || m.Videos != 1 {
		t.Fatalf("medya sayıları hatalı: %+v", m)
	}
}
