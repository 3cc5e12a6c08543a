package models

import "testing"

func TestSubmissionBeforeSaveMediaInvariant(t *testing.T) {
	// Medya referansı yoksa tür temizlenir
	s := Submission{MediaKind: MediaKindPhoto}
	if err := s.BeforeSave(nil); err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if s.MediaKind != "" {
		t.Errorf("URL'siz kayıtta tür temizlenmeli, kaldı: %q", s.MediaKind)
	}

	// Referans varsa tür photo/video olmalı
	s = Submission{MediaURL: "https://cdn.example.com/a.jpg", MediaKind: "gif"}
	if err := s.BeforeSave(nil); err == nil {
		t.Fatal("geçersiz medya türü hata döndürmeli")
	}

	s = Submission{MediaURL: "https://cdn.example.com/a.jpg", MediaKind: MediaKindPhoto}
	if err := s.BeforeSave(nil); err != nil {
		t.Fatalf("geçerli tür reddedildi: %v", err)
	}
}

func TestSubmissionHasMessage(t *testing.T) {
	cases := []struct {
		message string
		want    bool
	}{
		{"", false},
		{"   ", false},
		{"\n\t", false},
		{"tebrikler", true},
	}
	for _, c := range cases {
		s := Submission{Message: c.message}
		if got := s.HasMessage(); got != c.want {
			t.Errorf("HasMessage(%q) = %v, beklenen %v", c.message, got, c.want)
		}
	}
}
