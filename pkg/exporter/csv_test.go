package exporter

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestMessagesCSVQuotingAndDefaults(t *testing.T) {
	rows := []Row{
		{GuestName: "Amy", Message: `He said "hi"`, CreatedAt: time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)},
		{GuestName: "", Message: "Tebrikler, çok mutluyuz", CreatedAt: time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)},
	}

	data, err := MessagesCSV(rows, false)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) != 3 {
		t.Fatalf("3 satır beklenir (başlık + 2 kayıt), %d geldi", len(lines))
	}
	if lines[0] != "Guest Name,Message,Date" {
		t.Errorf("başlık satırı hatalı: %q", lines[0])
	}
	// İç tırnaklar ikilenir, tarih baştaki sıfırlar olmadan yazılır
	if want := `"Amy","He said ""hi""","1/1/2024"`; lines[1] != want {
		t.Errorf("satır 1 = %q, beklenen %q", lines[1], want)
	}
	// Boş misafir adı Anonymous olur
	if !strings.HasPrefix(lines[2], `"Anonymous",`) {
		t.Errorf("boş ad Anonymous olmalı: %q", lines[2])
	}
	if !strings.HasSuffix(lines[2], `"12/5/2024"`) {
		t.Errorf("tarih formatı M/D/YYYY olmalı: %q", lines[2])
	}
}

func TestMessagesCSVWithMediaColumn(t *testing.T) {
	rows := []Row{
		{GuestName: "Bo", Message: "selam", CreatedAt: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), MediaKind: "photo"},
	}

	data, err := MessagesCSV(rows, true)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	lines := strings.Split(string(data), "\n")
	if lines[0] != "Guest Name,Message,Date,Media" {
		t.Errorf("medya sütunlu başlık hatalı: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], `,"photo"`) {
		t.Errorf("medya sütunu eksik: %q", lines[1])
	}
}

func TestMessagesCSVEmpty(t *testing.T) {
	if _, err := MessagesCSV(nil, false); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("boş küme ErrNothingToExport döndürmeli, geldi: %v", err)
	}
}
