package exporter

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
)

func TestArchiveFileName(t *testing.T) {
	created := time.Date(2024, 3, 9, 22, 15, 0, 0, time.UTC)

	got := ArchiveFileName("Amy", created, 42, "https://cdn.example.com/media/abc.jpg")
	if want := "Amy-2024-03-09-42.jpg"; got != want {
		t.Errorf("ArchiveFileName = %q, beklenen %q", got, want)
	}

	// Boş ad anonymous olur, uzantısız URL .bin alır
	got = ArchiveFileName("  ", created, 7, "https://cdn.example.com/media/blob")
	if want := "anonymous-2024-03-09-7.bin"; got != want {
		t.Errorf("ArchiveFileName = %q, beklenen %q", got, want)
	}

	// Query string uzantıyı bozmamalı
	got = ArchiveFileName("Bo", created, 9, "https://cdn.example.com/v.mp4?sig=xyz")
	if want := "Bo-2024-03-09-9.mp4"; got != want {
		t.Errorf("ArchiveFileName = %q, beklenen %q", got, want)
	}
}

func TestBuildArchive(t *testing.T) {
	files := []ArchiveFile{
		{Name: "Amy-2024-03-09-1.jpg", Data: []byte("jpegdata")},
		{Name: "anonymous-2024-03-09-2.mp4", Data: []byte("mp4data")},
	}

	data, err := BuildArchive(files)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("üretilen arşiv okunamadı: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("arşivde 2 dosya beklenir, %d var", len(zr.File))
	}
	for i, f := range zr.File {
		if f.Name != files[i].Name {
			t.Errorf("dosya %d adı %q, beklenen %q", i, f.Name, files[i].Name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("arşiv girdisi açılamadı: %v", err)
		}
		content, _ := io.ReadAll(rc)
		rc.Close()
		if !bytes.Equal(content, files[i].Data) {
			t.Errorf("dosya %d içeriği bozulmuş", i)
		}
	}
}

func TestBuildArchiveEmpty(t *testing.T) {
	if _, err := BuildArchive(nil); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("boş küme ErrNothingToExport döndürmeli, geldi: %v", err)
	}
}
