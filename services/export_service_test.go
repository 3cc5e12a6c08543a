package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lovelens.link/models"

	"github.com/klauspost/compress/zip"
)

func newTestExportService() (*ExportService, *fakeBoothRepo, *fakeSubmissionRepo, *fakeMediaService) {
	svc, boothRepo, subRepo, media, _ := newTestSubmissionService()
	exp := &ExportService{
		repo:      svc.repo,
		boothRepo: svc.boothRepo,
		media:     svc.media,
	}
	return exp, boothRepo, subRepo, media
}

func TestExportGuestbookCSVApprovedMessagesOnly(t *testing.T) {
	exp, _, subRepo, _ := newTestExportService()
	created := time.Date(2024, 7, 4, 12, 0, 0, 0, time.UTC)
	subRepo.subs[1] = &models.Submission{BaseModel: models.BaseModel{ID: 1, CreatedAt: created}, BoothID: 1, GuestName: "Amy", Message: "Tebrikler", IsApproved: true}
	subRepo.subs[2] = &models.Submission{BaseModel: models.BaseModel{ID: 2, CreatedAt: created}, BoothID: 1, GuestName: "Bo", Message: "Bekleyen mesaj", IsApproved: false}
	subRepo.subs[3] = &models.Submission{BaseModel: models.BaseModel{ID: 3, CreatedAt: created}, BoothID: 1, GuestName: "Cem", Message: "  ", MediaURL: "https://cdn.example.com/c.jpg", MediaKind: models.MediaKindPhoto, IsApproved: true}
	subRepo.nextID = 4

	result, err := exp.ExportGuestbookCSV(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}

	lines := strings.Split(string(result.Data), "\n")
	// Başlık + yalnızca onaylı ve mesajlı tek kayıt
	if len(lines) != 2 {
		t.Fatalf("2 satır beklenir, %d geldi: %q", len(lines), result.Data)
	}
	if !strings.Contains(lines[1], `"Amy"`) {
		t.Errorf("satırda Amy beklenir: %q", lines[1])
	}
	if !strings.HasPrefix(result.FileName, "Ayşe & Mehmet-guestbook-") || !strings.HasSuffix(result.FileName, ".csv") {
		t.Errorf("dosya adı hatalı: %q", result.FileName)
	}
}

func TestExportGuestbookCSVNothing(t *testing.T) {
	exp, _, _, _ := newTestExportService()

	if _, err := exp.ExportGuestbookCSV(context.Background(), 1, 10); !errors.Is(err, ErrExportNothing) {
		t.Fatalf("boş defter ErrExportNothing döndürmeli, geldi: %v", err)
	}
}

func TestExportMediaArchiveSkipsFailedFetches(t *testing.T) {
	exp, _, subRepo, media := newTestExportService()
	created := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)
	for i := uint(1); i <= 3; i++ {
		subRepo.subs[i] = &models.Submission{
			BaseModel: models.BaseModel{ID: i, CreatedAt: created}, BoothID: 1,
			GuestName: "Amy", MediaURL: "https://cdn.example.com/guest-media/" + string(rune('a'+i-1)) + ".jpg",
			MediaKind: models.MediaKindPhoto, IsApproved: true,
		}
	}
	subRepo.nextID = 4
	media.fetchFailURL = "https://cdn.example.com/guest-media/b.jpg"

	result, err := exp.ExportMediaArchive(context.Background(), 1, 10, nil)
	if err != nil {
		t.Fatalf("tekil getirme hatası arşivi düşürmemeli: %v", err)
	}
	if result.Requested != 3 || result.Included != 2 {
		t.Fatalf("3 istenen, 2 dahil beklenir: %+v", result)
	}

	zr, err := zip.NewReader(bytes.NewReader(result.Data), int64(len(result.Data)))
	if err != nil {
		t.Fatalf("arşiv okunamadı: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("arşivde 2 dosya beklenir, %d var", len(zr.File))
	}
	if !strings.HasSuffix(result.FileName, ".zip") {
		t.Errorf("dosya adı .zip ile bitmeli: %q", result.FileName)
	}
}

func TestExportMediaArchiveSelection(t *testing.T) {
	exp, _, subRepo, _ := newTestExportService()
	created := time.Now()
	subRepo.subs[1] = &models.Submission{BaseModel: models.BaseModel{ID: 1, CreatedAt: created}, BoothID: 1, MediaURL: "https://cdn.example.com/a.jpg", MediaKind: models.MediaKindPhoto}
	subRepo.subs[2] = &models.Submission{BaseModel: models.BaseModel{ID: 2, CreatedAt: created}, BoothID: 1, MediaURL: "https://cdn.example.com/b.jpg", MediaKind: models.MediaKindPhoto}
	subRepo.nextID = 3

	result, err := exp.ExportMediaArchive(context.Background(), 1, 10, []uint{2})
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if result.Requested != 1 || result.Included != 1 {
		t.Fatalf("seçim tek kayda inmeli: %+v", result)
	}
}

func TestExportMediaArchiveAllFetchesFail(t *testing.T) {
	exp, _, subRepo, media := newTestExportService()
	subRepo.subs[1] = &models.Submission{BaseModel: models.BaseModel{ID: 1}, BoothID: 1, MediaURL: "https://cdn.example.com/a.jpg", MediaKind: models.MediaKindPhoto}
	subRepo.nextID = 2
	media.fetchFailURL = "https://cdn.example.com/a.jpg"

	if _, err := exp.ExportMediaArchive(context.Background(), 1, 10, nil); !errors.Is(err, ErrExportFailed) {
		t.Fatalf("hiç dosya getirilemezse ErrExportFailed beklenir, geldi: %v", err)
	}
}

func TestExportMediaArchiveNothingRequested(t *testing.T) {
	exp, _, subRepo, _ := newTestExportService()
	subRepo.subs[1] = &models.Submission{BaseModel: models.BaseModel{ID: 1}, BoothID: 1, Message: "sadece mesaj"}
	subRepo.nextID = 2

	if _, err := exp.ExportMediaArchive(context.Background(), 1, 10, nil); !errors.Is(err, ErrExportNothing) {
		t.Fatalf("medyasız booth ErrExportNothing döndürmeli, geldi: %v", err)
	}
}
