package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"lovelens.link/models"
)

func newTestBoothService() (*BoothService, *fakeBoothRepo, *fakeSubmissionRepo) {
	boothRepo := &fakeBoothRepo{booths: make(map[uint]*models.Booth)}
	subRepo := newFakeSubmissionRepo()
	svc := &BoothService{repo: boothRepo, submissionRepo: subRepo}
	return svc, boothRepo, subRepo
}

func validBoothInput() BoothSettingsInput {
	return BoothSettingsInput{
		CoupleName:         "Ayşe & Mehmet",
		WeddingDate:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Email:              "Cift@Example.com",
		IsPublic:           true,
		RequiresApproval:   true,
		EmailNotifications: true,
	}
}

func TestCreateBoothOnePerOwner(t *testing.T) {
	svc, _, _ := newTestBoothService()

	booth, err := svc.CreateBooth(context.Background(), 10, validBoothInput())
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if booth.Code == "" {
		t.Error("oluşturulan booth'un erişim kodu olmalı")
	}
	if booth.Email != "cift@example.com" {
		t.Errorf("e-posta küçük harfe çevrilmeli: %q", booth.Email)
	}

	if _, err := svc.CreateBooth(context.Background(), 10, validBoothInput()); !errors.Is(err, ErrBoothAlreadyExists) {
		t.Fatalf("ikinci booth ErrBoothAlreadyExists döndürmeli, geldi: %v", err)
	}
}

func TestCreateBoothRetriesOnCodeCollision(t *testing.T) {
	svc, boothRepo, _ := newTestBoothService()
	boothRepo.dupCreates = 2 // ilk iki deneme çakışır

	booth, err := svc.CreateBooth(context.Background(), 10, validBoothInput())
	if err != nil {
		t.Fatalf("çakışma sonrası yeniden deneme başarılı olmalı: %v", err)
	}
	if booth == nil || booth.Code == "" {
		t.Fatal("yeniden denemeyle booth oluşmalı")
	}
}

func TestCreateBoothGivesUpAfterRetries(t *testing.T) {
	svc, boothRepo, _ := newTestBoothService()
	boothRepo.dupCreates = boothCodeRetries + 1

	if _, err := svc.CreateBooth(context.Background(), 10, validBoothInput()); !errors.Is(err, ErrBoothCodeGenFailed) {
		t.Fatalf("sürekli çakışma ErrBoothCodeGenFailed döndürmeli, geldi: %v", err)
	}
}

func TestCreateBoothValidation(t *testing.T) {
	svc, _, _ := newTestBoothService()

	input := validBoothInput()
	input.Email = "gecersiz"
	if _, err := svc.CreateBooth(context.Background(), 10, input); !errors.Is(err, ErrBoothInvalidInput) {
		t.Fatalf("geçersiz e-posta ErrBoothInvalidInput döndürmeli, geldi: %v", err)
	}

	input = validBoothInput()
	input.CoupleName = ""
	if _, err := svc.CreateBooth(context.Background(), 10, input); !errors.Is(err, ErrBoothInvalidInput) {
		t.Fatalf("boş çift adı ErrBoothInvalidInput döndürmeli, geldi: %v", err)
	}
}

func TestUpdateBoothSettingsKeepsCode(t *testing.T) {
	svc, boothRepo, _ := newTestBoothService()
	boothRepo.booths[1] = &models.Booth{
		BaseModel: models.BaseModel{ID: 1}, OwnerUserID: 10,
		CoupleName: "Eski", Code: "AB3KX9",
	}

	input := validBoothInput()
	if err := svc.UpdateBoothSettings(context.Background(), 1, 10, input); err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}

	updated := boothRepo.booths[1]
	if updated.CoupleName != "Ayşe & Mehmet" {
		t.Errorf("çift adı güncellenmeli: %q", updated.CoupleName)
	}
	if updated.Code != "AB3KX9" {
		t.Errorf("erişim kodu asla değişmemeli: %q", updated.Code)
	}
}

func TestUpdateBoothSettingsForbidden(t *testing.T) {
	svc, boothRepo, _ := newTestBoothService()
	boothRepo.booths[1] = &models.Booth{BaseModel: models.BaseModel{ID: 1}, OwnerUserID: 10, Code: "AB3KX9"}

	if err := svc.UpdateBoothSettings(context.Background(), 1, 99, validBoothInput()); !errors.Is(err, ErrBoothForbidden) {
		t.Fatalf("yabancı kullanıcı ErrBoothForbidden almalı, geldi: %v", err)
	}
}

func TestGetBoothByCodeNormalizesInput(t *testing.T) {
	svc, boothRepo, _ := newTestBoothService()
	boothRepo.booths[1] = &models.Booth{BaseModel: models.BaseModel{ID: 1}, OwnerUserID: 10, Code: "AB3KX9"}

	booth, err := svc.GetBoothByCode(context.Background(), "  ab3kx9 ")
	if err != nil {
		t.Fatalf("kod büyük harfe çevrilip kırpılmalı: %v", err)
	}
	if booth.ID != 1 {
		t.Errorf("yanlış booth bulundu: %+v", booth)
	}
}

func TestGetBoothStats(t *testing.T) {
	svc, boothRepo, subRepo := newTestBoothService()
	boothRepo.booths[1] = &models.Booth{BaseModel: models.BaseModel{ID: 1}, OwnerUserID: 10, Code: "AB3KX9"}

	subRepo.subs[1] = &models.Submission{BaseModel: models.BaseModel{ID: 1}, BoothID: 1, Message: "mesaj", MediaURL: "https://cdn.example.com/a.jpg", MediaKind: models.MediaKindPhoto, IsApproved: true}
	subRepo.subs[2] = &models.Submission{BaseModel: models.BaseModel{ID: 2}, BoothID: 1, Message: "  ", MediaURL: "https://cdn.example.com/b.mp4", MediaKind: models.MediaKindVideo, IsApproved: false}
	subRepo.subs[3] = &models.Submission{BaseModel: models.BaseModel{ID: 3}, BoothID: 1, Message: "sadece mesaj", IsApproved: false}
	subRepo.nextID = 4

	stats, err := svc.GetBoothStats(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if stats.TotalPhotos != 1 || stats.TotalVideos != 1 {
		t.Errorf("medya sayıları hatalı: %+v", stats)
	}
	// Mesaj sayısı yalnızca boşluk-dışı mesaj taşıyan kayıtları sayar
	if stats.TotalMessages != 2 {
		t.Errorf("mesaj sayısı 2 olmalı: %+v", stats)
	}
	if stats.PendingApprovals != 2 {
		t.Errorf("bekleyen sayısı 2 olmalı: %+v", stats)
	}
}
