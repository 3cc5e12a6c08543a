package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"lovelens.link/models"
	"lovelens.link/pkg/queryparams"
	"lovelens.link/repositories"

	"gorm.io/gorm"
)

// --- Test fake'leri ---

type fakeBoothRepo struct {
	booths     map[uint]*models.Booth
	dupCreates int // kaç Create çağrısının kod çakışmasıyla düşeceği
}

func (f *fakeBoothRepo) Create(ctx context.Context, booth *models.Booth) error {
	if f.dupCreates > 0 {
		f.dupCreates--
		return gorm.ErrDuplicatedKey
	}
	booth.ID = uint(len(f.booths) + 1)
	if booth.Code == "" {
		booth.Code = fmt.Sprintf("CODE%02d", booth.ID)
	}
	f.booths[booth.ID] = booth
	return nil
}

func (f *fakeBoothRepo) FindByID(ctx context.Context, id uint) (*models.Booth, error) {
	if b, ok := f.booths[id]; ok {
		return b, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeBoothRepo) FindByOwnerUserID(ctx context.Context, ownerUserID uint) (*models.Booth, error) {
	for _, b := range f.booths {
		if b.OwnerUserID == ownerUserID {
			return b, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeBoothRepo) FindByCode(ctx context.Context, code string) (*models.Booth, error) {
	for _, b := range f.booths {
		if b.Code == code {
			return b, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeBoothRepo) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Booth, int64, error) {
	return nil, 0, nil
}

func (f *fakeBoothRepo) Update(ctx context.Context, booth *models.Booth) error { return nil }

func (f *fakeBoothRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.booths)), nil
}

type fakeSubmissionRepo struct {
	subs        map[uint]*models.Submission
	nextID      uint
	updateCalls int
	failCreate  bool
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{subs: make(map[uint]*models.Submission), nextID: 1}
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, s *models.Submission) error {
	if f.failCreate {
		return errors.New("kayıt hatası")
	}
	s.ID = f.nextID
	f.nextID++
	copied := *s
	f.subs[s.ID] = &copied
	return nil
}

func (f *fakeSubmissionRepo) FindByID(ctx context.Context, id uint) (*models.Submission, error) {
	if s, ok := f.subs[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeSubmissionRepo) FindAllByBoothID(ctx context.Context, boothID uint) ([]models.Submission, error) {
	var out []models.Submission
	for id := uint(1); id < f.nextID; id++ {
		if s, ok := f.subs[id]; ok && s.BoothID == boothID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) FindRecentApproved(ctx context.Context, boothID uint, limit int) ([]models.Submission, error) {
	all, _ := f.FindAllByBoothID(ctx, boothID)
	var out []models.Submission
	for _, s := range all {
		if s.IsApproved {
			out = append(out, s)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) Update(ctx context.Context, s *models.Submission) error {
	f.updateCalls++
	if _, ok := f.subs[s.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *s
	f.subs[s.ID] = &copied
	return nil
}

func (f *fakeSubmissionRepo) Delete(ctx context.Context, s *models.Submission, deletedByUserID uint) error {
	if _, ok := f.subs[s.ID]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.subs, s.ID)
	return nil
}

func (f *fakeSubmissionRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.subs)), nil
}

type fakeMediaService struct {
	uploads         []string
	deletes         []string
	failContentType string
	failDelete      bool
	fetchFailURL    string
}

func (f *fakeMediaService) NewObjectKey(originalName string) string {
	return "guest-media/test-" + originalName
}

func (f *fakeMediaService) Upload(ctx context.Context, objectKey string, r io.Reader, contentType string) (string, error) {
	if contentType == f.failContentType && f.failContentType != "" {
		return "", ErrMediaUploadFailed
	}
	f.uploads = append(f.uploads, objectKey)
	return "https://cdn.example.com/" + objectKey, nil
}

func (f *fakeMediaService) Delete(ctx context.Context, objectKey string) error {
	if f.failDelete {
		return ErrMediaDeleteFailed
	}
	f.deletes = append(f.deletes, objectKey)
	return nil
}

func (f *fakeMediaService) Fetch(ctx context.Context, publicURL string) ([]byte, error) {
	if publicURL == f.fetchFailURL && f.fetchFailURL != "" {
		return nil, ErrMediaFetchFailed
	}
	return []byte("media:" + publicURL), nil
}

func (f *fakeMediaService) ObjectKeyFromURL(publicURL string) string {
	const prefix = "https://cdn.example.com/"
	if len(publicURL) > len(prefix) && publicURL[:len(prefix)] == prefix {
		return publicURL[len(prefix):]
	}
	return ""
}

type fakeNotifier struct {
	notices []SubmissionNotice
}

func (f *fakeNotifier) NotifySubmission(notice SubmissionNotice) {
	f.notices = append(f.notices, notice)
}

// --- Kurulum ---

func newTestSubmissionService() (*SubmissionService, *fakeBoothRepo, *fakeSubmissionRepo, *fakeMediaService, *fakeNotifier) {
	boothRepo := &fakeBoothRepo{booths: map[uint]*models.Booth{
		1: {
			BaseModel:          models.BaseModel{ID: 1},
			OwnerUserID:        10,
			CoupleName:         "Ayşe & Mehmet",
			WeddingDate:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			Email:              "cift@example.com",
			Code:               "AB3KX9",
			RequiresApproval:   true,
			EmailNotifications: true,
		},
	}}
	subRepo := newFakeSubmissionRepo()
	media := &fakeMediaService{}
	notifier := &fakeNotifier{}

	svc := &SubmissionService{
		repo:        subRepo,
		boothRepo:   boothRepo,
		media:       media,
		notifier:    notifier,
		maxUploadMB: DefaultMaxUploadMB,
	}
	return svc, boothRepo, subRepo, media, notifier
}

func draftFile(name, contentType string, size int64) DraftFile {
	return DraftFile{
		Name:        name,
		Size:        size,
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader([]byte("data"))), nil
		},
	}
}

// --- Testler ---

func TestCreateSubmissionsRequiresMessage(t *testing.T) {
	svc, _, _, _, notifier := newTestSubmissionService()

	_, err := svc.CreateSubmissions(context.Background(), "AB3KX9", SubmissionDraft{Message: "   "})
	if !errors.Is(err, ErrSubmissionMessageMissing) {
		t.Fatalf("boş mesaj ErrSubmissionMessageMissing döndürmeli, geldi: %v", err)
	}
	if len(notifier.notices) != 0 {
		t.Error("geçersiz gönderim bildirim tetiklememeli")
	}
}

func TestCreateSubmissionsMessageOnly(t *testing.T) {
	svc, _, subRepo, _, notifier := newTestSubmissionService()

	outcome, err := svc.CreateSubmissions(context.Background(), "AB3KX9", SubmissionDraft{
		GuestName: "Amy",
		Message:   "Tebrikler!",
	})
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if len(outcome.Created) != 1 {
		t.Fatalf("1 kayıt beklenir, %d oluştu", len(outcome.Created))
	}
	// Onay gerektiren booth'ta kayıt pending başlar
	if outcome.Created[0].IsApproved || !outcome.Pending {
		t.Error("onay gerektiren booth'ta kayıt pending başlamalı")
	}
	if len(subRepo.subs) != 1 {
		t.Fatalf("repo'da 1 kayıt beklenir, %d var", len(subRepo.subs))
	}

	if len(notifier.notices) != 1 {
		t.Fatalf("1 bildirim beklenir, %d gitti", len(notifier.notices))
	}
	notice := notifier.notices[0]
	if notice.Recipient != "cift@example.com" || notice.HasMedia {
		t.Errorf("bildirim içeriği hatalı: %+v", notice)
	}
}

func TestCreateSubmissionsFileFailureIsIsolated(t *testing.T) {
	svc, _, subRepo, media, notifier := newTestSubmissionService()
	media.failContentType = "video/mp4"

	outcome, err := svc.CreateSubmissions(context.Background(), "AB3KX9", SubmissionDraft{
		GuestName: "Bo",
		Message:   "Harika bir gündü",
		Files: []DraftFile{
			draftFile("a.jpg", "image/jpeg", 1024),
			draftFile("b.mp4", "video/mp4", 2048),
		},
	})
	if err != nil {
		t.Fatalf("tek dosya hatası gönderimi komple düşürmemeli: %v", err)
	}
	if len(outcome.Created) != 1 {
		t.Fatalf("1 kayıt beklenir, %d oluştu", len(outcome.Created))
	}
	if outcome.Created[0].MediaKind != models.MediaKindPhoto {
		t.Errorf("oluşan kayıt fotoğraf olmalı: %+v", outcome.Created[0])
	}

	var failed int
	for _, r := range outcome.FileResults {
		if r.Err != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("1 dosya hatası beklenir, %d var", failed)
	}
	if len(subRepo.subs) != 1 {
		t.Errorf("repo'da 1 kayıt beklenir, %d var", len(subRepo.subs))
	}

	// Bildirim misafir gönderimi başına bir kez, HasMedia dosya varlığına bakar
	if len(notifier.notices) != 1 || !notifier.notices[0].HasMedia {
		t.Errorf("tek HasMedia=true bildirimi beklenir: %+v", notifier.notices)
	}
}

func TestCreateSubmissionsFileTooLarge(t *testing.T) {
	svc, _, subRepo, _, _ := newTestSubmissionService()

	_, err := svc.CreateSubmissions(context.Background(), "AB3KX9", SubmissionDraft{
		Message: "mesaj",
		Files:   []DraftFile{draftFile("big.jpg", "image/jpeg", 11*1024*1024)},
	})
	if !errors.Is(err, ErrSubmissionFileTooLarge) {
		t.Fatalf("limit üstü dosya ErrSubmissionFileTooLarge döndürmeli, geldi: %v", err)
	}
	if len(subRepo.subs) != 0 {
		t.Error("limit kontrolü hiçbir kayıt oluşmadan yapılmalı")
	}
}

func TestCreateSubmissionsUnsupportedMedia(t *testing.T) {
	svc, _, _, _, _ := newTestSubmissionService()

	_, err := svc.CreateSubmissions(context.Background(), "AB3KX9", SubmissionDraft{
		Message: "mesaj",
		Files:   []DraftFile{draftFile("doc.pdf", "application/pdf", 100)},
	})
	if !errors.Is(err, ErrSubmissionMediaRejected) {
		t.Fatalf("desteklenmeyen tür ErrSubmissionMediaRejected döndürmeli, geldi: %v", err)
	}
}

func TestCreateSubmissionsAutoApproveWithoutModeration(t *testing.T) {
	svc, boothRepo, _, _, _ := newTestSubmissionService()
	boothRepo.booths[1].RequiresApproval = false

	outcome, err := svc.CreateSubmissions(context.Background(), "AB3KX9", SubmissionDraft{Message: "selam"})
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if !outcome.Created[0].IsApproved || outcome.Pending {
		t.Error("moderasyonsuz booth'ta kayıt doğrudan onaylı olmalı")
	}
}

func TestApproveSubmissionIdempotent(t *testing.T) {
	svc, _, subRepo, _, _ := newTestSubmissionService()
	subRepo.subs[1] = &models.Submission{BaseModel: models.BaseModel{ID: 1}, BoothID: 1, Message: "m", IsApproved: true}
	subRepo.nextID = 2

	sub, err := svc.ApproveSubmission(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if !sub.IsApproved {
		t.Error("kayıt onaylı kalmalı")
	}
	if subRepo.updateCalls != 0 {
		t.Errorf("zaten onaylı kayıtta yazma yapılmamalı, %d update çağrıldı", subRepo.updateCalls)
	}
}

func TestApproveSubmissionForbiddenForOtherOwner(t *testing.T) {
	svc, _, subRepo, _, _ := newTestSubmissionService()
	subRepo.subs[1] = &models.Submission{BaseModel: models.BaseModel{ID: 1}, BoothID: 1, Message: "m"}
	subRepo.nextID = 2

	if _, err := svc.ApproveSubmission(context.Background(), 1, 99); !errors.Is(err, ErrSubmissionForbidden) {
		t.Fatalf("yabancı kullanıcı ErrSubmissionForbidden almalı, geldi: %v", err)
	}
}

func TestDeleteSubmissionBestEffortMedia(t *testing.T) {
	svc, _, subRepo, media, _ := newTestSubmissionService()
	media.failDelete = true
	subRepo.subs[1] = &models.Submission{
		BaseModel: models.BaseModel{ID: 1}, BoothID: 1,
		MediaURL: "https://cdn.example.com/guest-media/x.jpg", MediaKind: models.MediaKindPhoto,
	}
	subRepo.nextID = 2

	if err := svc.DeleteSubmission(context.Background(), 1, 10); err != nil {
		t.Fatalf("depolama hatası kaydın silinmesini engellememeli: %v", err)
	}
	if _, ok := subRepo.subs[1]; ok {
		t.Error("kayıt silinmeli")
	}
}

func TestBulkApprovePartialFailure(t *testing.T) {
	svc, _, subRepo, _, _ := newTestSubmissionService()
	for i := uint(1); i <= 4; i++ {
		subRepo.subs[i] = &models.Submission{BaseModel: models.BaseModel{ID: i}, BoothID: 1, Message: fmt.Sprintf("m%d", i)}
	}
	subRepo.nextID = 5

	// 99 mevcut değil, diğerleri onaylanmalı
	outcome, err := svc.BulkApprove(context.Background(), 1, 10, []uint{1, 2, 3, 4, 99})
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if outcome.Requested != 5 || outcome.Succeeded != 4 || outcome.Failed != 1 {
		t.Fatalf("sonuç özeti hatalı: %+v", outcome)
	}
	if _, ok := outcome.Errors[99]; !ok {
		t.Error("hatalı ID sonuçta raporlanmalı")
	}
	for i := uint(1); i <= 4; i++ {
		if !subRepo.subs[i].IsApproved {
			t.Errorf("kayıt %d onaylanmalıydı", i)
		}
	}
}

func TestBulkDeleteEmptySelection(t *testing.T) {
	svc, _, _, _, _ := newTestSubmissionService()

	outcome, err := svc.BulkDelete(context.Background(), 1, 10, nil)
	if err != nil {
		t.Fatalf("boş seçim hata olmamalı: %v", err)
	}
	if outcome.Requested != 0 || outcome.Succeeded != 0 || outcome.Failed != 0 {
		t.Fatalf("boş seçimde özet sıfır olmalı: %+v", outcome)
	}
}

func TestListPublicSubmissionsHiddenBooth(t *testing.T) {
	svc, boothRepo, subRepo, _, _ := newTestSubmissionService()
	boothRepo.booths[1].IsPublic = false
	subRepo.subs[1] = &models.Submission{
		BaseModel: models.BaseModel{ID: 1}, BoothID: 1,
		MediaURL: "https://cdn.example.com/a.jpg", MediaKind: models.MediaKindPhoto, IsApproved: true,
	}
	subRepo.nextID = 2

	subs, err := svc.ListPublicSubmissions(context.Background(), "AB3KX9")
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if len(subs) != 0 {
		t.Error("gizli booth'ta public galeri boş olmalı")
	}
}

func TestListPublicSubmissionsApprovedMediaOnly(t *testing.T) {
	svc, boothRepo, subRepo, _, _ := newTestSubmissionService()
	boothRepo.booths[1].IsPublic = true
	subRepo.subs[1] = &models.Submission{BaseModel: models.BaseModel{ID: 1}, BoothID: 1, MediaURL: "https://cdn.example.com/a.jpg", MediaKind: models.MediaKindPhoto, IsApproved: true}
	subRepo.subs[2] = &models.Submission{BaseModel: models.BaseModel{ID: 2}, BoothID: 1, MediaURL: "https://cdn.example.com/b.jpg", MediaKind: models.MediaKindPhoto, IsApproved: false}
	subRepo.subs[3] = &models.Submission{BaseModel: models.BaseModel{ID: 3}, BoothID: 1, Message: "sadece mesaj", IsApproved: true}
	subRepo.nextID = 4

	subs, err := svc.ListPublicSubmissions(context.Background(), "AB3KX9")
	if err != nil {
		t.Fatalf("beklenmeyen hata: %v", err)
	}
	if len(subs) != 1 || subs[0].ID != 1 {
		t.Fatalf("yalnızca onaylı medya görünmeli, geldi: %+v", subs)
	}
}
