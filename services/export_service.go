package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"lovelens.link/configs/configslog"
	"lovelens.link/models"
	"lovelens.link/pkg/exporter"
	"lovelens.link/repositories"

	"go.uber.org/zap"
)

// ExportServiceError özel servis hataları
type ExportServiceError string

func (e ExportServiceError) Error() string { return string(e) }

const (
	ErrExportNothing ExportServiceError = "dışa aktarılacak kayıt yok"
	ErrExportFailed  ExportServiceError = "dışa aktarma başarısız oldu"
)

// Arşiv indirmede eşzamanlı medya getirme sayısı.
const archiveFetchWorkers = 4

// CSVResult hazırlanan tablo dosyası.
type CSVResult struct {
	FileName string
	Data     []byte
}

// ArchiveResult hazırlanan ZIP arşivi. Included, Requested'dan küçük
// olabilir: getirilemeyen medya atlanır, arşiv yine de üretilir.
type ArchiveResult struct {
	FileName  string
	Data      []byte
	Included  int
	Requested int
}

// IExportService dışa aktarma işlemleri için arayüz.
type IExportService interface {
	ExportGuestbookCSV(ctx context.Context, boothID, requestingUserID uint) (*CSVResult, error)
	ExportMediaArchive(ctx context.Context, boothID, requestingUserID uint, ids []uint) (*ArchiveResult, error)
}

// ExportService IExportService arayüzünü uygular.
type ExportService struct {
	repo      repositories.ISubmissionRepository
	boothRepo repositories.IBoothRepository
	media     IMediaService
}

// NewExportService yeni bir ExportService örneği oluşturur.
func NewExportService() IExportService {
	return &ExportService{
		repo:      repositories.NewSubmissionRepository(),
		boothRepo: repositories.NewBoothRepository(),
		media:     NewMediaService(),
	}
}

// ExportGuestbookCSV onaylı ve mesajı dolu gönderimleri CSV'ye döker.
func (s *ExportService) ExportGuestbookCSV(ctx context.Context, boothID, requestingUserID uint) (*CSVResult, error) {
	booth, err := s.ownedBooth(ctx, boothID, requestingUserID)
	if err != nil {
		return nil, err
	}

	subs, err := s.repo.FindAllByBoothID(ctx, boothID)
	if err != nil {
		return nil, err
	}

	rows := make([]exporter.Row, 0, len(subs))
	for _, sub := range subs {
		if !sub.IsApproved || !sub.HasMessage() {
			continue
		}
		rows = append(rows, exporter.Row{
			GuestName: sub.GuestName,
			Message:   sub.Message,
			CreatedAt: sub.CreatedAt,
			MediaKind: string(sub.MediaKind),
		})
	}

	data, err := exporter.MessagesCSV(rows, false)
	if err != nil {
		if errors.Is(err, exporter.ErrNothingToExport) {
			return nil, ErrExportNothing
		}
		return nil, ErrExportFailed
	}

	result := &CSVResult{
		FileName: exportFileName(booth.CoupleName, "guestbook", "csv"),
		Data:     data,
	}
	configslog.SLog.Infof("Anı defteri dışa aktarıldı: Booth %d, %d satır", boothID, len(rows))
	return result, nil
}

// ExportMediaArchive seçili medya gönderimlerini tek ZIP'te toplar.
// ids boşsa booth'un tüm medya gönderimleri alınır. Medya getirme
// sınırlı işçi havuzuyla yürür; tekil hata atlanır ve loglanır, hiçbir
// dosya getirilemezse işlem bütünüyle başarısız sayılır.
func (s *ExportService) ExportMediaArchive(ctx context.Context, boothID, requestingUserID uint, ids []uint) (*ArchiveResult, error) {
	booth, err := s.ownedBooth(ctx, boothID, requestingUserID)
	if err != nil {
		return nil, err
	}

	subs, err := s.repo.FindAllByBoothID(ctx, boothID)
	if err != nil {
		return nil, err
	}

	wanted := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	targets := make([]models.Submission, 0, len(subs))
	for _, sub := range subs {
		if !sub.HasMedia() {
			continue
		}
		if len(wanted) > 0 {
			if _, ok := wanted[sub.ID]; !ok {
				continue
			}
		}
		targets = append(targets, sub)
	}
	if len(targets) == 0 {
		return nil, ErrExportNothing
	}

	files := s.fetchArchiveFiles(ctx, targets)
	if len(files) == 0 {
		configslog.Log.Error("ExportMediaArchive: hiçbir medya getirilemedi",
			zap.Uint("boothID", boothID), zap.Int("requested", len(targets)))
		return nil, ErrExportFailed
	}

	data, err := exporter.BuildArchive(files)
	if err != nil {
		return nil, ErrExportFailed
	}

	result := &ArchiveResult{
		FileName:  exportFileName(booth.CoupleName, "submissions", "zip"),
		Data:      data,
		Included:  len(files),
		Requested: len(targets),
	}
	configslog.SLog.Infof("Medya arşivi hazırlandı: Booth %d, %d/%d dosya", boothID, result.Included, result.Requested)
	return result, nil
}

// fetchArchiveFiles medyaları getirir, giriş sırasını korur.
func (s *ExportService) fetchArchiveFiles(ctx context.Context, targets []models.Submission) []exporter.ArchiveFile {
	fetched := make([]*exporter.ArchiveFile, len(targets))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < archiveFetchWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				sub := targets[i]
				data, err := s.media.Fetch(ctx, sub.MediaURL)
				if err != nil {
					configslog.SLog.Warnf("Medya getirilemedi, arşivden atlanıyor: ID %d (%v)", sub.ID, err)
					continue
				}
				fetched[i] = &exporter.ArchiveFile{
					Name: exporter.ArchiveFileName(sub.GuestName, sub.CreatedAt, sub.ID, sub.MediaURL),
					Data: data,
				}
			}
		}()
	}
	for i := range targets {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	files := make([]exporter.ArchiveFile, 0, len(targets))
	for _, f := range fetched {
		if f != nil {
			files = append(files, *f)
		}
	}
	return files
}

// exportFileName indirilen dosyanın adını üretir:
// {çiftAdı}-{tür}-{bugün}.{uzantı}
func exportFileName(coupleName, kind, ext string) string {
	name := strings.TrimSpace(coupleName)
	if name == "" {
		name = "booth"
	}
	return fmt.Sprintf("%s-%s-%s.%s", name, kind, time.Now().UTC().Format("2006-01-02"), ext)
}

func (s *ExportService) ownedBooth(ctx context.Context, boothID, requestingUserID uint) (*models.Booth, error) {
	booth, err := s.boothRepo.FindByID(ctx, boothID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBoothNotFound
		}
		return nil, err
	}
	if booth.OwnerUserID != requestingUserID {
		return nil, ErrSubmissionForbidden
	}
	return booth, nil
}

var _ IExportService = (*ExportService)(nil)
