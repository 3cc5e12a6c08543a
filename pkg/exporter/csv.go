package exporter

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNothingToExport filtrelenmiş küme boş olduğunda döner; boş dosya
// üretmek yerine çağırana "dışa aktarılacak bir şey yok" sinyali verilir.
var ErrNothingToExport = errors.New("dışa aktarılacak kayıt yok")

// AnonymousGuestName misafir adı boş olduğunda tabloda kullanılan değer.
const AnonymousGuestName = "Anonymous"

// Row tablo dışa aktarımının tek satırı.
type Row struct {
	GuestName string
	Message   string
	CreatedAt time.Time
	MediaKind string
}

// MessagesCSV satırları virgülle ayrılmış metne çevirir. Her alan çift
// tırnak içine alınır, alan içindeki tırnaklar ikilenir. Sütun sırası
// sabittir: Guest Name, Message, Date ve (istenirse) Media.
//
// encoding/csv kullanılmaz: o yalnızca gerektiğinde tırnaklar, buradaki
// format ise her alanı tırnaklar.
func MessagesCSV(rows []Row, withMediaKind bool) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNothingToExport
	}

	header := "Guest Name,Message,Date"
	if withMediaKind {
		header += ",Media"
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, header)
	for _, r := range rows {
		name := r.GuestName
		if name == "" {
			name = AnonymousGuestName
		}
		fields := []string{
			quoteField(name),
			quoteField(r.Message),
			quoteField(formatDate(r.CreatedAt)),
		}
		if withMediaKind {
			fields = append(fields, quoteField(r.MediaKind))
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	return []byte(strings.Join(lines, "\n")), nil
}

// quoteField alanı tırnaklar, içerideki tırnakları ikiler.
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// formatDate takvim tarihini M/D/YYYY olarak yazar (baştaki sıfırlar yok).
func formatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}
