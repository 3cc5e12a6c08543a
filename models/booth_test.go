package models

import (
	"strings"
	"testing"
)

func TestGenerateBoothCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := GenerateBoothCode()
		if err != nil {
			t.Fatalf("beklenmeyen hata: %v", err)
		}
		if len(code) != BoothCodeLength {
			t.Fatalf("kod uzunluğu %d, beklenen %d: %q", len(code), BoothCodeLength, code)
		}
		for _, r := range code {
			if !strings.ContainsRune(boothCodeAlphabet, r) {
				t.Fatalf("kod alfabe dışı karakter içeriyor: %q", code)
			}
		}
		seen[code] = struct{}{}
	}
	// 100 üretimde ciddi tekrar, üretecin bozulduğuna işaret eder
	if len(seen) < 90 {
		t.Errorf("100 kodun yalnızca %d tanesi benzersiz", len(seen))
	}
}
