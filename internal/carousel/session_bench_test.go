package carousel

import (
	"fmt"
	"testing"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/carousel"
)

func benchEntries(n int) []domain.Entry {
	out := make([]domain.Entry, n)
	for i := range out {
		out[i] = domain.NewDefaultEntry(fmt.Sprint(i+1), i+1)
	}
	return out
}

func BenchmarkSessionReorderWithPromotion(b *testing.B) {
	entries := benchEntries(domain.MaxPositions)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := NewSession(entries)
		if _, err := s.Reorder("1", domain.BackupSectionID); err != nil {
			b.Fatalf("reorder: %v", err)
		}
	}
}
