package testutil

import (
	"fmt"
	"slices"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/carousel"
	kycdomain "github.com/preston-bernstein/ops-console-service/internal/domain/kyc"
)

// SampleEntries returns n dense carousel entries with ids "1".."n". Positions listed in
// hidden are marked not visible.
func SampleEntries(n int, hidden ...int) []domain.Entry {
	out := make([]domain.Entry, n)
	for i := range out {
		pos := i + 1
		e := domain.NewDefaultEntry(fmt.Sprint(pos), pos)
		e.Header = fmt.Sprintf("Entry %d", pos)
		e.Visible = !slices.Contains(hidden, pos)
		out[i] = e
	}
	return out
}

// SamplePurposes returns two verification purposes: one with a preselected document and one
// without documents.
func SamplePurposes() []kycdomain.Purpose {
	return []kycdomain.Purpose{
		{
			ID:    "1",
			Label: "Proof of Identity",
			Documents: []kycdomain.Document{
				{ID: "11", Label: "Passport", IsSelected: true},
				{ID: "12", Label: "National ID Card"},
			},
		},
		{ID: "3", Label: "Selfie", Documents: []kycdomain.Document{}},
	}
}

// SampleChannels returns notification channels with the first one preselected.
func SampleChannels() []kycdomain.Channel {
	return []kycdomain.Channel{
		{ID: "1", Label: "Email", IsSelected: true},
		{ID: "2", Label: "SMS"},
	}
}
