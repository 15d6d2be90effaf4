package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appcarousel "github.com/preston-bernstein/ops-console-service/internal/app/carousel"
	"github.com/preston-bernstein/ops-console-service/internal/store"
	"github.com/preston-bernstein/ops-console-service/internal/testutil"
)

func BenchmarkCarouselReorder(b *testing.B) {
	svc := appcarousel.NewService(store.NewSessionStore(), fixedSeed(testutil.SampleEntries(12, 8)), nil, nil)
	mux := http.NewServeMux()
	NewCarouselHandler(svc, nil).Register(mux)

	rr := testutil.Serve(mux, http.MethodPost, "/carousel/sessions", nil)
	var view appcarousel.View
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		b.Fatalf("open: %v", err)
	}
	path := "/carousel/sessions/" + view.ID + "/reorder"
	bodies := []string{`{"draggedId":"1","targetId":"2"}`, `{"draggedId":"2","targetId":"1"}`}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(bodies[i%2]))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}
