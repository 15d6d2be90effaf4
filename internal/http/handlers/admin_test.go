package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/ops-console-service/internal/admin"
	domain "github.com/preston-bernstein/ops-console-service/internal/domain/admin"
	"github.com/preston-bernstein/ops-console-service/internal/testutil"
)

func adminMux(token string) *http.ServeMux {
	mux := http.NewServeMux()
	NewAdminHandler(admin.NewRegistry([]string{"Pinacle888", "Other"}, nil), token, nil).Register(mux)
	return mux
}

func authed(method, path, body, token string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminCatalogIsPublic(t *testing.T) {
	mux := adminMux("secret")

	rr := testutil.Serve(mux, http.MethodGet, "/admin/catalog", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var c domain.Catalog
	testutil.DecodeJSON(t, rr, &c)
	if c.Brand != admin.DefaultBrand || len(c.Purposes) != 3 {
		t.Fatalf("unexpected catalog %+v", c)
	}

	rr = testutil.Serve(mux, http.MethodGet, "/admin/catalog?brand=Unknown", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	rr = testutil.Serve(mux, http.MethodGet, "/admin/brands", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestAdminWritesRequireToken(t *testing.T) {
	mux := adminMux("secret")
	rr := testutil.ServeRequest(mux, authed(http.MethodPost, "/admin/catalog/cancelReasons", `{"name":"x"}`, ""))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	rr = testutil.ServeRequest(mux, authed(http.MethodPost, "/admin/catalog/cancelReasons", `{"name":"x"}`, "wrong"))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	open := adminMux("")
	rr = testutil.ServeRequest(open, authed(http.MethodPost, "/admin/catalog/cancelReasons", `{"name":"x"}`, "anything"))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminAddUpdateToggle(t *testing.T) {
	mux := adminMux("secret")

	rr := testutil.ServeRequest(mux, authed(http.MethodPost, "/admin/catalog/documentTypes?brand=Other", `{"name":"Lease","purpose":"POA"}`, "secret"))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var created map[string]string
	testutil.DecodeJSON(t, rr, &created)
	if created["id"] == "" {
		t.Fatalf("expected generated id")
	}

	rr = testutil.ServeRequest(mux, authed(http.MethodPost, "/admin/catalog/documentTypes?brand=Other", `{"name":"lease"}`, "secret"))
	testutil.AssertErrorCode(t, rr, http.StatusConflict, "duplicate")

	rr = testutil.ServeRequest(mux, authed(http.MethodPatch, "/admin/catalog/documentTypes/"+created["id"]+"?brand=Other", `{"status":"INACTIVE"}`, "secret"))
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = testutil.Serve(mux, http.MethodGet, "/admin/catalog?brand=Other", nil)
	var c domain.Catalog
	testutil.DecodeJSON(t, rr, &c)
	if c.DocumentTypes[0].ID != created["id"] || c.DocumentTypes[0].Status != domain.StatusInactive {
		t.Fatalf("unexpected document types %+v", c.DocumentTypes)
	}

	rr = testutil.ServeRequest(mux, authed(http.MethodPost, "/admin/catalog/notifications/2/toggle", "", "secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	var toggled map[string]bool
	testutil.DecodeJSON(t, rr, &toggled)
	if !toggled["checked"] {
		t.Fatalf("expected option switched on")
	}
}

func TestAdminErrorMapping(t *testing.T) {
	mux := adminMux("secret")
	cases := []struct {
		req  *http.Request
		want int
	}{
		{authed(http.MethodPost, "/admin/catalog/cancelReasons", `{"name":"  "}`, "secret"), http.StatusBadRequest},
		{authed(http.MethodPost, "/admin/catalog/purposes", `{"name":"New"}`, "secret"), http.StatusBadRequest},
		{authed(http.MethodPost, "/admin/catalog/widgets", `{"name":"New"}`, "secret"), http.StatusNotFound},
		{authed(http.MethodPatch, "/admin/catalog/cancelReasons/404", `{}`, "secret"), http.StatusNotFound},
		{authed(http.MethodPatch, "/admin/catalog/cancelReasons/1", `{"unknown":1}`, "secret"), http.StatusBadRequest},
		{authed(http.MethodPost, "/admin/catalog/cancelReasons/1/toggle", "", "secret"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		rr := testutil.ServeRequest(mux, tc.req)
		if rr.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d (%s)", tc.req.Method, tc.req.URL, tc.want, rr.Code, rr.Body.String())
		}
	}
}
