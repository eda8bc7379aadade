package storefront_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"wemint/internal/catalog"
	"wemint/internal/checkout"
	"wemint/internal/storefront"
)

type testApp struct {
	ts       *httptest.Server
	store    *catalog.Store
	checkout *checkout.Service
}

func newTestApp(t *testing.T, deps storefront.HTTPDeps) testApp {
	t.Helper()

	store := catalog.NewStore(catalog.NewMemSlot())
	if _, err := store.Initialize(context.Background(), catalog.DefaultProducts()); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	var reg prometheus.Registerer
	if deps.Registry != nil {
		reg = deps.Registry
	}
	svc := checkout.NewService(store, 5*time.Millisecond, zap.NewNop(), reg)

	deps.Log = zap.NewNop()
	deps.Service = "storefront"

	h := storefront.NewHandler(
		&catalog.Server{Store: store, Log: zap.NewNop()},
		&checkout.Server{Service: svc, Log: zap.NewNop()},
		deps,
	)

	ts := httptest.NewServer(h)
	t.Cleanup(func() {
		ts.Close()
		svc.Wait()
	})
	return testApp{ts: ts, store: store, checkout: svc}
}

func doJSON(t *testing.T, method, url string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func TestStorefront_PublicAPI_HappyPath(t *testing.T) {
	app := newTestApp(t, storefront.HTTPDeps{})
	base := app.ts.URL

	{
		resp, _ := doJSON(t, http.MethodGet, base+"/healthz", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("healthz status=%d", resp.StatusCode)
		}
		resp, _ = doJSON(t, http.MethodGet, base+"/readyz", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("readyz status=%d", resp.StatusCode)
		}
	}

	var created catalog.Product
	{
		resp, raw := doJSON(t, http.MethodPost, base+"/admin/products", map[string]any{
			"title": "X",
			"price": 10,
		}, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create status=%d body=%s", resp.StatusCode, raw)
		}
		if err := json.Unmarshal(raw, &created); err != nil {
			t.Fatalf("decode product: %v body=%s", err, raw)
		}
		if created.ID != 5 || created.Status != catalog.StatusDraft || created.SalesCount != 0 {
			t.Fatalf("created=%#v", created)
		}
	}

	{
		resp, raw := doJSON(t, http.MethodPost, base+"/checkout", map[string]any{
			"product_id": created.ID,
			"email":      "buyer@example.com",
		}, nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("checkout of draft status=%d body=%s", resp.StatusCode, raw)
		}
	}

	{
		resp, raw := doJSON(t, http.MethodPatch, base+"/admin/products/5", map[string]any{
			"status": "active",
		}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("patch status=%d body=%s", resp.StatusCode, raw)
		}
	}

	{
		resp, raw := doJSON(t, http.MethodPost, base+"/checkout", map[string]any{
			"product_id":     "5",
			"email":          "buyer@example.com",
			"payment_method": "card",
		}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("checkout status=%d body=%s", resp.StatusCode, raw)
		}

		var rc checkout.Receipt
		if err := json.Unmarshal(raw, &rc); err != nil {
			t.Fatalf("decode receipt: %v body=%s", err, raw)
		}
		if rc.ProductID != 5 || rc.Amount != 10 || rc.ID == "" {
			t.Fatalf("receipt=%#v", rc)
		}
	}

	{
		resp, _ := doJSON(t, http.MethodDelete, base+"/admin/products/2", nil, nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("delete status=%d", resp.StatusCode)
		}

		resp, raw := doJSON(t, http.MethodGet, base+"/admin/products", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("list status=%d body=%s", resp.StatusCode, raw)
		}
		var all []catalog.Product
		if err := json.Unmarshal(raw, &all); err != nil {
			t.Fatalf("decode list: %v", err)
		}
		want := []int64{1, 3, 4, 5}
		if len(all) != len(want) {
			t.Fatalf("len=%d want=%d", len(all), len(want))
		}
		for i, p := range all {
			if p.ID != want[i] {
				t.Fatalf("ids[%d]=%d want=%d", i, p.ID, want[i])
			}
		}
		if all[3].SalesCount != 1 {
			t.Fatalf("sales=%d want=1", all[3].SalesCount)
		}
	}

	{
		resp, raw := doJSON(t, http.MethodGet, base+"/admin/stats", nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("stats status=%d body=%s", resp.StatusCode, raw)
		}
		var st catalog.Stats
		if err := json.Unmarshal(raw, &st); err != nil {
			t.Fatalf("decode stats: %v", err)
		}
		if st.TotalSalesCount != 68+12+20+1 || st.TotalRevenue != 19*68+39*12+15*20+10 {
			t.Fatalf("stats=%#v", st)
		}
	}
}

func TestStorefront_CheckoutBadInput(t *testing.T) {
	app := newTestApp(t, storefront.HTTPDeps{})

	resp, raw := doJSON(t, http.MethodPost, app.ts.URL+"/checkout", map[string]any{
		"product_id":     1,
		"payment_method": "cash",
	}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", resp.StatusCode, raw)
	}

	resp, raw = doJSON(t, http.MethodPost, app.ts.URL+"/checkout", map[string]any{
		"product_id": "nope",
	}, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", resp.StatusCode, raw)
	}
}

func TestStorefront_CheckoutRateLimited(t *testing.T) {
	app := newTestApp(t, storefront.HTTPDeps{CheckoutLimit: 2, CheckoutWindow: time.Minute})

	for i := 0; i < 2; i++ {
		resp, raw := doJSON(t, http.MethodPost, app.ts.URL+"/checkout", map[string]any{"product_id": 1}, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("checkout %d status=%d body=%s", i, resp.StatusCode, raw)
		}
	}

	resp, raw := doJSON(t, http.MethodPost, app.ts.URL+"/checkout", map[string]any{"product_id": 1}, nil)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status=%d body=%s", resp.StatusCode, raw)
	}
}

func TestStorefront_MetricsRequireToken(t *testing.T) {
	app := newTestApp(t, storefront.HTTPDeps{
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: true,
		MetricsToken:   "scrape-me",
	})

	resp, _ := doJSON(t, http.MethodGet, app.ts.URL+"/metrics", nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("anonymous status=%d", resp.StatusCode)
	}

	doJSON(t, http.MethodGet, app.ts.URL+"/products", nil, nil)

	resp, raw := doJSON(t, http.MethodGet, app.ts.URL+"/metrics", nil, map[string]string{
		"Authorization": "Bearer scrape-me",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if !bytes.Contains(raw, []byte("wemint_http_requests_total")) {
		t.Fatalf("missing request counter in scrape:\n%s", raw)
	}
}
