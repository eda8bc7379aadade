package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "SLOT_KEY", "CHECKOUT_DELAY", "SEED", "TRUST_PROXY"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Store.Driver != "memory" || cfg.Store.SlotKey != "wemint_products" {
		t.Fatalf("cfg=%#v", cfg)
	}
	if cfg.Checkout.Delay != 2*time.Second || !cfg.Seed || cfg.TrustProxy {
		t.Fatalf("checkout=%#v seed=%v", cfg.Checkout, cfg.Seed)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Bolt")
	t.Setenv("BOLT_PATH", "/tmp/x.db")
	t.Setenv("CHECKOUT_DELAY", "250ms")
	t.Setenv("CHECKOUT_RATE_LIMIT", "not-a-number")
	t.Setenv("SEED", "false")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Driver != "bolt" || cfg.Store.BoltPath != "/tmp/x.db" {
		t.Fatalf("store=%#v", cfg.Store)
	}
	if cfg.Checkout.Delay != 250*time.Millisecond || cfg.Checkout.RateLimit != 30 {
		t.Fatalf("checkout=%#v", cfg.Checkout)
	}
	if cfg.Seed || !cfg.TrustProxy {
		t.Fatalf("seed=%v trustProxy=%v", cfg.Seed, cfg.TrustProxy)
	}

	opts := cfg.SlotOptions()
	if opts.Driver != "bolt" || opts.BoltPath != "/tmp/x.db" {
		t.Fatalf("slot options=%#v", opts)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "mongo"}, true},
		{"postgres without url", map[string]string{"STORE_DRIVER": "postgres", "DATABASE_URL": ""}, true},
		{"postgres with url", map[string]string{"STORE_DRIVER": "postgres", "DATABASE_URL": "postgres://x"}, false},
		{"negative delay", map[string]string{"CHECKOUT_DELAY": "-1s"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}
