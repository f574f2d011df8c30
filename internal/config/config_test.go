package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `<?xml version="1.0" encoding="UTF-8"?>
<API REQUEST_DUMP="true">
    <CONTEXT>
        <PORT>5000</PORT>
        <HOST>0.0.0.0</HOST>
        <PATH>/api</PATH>
        <TIME_ZONE>America/Sao_Paulo</TIME_ZONE>
        <LOG_DIR>working/logs</LOG_DIR>
    </CONTEXT>
    <AUTHENTICATION MULTIPLE_SAME_USER_SESSIONS="false">
        <ENABLE_TOKEN_AUTH>true</ENABLE_TOKEN_AUTH>
        <SESSION_TIMEOUT>30</SESSION_TIMEOUT>
        <LOGIN_RATE_PER_MINUTE>10</LOGIN_RATE_PER_MINUTE>
    </AUTHENTICATION>
    <PAGINATION>
        <PAGE_SIZE>10</PAGE_SIZE>
    </PAGINATION>
    <DB>
        <INITIALIZE>false</INITIALIZE>
        <HOST>localhost</HOST>
        <PORT>5432</PORT>
        <DRIVER>postgres</DRIVER>
        <SSL_MODE>disable</SSL_MODE>
        <NAMES MEMNEO="memneo"/>
        <USERNAME>memneo</USERNAME>
        <PASSWORD TYPE="env">MEMNEO_DB_PASSWORD</PASSWORD>
        <POOL>
            <MAX_OPEN_CONNS>20</MAX_OPEN_CONNS>
            <MAX_IDLE_CONNS>5</MAX_IDLE_CONNS>
            <CONN_MAX_LIFETIME>300</CONN_MAX_LIFETIME>
        </POOL>
    </DB>
</API>`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.xml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !cfg.RequestDump {
		t.Error("RequestDump not parsed")
	}
	if cfg.Context.Port != 5000 || cfg.Context.Path != "/api" {
		t.Errorf("context = %+v", cfg.Context)
	}
	if cfg.Context.TimeZone != "America/Sao_Paulo" {
		t.Errorf("time zone = %q", cfg.Context.TimeZone)
	}
	if cfg.Authentication.LoginRatePerMinute != 10 {
		t.Errorf("login rate = %d, want 10", cfg.Authentication.LoginRatePerMinute)
	}
	if cfg.DB.Names.MEMNEO != "memneo" {
		t.Errorf("db name = %q", cfg.DB.Names.MEMNEO)
	}
	if cfg.DB.Password.Type != "env" || cfg.DB.Password.Value != "MEMNEO_DB_PASSWORD" {
		t.Errorf("password = %+v", cfg.DB.Password)
	}
	if cfg.DB.Pool.MaxOpenConns != 20 {
		t.Errorf("pool = %+v", cfg.DB.Pool)
	}

	// The loader is a singleton; GetConfig returns the same instance.
	if GetConfig() != cfg {
		t.Error("GetConfig returned a different instance")
	}
}
