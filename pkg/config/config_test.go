package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigPathEnv, dir)
	t.Setenv("HOME", dir)
	homedir.DisableCache = true
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://localhost:8000" {
		t.Errorf("api url = %q", cfg.APIURL)
	}
	if cfg.Path != filepath.Join(dir, ".willow") {
		t.Errorf("path = %q", cfg.Path)
	}
	if cfg.Timeout != 10*time.Second || cfg.NotifyFor != 3*time.Second || cfg.CheerFor != 4*time.Second {
		t.Errorf("durations = %v %v %v", cfg.Timeout, cfg.NotifyFor, cfg.CheerFor)
	}
	if cfg.LogFile != filepath.Join(cfg.Path, "willow.log") {
		t.Errorf("log file = %q", cfg.LogFile)
	}
}

func TestFileEnvAndFlags(t *testing.T) {
	dir := isolate(t)
	yaml := "api-url: https://planner.example.com\nnotify:\n  duration: 5s\ntimeout: 3s\n"
	if err := os.WriteFile(filepath.Join(dir, ".willow.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("WILLOW_NOTIFY_CHEER_DURATION", "7s")

	v := New()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Duration(KeyTimeout, 0, "")
	if err := flags.Parse([]string{"--timeout=20s"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := BindFlags(v, flags); err != nil {
		t.Fatalf("bind: %v", err)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "https://planner.example.com" {
		t.Errorf("api url = %q", cfg.APIURL)
	}
	if cfg.NotifyFor != 5*time.Second {
		t.Errorf("notify = %v", cfg.NotifyFor)
	}
	if cfg.CheerFor != 7*time.Second {
		t.Errorf("cheer = %v", cfg.CheerFor)
	}
	if cfg.Timeout != 20*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout)
	}
}

func TestRejectsBadDuration(t *testing.T) {
	isolate(t)
	t.Setenv("WILLOW_TIMEOUT", "0s")
	if _, err := Load(New()); err == nil {
		t.Fatalf("expected error for zero timeout")
	}
}
