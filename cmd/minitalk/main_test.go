package main

import (
	"testing"

	"pkt.systems/minitalk/internal/appconfig"
)

func TestRootHasVersion(t *testing.T) {
	root := newRootCmd()
	found := false
	for _, cmd := range root.Commands() {
		if cmd.Name() == "version" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected root command to include version")
	}
}

func TestRootHasBootstrap(t *testing.T) {
	root := newRootCmd()
	found := false
	for _, cmd := range root.Commands() {
		if cmd.Name() == "bootstrap" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected root command to include bootstrap")
	}
}

func TestBuildEngineRejectsUnknownName(t *testing.T) {
	cfg, err := appconfig.DefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	cfg.Engine.Name = "carrier-pigeon"
	if _, err := buildEngine(cfg, nil, 0, nil); err == nil {
		t.Fatalf("expected error for unknown engine")
	}
}

func TestBuildEngineLoopback(t *testing.T) {
	cfg, err := appconfig.DefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	eng, err := buildEngine(cfg, nil, 0, nil)
	if err != nil {
		t.Fatalf("build engine: %v", err)
	}
	if eng == nil {
		t.Fatalf("engine is nil")
	}
}
