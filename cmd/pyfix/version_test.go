package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderVersionPretty(t *testing.T) {
	var buf bytes.Buffer
	info := versionInfo{Version: "1.2.3", GitCommit: "abc123", BuildDate: "2026-01-02"}
	renderVersionPretty(&buf, info, true, true)

	out := buf.String()
	if !strings.Contains(out, "pyfix 1.2.3") {
		t.Fatalf("missing version line:\n%s", out)
	}
	if !strings.Contains(out, "commit: abc123") || !strings.Contains(out, "built:  2026-01-02") {
		t.Fatalf("missing metadata:\n%s", out)
	}
}

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	info := versionInfo{Version: "1.2.3"}
	if err := renderVersionJSON(&buf, info, true, false); err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Tool != "pyfix" || payload.Version != "1.2.3" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.GitCommit != "unknown" {
		t.Fatalf("commit not defaulted: %+v", payload)
	}
	if payload.BuildDate != "" {
		t.Fatalf("date should be omitted: %+v", payload)
	}
}
