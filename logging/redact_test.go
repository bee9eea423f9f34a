package logging

import (
	"strings"
	"testing"
)

func TestMask_ReplacesRegisteredSecrets(t *testing.T) {
	ResetSecrets()
	defer ResetSecrets()

	RegisterSecret("s3cr3t-value")
	masked := Mask("client secret is s3cr3t-value today")
	if strings.Contains(masked, "s3cr3t-value") {
		t.Fatalf("expected secret to be masked, got %q", masked)
	}
	if !strings.Contains(masked, strings.Repeat("*", len("s3cr3t-value"))) {
		t.Fatalf("expected same-length asterisk run, got %q", masked)
	}
}

func TestMask_IgnoresEmptyAndDuplicateRegistrations(t *testing.T) {
	ResetSecrets()
	defer ResetSecrets()

	RegisterSecret("")
	RegisterSecret("twice")
	RegisterSecret("twice")

	if got := Mask("once twice thrice"); got != "once ***** thrice" {
		t.Fatalf("unexpected masking result: %q", got)
	}
}

func TestWithSecretMasking_MasksMessageAndStringArgs(t *testing.T) {
	ResetSecrets()
	defer ResetSecrets()
	RegisterSecret("hunter2")

	base := &capturingLogger{}
	logger := WithSecretMasking(base)

	logger.Info("password is hunter2", "secret", "hunter2", "count", 3)

	if len(base.calls) != 1 {
		t.Fatalf("expected one record, got %d", len(base.calls))
	}
	call := base.calls[0]
	if strings.Contains(call.msg, "hunter2") {
		t.Fatalf("expected masked message, got %q", call.msg)
	}
	if call.args[1] != "*******" {
		t.Fatalf("expected masked string arg, got %v", call.args[1])
	}
	if call.args[3] != 3 {
		t.Fatalf("expected non-string args untouched, got %v", call.args[3])
	}
}

func TestRedactSensitiveMap(t *testing.T) {
	redacted := RedactSensitiveMap(map[string]any{
		"client_id":     "abc",
		"client_secret": "super-secret",
		"access_token":  "tok",
		"request_id":    "r-1",
		"nested": map[string]any{
			"password": "pw",
			"scope":    "read write",
		},
		"items": []any{
			map[string]any{"api_key": "k"},
			"plain",
		},
	})

	if redacted["client_id"] != "abc" {
		t.Fatalf("expected traceability key to pass through")
	}
	if redacted["client_secret"] != RedactedValue {
		t.Fatalf("expected client_secret redacted, got %v", redacted["client_secret"])
	}
	if redacted["access_token"] != RedactedValue {
		t.Fatalf("expected access_token redacted, got %v", redacted["access_token"])
	}
	if redacted["request_id"] != "r-1" {
		t.Fatalf("expected request_id preserved, got %v", redacted["request_id"])
	}

	nested := redacted["nested"].(map[string]any)
	if nested["password"] != RedactedValue {
		t.Fatalf("expected nested password redacted, got %v", nested["password"])
	}
	if nested["scope"] != "read write" {
		t.Fatalf("expected nested scope preserved, got %v", nested["scope"])
	}

	items := redacted["items"].([]any)
	if items[0].(map[string]any)["api_key"] != RedactedValue {
		t.Fatalf("expected api_key inside slice redacted")
	}
	if items[1] != "plain" {
		t.Fatalf("expected plain slice item preserved")
	}
}

func TestRedactSensitiveMap_EmptyInput(t *testing.T) {
	if got := RedactSensitiveMap(nil); len(got) != 0 {
		t.Fatalf("expected empty map for nil input, got %v", got)
	}
}
