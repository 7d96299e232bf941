package extract

import "testing"

func TestNormalizeJSONStripsFencesAndProse(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"delivery\":\"yes\",\"price_num\":12.5}\n```"
	got := NormalizeJSON(raw)
	want := `{"delivery":"yes","price_num":12.5}`
	if got != want {
		t.Fatalf("NormalizeJSON() = %q, want %q", got, want)
	}
}

func TestNormalizeJSONIdempotentOnCleanJSON(t *testing.T) {
	clean := `{"delivery":"no","order_id":"A-1"}`
	once := NormalizeJSON(clean)
	if once != clean {
		t.Fatalf("first pass changed clean json: %q", once)
	}
	if NormalizeJSON(once) != once {
		t.Fatalf("NormalizeJSON is not idempotent on %q", once)
	}
}

func TestNormalizeJSONGreedyBraceSpan(t *testing.T) {
	raw := "prefix {\"a\":{\"b\":1}} suffix"
	got := NormalizeJSON(raw)
	if got != `{"a":{"b":1}}` {
		t.Fatalf("NormalizeJSON() = %q", got)
	}
}

func TestNormalizeJSONReturnsTrimmedTextWithoutBraces(t *testing.T) {
	got := NormalizeJSON("  sorry, I cannot help with that  ")
	if got != "sorry, I cannot help with that" {
		t.Fatalf("NormalizeJSON() = %q", got)
	}
}

func TestNormalizeJSONBareFences(t *testing.T) {
	got := NormalizeJSON("```\n{\"delivery\":\"no\"}\n```")
	if got != `{"delivery":"no"}` {
		t.Fatalf("NormalizeJSON() = %q", got)
	}
}
