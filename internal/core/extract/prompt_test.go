package extract

import (
	"strings"
	"testing"
)

func TestBuildRequestNamesAllSchemaFields(t *testing.T) {
	request := BuildRequest("your package has shipped", 256)

	for _, field := range []string{"delivery", "price_num", "description", "order_id", "delivery_date", "store", "tracking_number", "carrier"} {
		if !strings.Contains(request.Prompt, field) {
			t.Fatalf("prompt missing field %q", field)
		}
	}
	if request.MaxTokens != 256 {
		t.Fatalf("expected max tokens 256, got %d", request.MaxTokens)
	}
}

func TestBuildRequestAppendsBodyVerbatim(t *testing.T) {
	body := "Dear customer,\n\nyour order #123 was delivered."
	request := BuildRequest(body, 0)
	if !strings.HasSuffix(request.Prompt, body) {
		t.Fatalf("prompt does not end with the email body")
	}
}

func TestBuildRequestEmptyBody(t *testing.T) {
	request := BuildRequest("", 128)
	if request.Prompt == "" {
		t.Fatalf("expected instruction even for an empty body")
	}
}
