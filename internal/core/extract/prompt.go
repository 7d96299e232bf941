package extract

// ExtractionRequest carries one prompt for the completion capability.
type ExtractionRequest struct {
	Prompt    string
	MaxTokens int
}

// BuildRequest builds the fixed-schema extraction prompt for an email body.
// The body is appended verbatim; bounding its length is the caller's job.
func BuildRequest(emailBody string, maxTokens int) ExtractionRequest {
	return ExtractionRequest{
		Prompt:    buildPrompt(emailBody),
		MaxTokens: maxTokens,
	}
}

func buildPrompt(emailBody string) string {
	return `You are a delivery-email analyst.
Return a strict JSON object with exactly these keys:
delivery (string, "yes" if the email confirms a delivery or shipment, else "no"),
price_num (number, total order price, 0.00 if unknown),
description (string, short summary of the ordered items),
order_id (string, empty if unknown),
delivery_date (string in YYYY-MM-DD format, null if unknown),
store (string, merchant name, empty if unknown),
tracking_number (string, empty if unknown),
carrier (string, shipping company, empty if unknown).
No markdown, no extra keys.

Email:
` + emailBody
}
