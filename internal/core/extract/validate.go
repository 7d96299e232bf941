package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/karinemajda/delivery-email-app/internal/core/domain"
)

const dateLayout = "2006-01-02"

// ValidateRecord maps a parsed-but-untrusted JSON object into a fully
// defaulted DeliveryRecord. Absent or type-incompatible fields take their
// schema default and are reported in the returned field list. An unparsable
// delivery_date is kept verbatim rather than nulled, so suspicious model
// output stays visible for manual inspection.
func ValidateRecord(obj map[string]any) (domain.DeliveryRecord, []string) {
	var defaulted []string

	record := domain.DeliveryRecord{
		Delivery: domain.DeliveryNotConfirmed,
	}

	if status, ok := deliveryStatus(obj["delivery"]); ok {
		record.Delivery = status
	} else {
		defaulted = append(defaulted, "delivery")
	}

	if price, ok := numberField(obj["price_num"]); ok && price >= 0 {
		record.PriceNum = price
	} else {
		defaulted = append(defaulted, "price_num")
	}

	record.Description = textField(obj, "description", &defaulted)
	record.OrderID = textField(obj, "order_id", &defaulted)
	record.Store = textField(obj, "store", &defaulted)
	record.TrackingNumber = textField(obj, "tracking_number", &defaulted)
	record.Carrier = textField(obj, "carrier", &defaulted)

	// delivery_date is optional: absent or null is not a defaulting event.
	// A value that fails the YYYY-MM-DD check is kept verbatim, not nulled.
	if raw, ok := obj["delivery_date"].(string); ok && strings.TrimSpace(raw) != "" {
		record.DeliveryDate = strings.TrimSpace(raw)
		if parsed, err := time.Parse(dateLayout, record.DeliveryDate); err == nil {
			record.DeliveryDate = parsed.Format(dateLayout)
		}
	}

	return record, defaulted
}

func deliveryStatus(value any) (domain.DeliveryStatus, bool) {
	text, ok := value.(string)
	if !ok {
		return domain.DeliveryNotConfirmed, false
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes":
		return domain.DeliveryConfirmed, true
	case "no":
		return domain.DeliveryNotConfirmed, true
	default:
		// Anything else is coerced to "no": availability over rejection.
		return domain.DeliveryNotConfirmed, false
	}
}

func numberField(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func textField(obj map[string]any, key string, defaulted *[]string) string {
	if text, ok := obj[key].(string); ok {
		return text
	}
	*defaulted = append(*defaulted, key)
	return ""
}
