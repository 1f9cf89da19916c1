package cost

import "fmt"

// Metrics describes the cost and performance profile of a single retrieval
// backend or tool invocation. The engine's plan construction reads Amount to
// order candidates under the cost goal, and AverageDurationInMillis informs
// the latency goal. The tool layer advertises the same values to callers so
// an agent can reason about what an invocation will cost.
//
// Example usage:
//
//	metrics := cost.Metrics{
//	    Amount:                  0.001,
//	    Currency:                "USD",
//	    CostDescription:         "per scrape request (1 API credit)",
//	    Accuracy:                0.95,
//	    AverageDurationInMillis: 1200,
//	}
type Metrics struct {
	// Amount is the monetary cost of a single call. Zero means free
	// (e.g. a local HTTP request).
	Amount float64 `json:"amount"`

	// Currency is the currency or unit for Amount (e.g. "USD", "credits").
	Currency string `json:"currency,omitempty"`

	// CostDescription provides context about how the cost accrues
	// (e.g. "per URL scraped", "per API credit").
	CostDescription string `json:"cost_description,omitempty"`

	// Accuracy is a reliability score in the range 0.0 to 1.0. Higher
	// values indicate the backend more often returns usable content.
	Accuracy float64 `json:"accuracy,omitempty"`

	// AverageDurationInMillis is the typical wall-clock latency of one call.
	AverageDurationInMillis int64 `json:"average_duration_in_millis,omitempty"`
}

// String returns a compact human-readable rendering of the metrics,
// suitable for log output and CLI listings.
func (m Metrics) String() string {
	currency := m.Currency
	if currency == "" {
		currency = "USD"
	}

	result := fmt.Sprintf("%.6f %s", m.Amount, currency)
	if m.CostDescription != "" {
		result = fmt.Sprintf("%s (%s)", result, m.CostDescription)
	}
	if m.Accuracy > 0 {
		result = fmt.Sprintf("%s, accuracy %.0f%%", result, m.Accuracy*100)
	}
	if m.AverageDurationInMillis > 0 {
		result = fmt.Sprintf("%s, ~%dms", result, m.AverageDurationInMillis)
	}
	return result
}
