package redact

import (
	"strings"
	"testing"
)

func TestText_Redacts(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		secret string
	}{
		{"email", "notices go to legal@acme-corp.com.", "legal@acme-corp.com"},
		{"iban", "pay to iban de89 3704 0044 0532 0130 00 within 30 days.", "3704 0044"},
		{"iban compact", "pay to gb29nwbk60161331926819.", "gb29nwbk60161331926819"},
		{"iban bank code", "remit to nl91 abna 0417 1643 00 on receipt.", "0417 1643"},
		{"ssn", "contractor ssn 123-45-6789 on file.", "123-45-6789"},
		{"card", "charge card 4111 1111 1111 1111 monthly.", "4111 1111 1111 1111"},
		{"phone", "call (555) 123-4567 for notice.", "123-4567"},
		{"phone intl", "call +1 555.123.4567 for notice.", "555.123.4567"},
		{"account", "wire to account no. 0012345678 promptly.", "0012345678"},
		{"password", `the portal password: "hunter2hunter2" is shared.`, "hunter2hunter2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Text(tt.input)
			if strings.Contains(result, tt.secret) {
				t.Errorf("expected %q to be redacted, got: %s", tt.secret, result)
			}
			if !strings.Contains(result, Placeholder) {
				t.Errorf("expected placeholder in: %s", result)
			}
		})
	}
}

func TestText_NoFalsePositives(t *testing.T) {
	inputs := []string{
		"either party may terminate upon thirty days written notice.",
		"payment is due net 30 days from invoice.",
		"liability is capped at $1,000,000.",
		"this agreement is dated 2024-01-15.",
		"section 12.3 survives termination.",
		"the account balance is reconciled monthly.",
		"the fee for fy24 work item plan is due net 30 days.",
		"payment under purchase order po12 3456 7890 is due.",
		"fees for q324 and fy25 will be invoiced each quarter.",
	}
	for _, input := range inputs {
		result := Text(input)
		if result != input {
			t.Errorf("False positive redaction:\n  input:  %s\n  output: %s", input, result)
		}
	}
}
