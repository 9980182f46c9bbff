package probe

import "testing"

func TestParseBalanceText(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"Saldo: R$ 1.234,56", 1234.56, false},
		{"$1,234.56", 1234.56, false},
		{"1.234.567,89", 1234567.89, false},
		{"Balance 1000", 1000, false},
		{"R$ 123456", 123456, false},
		{"-98765", -98765, false},
		{"2,5", 2.5, false},
		{"-12,50", -12.50, false},
		{"€ 0,00", 0, false},
		{"no digits here", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBalanceText(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseBalanceText(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
