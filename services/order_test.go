package services

import (
	"testing"
)

func TestValidStatusTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{OrderStatusPending, OrderStatusPreparing, true},
		{OrderStatusPending, OrderStatusReady, false},
		{OrderStatusPending, OrderStatusServed, false},
		{OrderStatusPreparing, OrderStatusReady, true},
		{OrderStatusPreparing, OrderStatusPending, false},
		{OrderStatusPreparing, OrderStatusServed, false},
		{OrderStatusReady, OrderStatusServed, true},
		{OrderStatusReady, OrderStatusPreparing, false},
		{OrderStatusReady, OrderStatusPending, false},
		{OrderStatusServed, OrderStatusPending, false},
		{OrderStatusServed, OrderStatusPreparing, false},
		{OrderStatusServed, OrderStatusReady, false},
		{OrderStatusServed, OrderStatusServed, false},
		{"", OrderStatusPending, false},
		{OrderStatusPending, "", false},
		{"Cancelled", OrderStatusPreparing, false},
	}
	for _, tt := range tests {
		got := ValidStatusTransition(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("ValidStatusTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAllowedNext(t *testing.T) {
	tests := []struct {
		current string
		want    []string
	}{
		{OrderStatusPending, []string{OrderStatusPreparing}},
		{OrderStatusPreparing, []string{OrderStatusReady}},
		{OrderStatusReady, []string{OrderStatusServed}},
		{OrderStatusServed, nil}, // terminal
		{"bogus", nil},
	}
	for _, tt := range tests {
		got := AllowedNext(tt.current)
		if len(got) != len(tt.want) {
			t.Errorf("AllowedNext(%q) = %v, want %v", tt.current, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("AllowedNext(%q) = %v, want %v", tt.current, got, tt.want)
			}
		}
	}
}
