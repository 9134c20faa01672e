// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package meca

import "testing"

func TestMonthFolder(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		want   string
		wantOK bool
	}{
		{"december", "2024-12-18", "December_2024", true},
		{"january", "2025-01-02", "January_2025", true},
		{"september", "2023-09-30", "September_2023", true},

		{"not a date", "invalid", "", false},
		{"empty", "", "", false},
		{"month out of range", "2024-13-01", "", false},
		{"month zero", "2024-00-15", "", false},
		{"day-first order", "18-12-2024", "", false},
		{"single-digit day", "2024-12-1", "", false},
		{"trailing garbage", "2024-12-18T00:00:00", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MonthFolder(tt.date)
			if ok != tt.wantOK {
				t.Errorf("MonthFolder(%q) ok = %v, want %v", tt.date, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("MonthFolder(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}
