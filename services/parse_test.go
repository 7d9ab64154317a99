package services

import (
	"testing"
	"time"

	"airbnb-cleaner/models"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"$120.00", 120, true},
		{"$1,200.50", 1200.50, true},
		{"€85", 85, true},
		{"£ 2,000", 2000, true},
		{"0", 0, true},
		{"1200", 1200, true},
		{"-$5.00", 0, false},
		{"free", 0, false},
		{"$1.2.3", 0, false},
	}

	for _, tt := range tests {
		got, ok := parsePrice(models.ParseRaw(tt.raw))
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parsePrice(%q) = %.2f, %t; want %.2f, %t", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
	if _, ok := parsePrice(models.Missing()); ok {
		t.Error("parsePrice(missing) should not be ok")
	}
}

func TestParseFraction(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"95%", 0.95, true},
		{"100%", 1, true},
		{"0%", 0, true},
		{" 50 %", 0.5, true},
		{"0.95", 0.95, true},
		{"95", 0, false},
		{"fast%", 0, false},
		{"-5%", 0, false},
		{"150%", 0, false},
		{"-0.05", 0, false},
		{"N/A", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseFraction(models.ParseRaw(tt.raw))
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseFraction(%q) = %v, %t; want %v, %t", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		v      models.Value
		want   float64
		wantOK bool
	}{
		{models.Text("1970-01-01"), 0, true},
		{models.Text("1970-01-02"), 1, true},
		{models.Text("2023-01-01"), 19358, true},
		{models.Text("1969-12-31"), -1, true},
		{models.Text("19358"), 19358, true},
		{models.Number(19358), 19358, true},
		{models.Text("01/02/2023"), 0, false},
		{models.Missing(), 0, false},
	}

	for _, tt := range tests {
		got, ok := parseDay(tt.v)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseDay(%v) = %v, %t; want %v, %t", tt.v, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDayNumberIgnoresClock(t *testing.T) {
	late := time.Date(2023, 1, 1, 23, 59, 0, 0, time.UTC)
	if got := dayNumber(late); got != 19358 {
		t.Errorf("dayNumber(%v) = %v; want 19358", late, got)
	}
}

func TestParseFlag(t *testing.T) {
	tests := []struct {
		raw    string
		want   bool
		wantOK bool
	}{
		{"t", true, true},
		{"f", false, true},
		{"TRUE", true, true},
		{"False", false, true},
		{"yes", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		got, ok := parseFlag(models.ParseRaw(tt.raw))
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseFlag(%q) = %t, %t; want %t, %t", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseBathroomText(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"1 bath", 1, true},
		{"1.5 baths", 1.5, true},
		{"2 shared baths", 2, true},
		{"0 baths", 0, true},
		{"Half-bath", 0.5, true},
		{"Shared half-bath", 0.5, true},
		{"Private half-bath", 0.5, true},
		{"baths", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseBathroomText(tt.raw)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseBathroomText(%q) = %v, %t; want %v, %t", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"['email', 'phone']", []string{"email", "phone"}},
		{`["email","work_email"]`, []string{"email", "work_email"}},
		{"[]", []string{}},
		{"None", []string{"none"}},
	}

	for _, tt := range tests {
		got := splitList(tt.raw)
		if len(got) != len(tt.want) {
			t.Errorf("splitList(%q) = %v; want %v", tt.raw, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitList(%q) = %v; want %v", tt.raw, got, tt.want)
				break
			}
		}
	}
}
