package shiftanalysis

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseTime(t *testing.T) {
	t.Parallel()

	t.Run("24-hour tokens map to minutes since midnight", func(t *testing.T) {
		t.Parallel()
		for h := 0; h < 24; h++ {
			for _, m := range []int{0, 1, 15, 30, 59} {
				token := fmt.Sprintf("%d:%02d", h, m)
				got, ok := ParseTime(token)
				if !ok {
					t.Fatalf("ParseTime(%q) failed", token)
				}
				if got != h*60+m {
					t.Fatalf("ParseTime(%q) = %d, want %d", token, got, h*60+m)
				}
			}
		}
	})

	cases := []struct {
		token string
		want  int
		ok    bool
	}{
		{token: "9am", want: 540, ok: true},
		{token: "9pm", want: 1260, ok: true},
		{token: "12am", want: 0, ok: true},
		{token: "12pm", want: 720, ok: true},
		{token: "9:30am", want: 570, ok: true},
		{token: "2 PM", want: 840, ok: true},
		{token: " 11:45 pm ", want: 1425, ok: true},
		{token: "9", want: 540, ok: true},
		{token: "22", want: 1320, ok: true},
		{token: "5", want: 300, ok: true},
		{token: "24", want: 0, ok: true},
		{token: "", ok: false},
		{token: "OFF", ok: false},
		{token: "noon", ok: false},
		{token: "25", ok: false},
		{token: "9:75", ok: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.token, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseTime(tc.token)
			if ok != tc.ok {
				t.Fatalf("ParseTime(%q) ok = %v, want %v", tc.token, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("ParseTime(%q) = %d, want %d", tc.token, got, tc.want)
			}
		})
	}
}

func TestParseShift(t *testing.T) {
	t.Parallel()

	t.Run("parses both halves", func(t *testing.T) {
		t.Parallel()
		got, err := ParseShift("9:30am-2pm")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != (TimeRange{Start: 570, End: 840}) {
			t.Fatalf("unexpected range: %+v", got)
		}
		if got.Hours() != 4.5 {
			t.Fatalf("expected 4.5 hours, got %v", got.Hours())
		}
	})

	t.Run("overnight shift wraps past midnight", func(t *testing.T) {
		t.Parallel()
		got, err := ParseShift("22-6")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Overnight() {
			t.Fatalf("expected overnight shift, got %+v", got)
		}
		if got.Hours() != 8 {
			t.Fatalf("expected 8 hours, got %v", got.Hours())
		}
	})

	t.Run("closing at 24 is an overnight shift ending at midnight", func(t *testing.T) {
		t.Parallel()
		got, err := ParseShift("17-24")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Hours() != 7 {
			t.Fatalf("expected 7 hours, got %v", got.Hours())
		}
	})

	t.Run("unsuffixed hours are literal", func(t *testing.T) {
		t.Parallel()
		got, err := ParseShift("9-5")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 09:00 to 05:00 the next day.
		if got.Hours() != 20 {
			t.Fatalf("expected 20 hours, got %v", got.Hours())
		}
	})

	t.Run("OFF and empty values are days off", func(t *testing.T) {
		t.Parallel()
		for _, value := range []string{"OFF", "", "   "} {
			if _, err := ParseShift(value); !errors.Is(err, ErrDayOff) {
				t.Fatalf("ParseShift(%q) error = %v, want ErrDayOff", value, err)
			}
		}
	})

	t.Run("malformed values are unparseable", func(t *testing.T) {
		t.Parallel()
		for _, value := range []string{"off", "9am", "9-5-1", "x-5", "9-", "vacation"} {
			if _, err := ParseShift(value); !errors.Is(err, ErrUnparseableTime) {
				t.Fatalf("ParseShift(%q) error = %v, want ErrUnparseableTime", value, err)
			}
		}
	})
}
