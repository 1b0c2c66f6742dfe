package flags

import "testing"

func TestExtractPriority(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "tight beats loose",
			text: "a red flag was mentioned but today we fly the double red flag",
			want: "Double Red Flag",
			ok:   true,
		},
		{
			name: "single red flag",
			text: "current conditions: single red flag",
			want: "Single Red Flag",
			ok:   true,
		},
		{
			name: "loose fallback",
			text: "conditions are yellow today",
			want: "Yellow",
			ok:   true,
		},
		{
			name: "loose red",
			text: "flying red at the moment",
			want: "Red",
			ok:   true,
		},
		{
			name: "case insensitive",
			text: "PURPLE FLAG: dangerous marine life",
			want: "Purple Flag",
			ok:   true,
		},
		{name: "no flag mention", text: "enjoy the beach", want: "", ok: false},
		{name: "empty text", text: "", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("Extract(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestExtractHTMLStripsMarkup(t *testing.T) {
	body := []byte(`<html><body>
		<div class="alert"><span>Double</span> <b>Red</b>
		Flag</div></body></html>`)

	got, ok := ExtractHTML(body)
	if !ok || got != "Double Red Flag" {
		t.Fatalf("ExtractHTML = (%q, %v), want (%q, true)", got, ok, "Double Red Flag")
	}
}

func TestPageTextCollapsesWhitespace(t *testing.T) {
	text, err := PageText([]byte("<p>green\n\n   flag</p>"))
	if err != nil {
		t.Fatalf("PageText error = %v", err)
	}
	if text != "green flag" {
		t.Fatalf("PageText = %q, want %q", text, "green flag")
	}
}
