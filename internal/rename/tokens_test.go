package rename

import "testing"

func TestTokenizeStandardFormat(t *testing.T) {
	tokens := Tokenize("Robertson - 1000 - Brousseau - Welcome Remarks.mp4")

	if tokens.Room != "Robertson" {
		t.Fatalf("room = %q", tokens.Room)
	}
	if tokens.Clock != "1000" {
		t.Fatalf("clock = %q", tokens.Clock)
	}
	if tokens.Surname != "Brousseau" {
		t.Fatalf("surname = %q", tokens.Surname)
	}
	if tokens.Ext != "mp4" {
		t.Fatalf("ext = %q", tokens.Ext)
	}
}

func TestTokenizeHyphenatedSurname(t *testing.T) {
	tokens := Tokenize("Fisher - 1030 - Hatfield-Dodds - Testing Tools.mp4")

	if tokens.Room != "Fisher" {
		t.Fatalf("room = %q", tokens.Room)
	}
	if tokens.Clock != "1030" {
		t.Fatalf("clock = %q", tokens.Clock)
	}
	if tokens.Surname != "Hatfield-Dodds" {
		t.Fatalf("hyphenated surname split: %q", tokens.Surname)
	}
}

func TestTokenizeVariants(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		want     Tokens
	}{
		{
			"pm 24h time",
			"Robertson - 1430 - Smith - Afternoon Talk.mp4",
			Tokens{Room: "Robertson", Clock: "1430", Surname: "Smith", Ext: "mp4"},
		},
		{
			"single name in surname slot",
			"Fisher - 1145 - Aastha - Async Talk.mp4",
			Tokens{Room: "Fisher", Clock: "1145", Surname: "Aastha", Ext: "mp4"},
		},
		{
			"meridiem time token",
			"Fisher - 6:30PM - Doe - Evening Talk.mov",
			Tokens{Room: "Fisher", Clock: "6:30PM", Surname: "Doe", Ext: "mov"},
		},
		{
			"no surname field",
			"Robertson - 1830 - Closing Remarks.mp4",
			Tokens{Room: "Robertson", Clock: "1830", Surname: "", Ext: "mp4"},
		},
		{
			"double space before title",
			"Robertson - 1030 - Lefkowitz -  Scaling Open Source.mp4",
			Tokens{Room: "Robertson", Clock: "1030", Surname: "Lefkowitz", Ext: "mp4"},
		},
		{
			"no separators at all",
			"lightning-talks.webm",
			Tokens{Room: "", Clock: "", Surname: "", Ext: "webm"},
		},
		{
			"no extension",
			"Fisher - 1000 - Smith - Raw",
			Tokens{Room: "Fisher", Clock: "1000", Surname: "Smith", Ext: ""},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.filename)
			if got.Room != tc.want.Room {
				t.Errorf("room = %q, want %q", got.Room, tc.want.Room)
			}
			if got.Clock != tc.want.Clock {
				t.Errorf("clock = %q, want %q", got.Clock, tc.want.Clock)
			}
			if got.Surname != tc.want.Surname {
				t.Errorf("surname = %q, want %q", got.Surname, tc.want.Surname)
			}
			if got.Ext != tc.want.Ext {
				t.Errorf("ext = %q, want %q", got.Ext, tc.want.Ext)
			}
		})
	}
}
