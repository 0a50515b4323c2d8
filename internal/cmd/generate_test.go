package cmd

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/the-o-space/Cue/internal/sentiment"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantW   int
		wantH   int
		wantErr bool
	}{
		{
			name:  "valid size",
			input: "1920x1080",
			wantW: 1920,
			wantH: 1080,
		},
		{
			name:  "uppercase separator",
			input: "800X600",
			wantW: 800,
			wantH: 600,
		},
		{
			name:  "with spaces",
			input: " 640 x 480 ",
			wantW: 640,
			wantH: 480,
		},
		{
			name:    "missing height",
			input:   "1920",
			wantErr: true,
		},
		{
			name:    "too many parts",
			input:   "1x2x3",
			wantErr: true,
		},
		{
			name:    "non-numeric",
			input:   "widexhigh",
			wantErr: true,
		},
		{
			name:    "zero dimension",
			input:   "0x1080",
			wantErr: true,
		},
		{
			name:    "negative dimension",
			input:   "1920x-1080",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := parseSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseSize(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("parseSize(%q) unexpected error: %v", tt.input, err)
				return
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("parseSize(%q) = (%d, %d), want (%d, %d)", tt.input, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestParseScores(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    sentiment.Scores
		wantErr bool
	}{
		{
			name:  "valid scores",
			input: "0.8,0.3,0.5,0.2",
			want:  sentiment.Scores{Positiveness: 0.8, Energy: 0.3, Complexity: 0.5, Conflictness: 0.2},
		},
		{
			name:  "with spaces",
			input: "0.8, 0.3, 0.5, 0.2",
			want:  sentiment.Scores{Positiveness: 0.8, Energy: 0.3, Complexity: 0.5, Conflictness: 0.2},
		},
		{
			name:  "clamped out of range",
			input: "1.5,-0.3,0.5,0.2",
			want:  sentiment.Scores{Positiveness: 1.0, Energy: 0.0, Complexity: 0.5, Conflictness: 0.2},
		},
		{
			name:    "too few values",
			input:   "0.8,0.3,0.5",
			wantErr: true,
		},
		{
			name:    "too many values",
			input:   "0.8,0.3,0.5,0.2,0.9",
			wantErr: true,
		},
		{
			name:    "invalid number",
			input:   "abc,0.3,0.5,0.2",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseScores(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parseScores(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("parseScores(%q) unexpected error: %v", tt.input, err)
				return
			}
			if got != tt.want {
				t.Errorf("parseScores(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple text", input: "a calm morning", want: "a_calm_morning"},
		{name: "special chars stripped", input: "hello, world!", want: "hello_world"},
		{name: "truncated to 30", input: "this is a rather long sentence that keeps going", want: "this_is_a_rather_long_sentence"},
		{name: "keeps dashes and underscores", input: "mixed-case_Text 9", want: "mixed-case_Text_9"},
		{name: "only punctuation", input: "!!!???", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := safeFilename(tt.input); got != tt.want {
				t.Errorf("safeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputName(t *testing.T) {
	if got := outputName("art", "good day"); got != "art_good_day" {
		t.Errorf("outputName = %q, want art_good_day", got)
	}
	if got := outputName("art", "???"); got != "art" {
		t.Errorf("outputName with empty safe text = %q, want art", got)
	}
}

func TestReadTexts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texts.txt")
	content := "first line\n\n  second line  \n\nthird\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	texts, err := readTexts(path)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"first line", "second line", "third"}
	if len(texts) != len(want) {
		t.Fatalf("got %d texts, want %d", len(texts), len(want))
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("texts[%d] = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestReadTexts_MissingFile(t *testing.T) {
	if _, err := readTexts(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMakeThumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 640, 480))

	thumb := makeThumbnail(src, 320)
	if thumb.Bounds().Dx() != 320 {
		t.Errorf("thumbnail width = %d, want 320", thumb.Bounds().Dx())
	}
	if thumb.Bounds().Dy() != 240 {
		t.Errorf("thumbnail height = %d, want 240", thumb.Bounds().Dy())
	}
}

func TestMakeThumbnail_SmallSource(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))

	// Sources at or below the target width pass through untouched.
	thumb := makeThumbnail(src, 320)
	if thumb != src {
		t.Error("expected small source to be returned as-is")
	}
}
