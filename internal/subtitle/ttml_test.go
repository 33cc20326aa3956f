package subtitle

import (
	"testing"
	"time"
)

func TestParseTTML(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<tt xmlns="http://www.w3.org/ns/ttml">
  <body>
    <div>
      <p begin="00:00:01.000" end="00:00:04.000">Hello, world!</p>
      <p begin="00:00:05.000" end="00:00:06.000">Second cue.</p>
    </div>
  </body>
</tt>`

	cues := ParseTTML(content)
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].Start != 1*time.Second || cues[0].End != 4*time.Second {
		t.Errorf("expected 1s-4s, got %v-%v", cues[0].Start, cues[0].End)
	}
	if cues[0].Text != "Hello, world!" {
		t.Errorf("got %q", cues[0].Text)
	}
	if cues[1].Index != 2 {
		t.Errorf("expected index 2, got %d", cues[1].Index)
	}
}

func TestParseTTMLTimeGrammars(t *testing.T) {
	tests := []struct {
		name string
		attr string
		want time.Duration
	}{
		{"fractional seconds", "1.5s", 1500 * time.Millisecond},
		{"milliseconds", "2500ms", 2500 * time.Millisecond},
		{"clock with fraction", "00:00:01.250", 1250 * time.Millisecond},
		{"clock with over-long fraction", "00:00:01.5000", 1500 * time.Millisecond},
		{"clock without fraction", "00:01:39", 99 * time.Second},
		{"smpte frames at 25fps", "00:00:01:12", 1*time.Second + 480*time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseTTMLTime(tt.attr, 25)
			if !ok {
				t.Fatalf("parseTTMLTime(%q) failed", tt.attr)
			}
			if got != tt.want {
				t.Errorf("parseTTMLTime(%q) = %v, want %v", tt.attr, got, tt.want)
			}
		})
	}
}

func TestParseTTMLFrameRateAttribute(t *testing.T) {
	content := `<tt xmlns="http://www.w3.org/ns/ttml" ttp:frameRate="30">
  <body><div>
    <p begin="00:00:00:15" end="00:00:02:00">Half a second in.</p>
  </div></body>
</tt>`

	cues := ParseTTML(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Start != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", cues[0].Start)
	}
}

func TestParseTTMLDurAttribute(t *testing.T) {
	content := `<tt><body><div>
    <p begin="2s" dur="3s">From dur.</p>
    <p begin="10s">No end or dur, dropped.</p>
  </div></body></tt>`

	cues := ParseTTML(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].End != 5*time.Second {
		t.Errorf("expected end 5s, got %v", cues[0].End)
	}
}

func TestParseTTMLSpanStyling(t *testing.T) {
	content := `<tt><body><div>
    <p begin="1s" end="2s" tts:fontStyle="italic">Hello <span tts:fontWeight="bold">brave</span> world</p>
  </div></body></tt>`

	cues := ParseTTML(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Text != "Hello brave world" {
		t.Errorf("got %q", cues[0].Text)
	}
	spans := cues[0].Spans
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d: %+v", len(spans), spans)
	}
	if !spans[0].Style.Italic || spans[0].Style.Bold {
		t.Errorf("span 0 should be italic only: %+v", spans[0].Style)
	}
	// span styles merge with the enclosing paragraph's
	if !spans[1].Style.Italic || !spans[1].Style.Bold {
		t.Errorf("span 1 should be bold italic: %+v", spans[1].Style)
	}
}

func TestParseTTMLColors(t *testing.T) {
	tests := []struct {
		name string
		attr string
		want RGBA
	}{
		{"named", "red", RGBA{255, 0, 0, 255}},
		{"hex rgb", "#00ff00", RGBA{0, 255, 0, 255}},
		{"hex argb", "#80ff0000", RGBA{255, 0, 0, 128}},
		{"rgb func", "rgb(1, 2, 3)", RGBA{1, 2, 3, 255}},
		{"rgba func", "rgba(10, 20, 30, 0.5)", RGBA{10, 20, 30, 127}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTTMLColor(tt.attr)
			if got == nil {
				t.Fatalf("parseTTMLColor(%q) = nil", tt.attr)
			}
			if *got != tt.want {
				t.Errorf("parseTTMLColor(%q) = %+v, want %+v", tt.attr, got, tt.want)
			}
		})
	}
}

func TestParseTTMLLineBreaksAndWhitespace(t *testing.T) {
	content := `<tt><body><div>
    <p begin="1s" end="2s">First   line<br/>second	 line</p>
  </div></body></tt>`

	cues := ParseTTML(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Text != "First line\nsecond line" {
		t.Errorf("got %q", cues[0].Text)
	}
}

func TestParseTTMLEntities(t *testing.T) {
	content := `<tt><body><div>
    <p begin="1s" end="2s">Tom &amp; Jerry &lt;3</p>
  </div></body></tt>`

	cues := ParseTTML(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Text != "Tom & Jerry <3" {
		t.Errorf("got %q", cues[0].Text)
	}
}

func TestParseTTMLSkipsUnparsableTimestamps(t *testing.T) {
	content := `<tt><body><div>
    <p begin="whenever" end="2s">Dropped.</p>
    <p begin="3s" end="4s">Kept.</p>
  </div></body></tt>`

	cues := ParseTTML(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Text != "Kept." {
		t.Errorf("got %q", cues[0].Text)
	}
}

func TestParseTTMLEmptyInput(t *testing.T) {
	for _, content := range []string{"", "  \n "} {
		if cues := ParseTTML(content); len(cues) != 0 {
			t.Errorf("expected no cues for %q, got %d", content, len(cues))
		}
	}
}
