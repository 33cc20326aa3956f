package subtitle

import (
	"testing"
	"time"
)

const assHeader = `[Script Info]
Title: Test
ScriptType: v4.00+

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, Bold, Italic
Style: Default,Arial,20,&H00FFFFFF,0,0

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

func TestParseSSA(t *testing.T) {
	content := assHeader +
		"Dialogue: 0,0:00:01.00,0:00:04.00,Default,,0,0,0,,Hello, world!\n"

	cues := ParseSSA(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}

	cue := cues[0]
	if cue.Index != 1 {
		t.Errorf("expected index 1, got %d", cue.Index)
	}
	if cue.Start != 1*time.Second || cue.End != 4*time.Second {
		t.Errorf("expected 1s-4s, got %v-%v", cue.Start, cue.End)
	}
	// the text field re-joins on commas past the field index
	if cue.Text != "Hello, world!" {
		t.Errorf("expected 'Hello, world!', got %q", cue.Text)
	}
}

func TestParseSSACentisecondTimestamps(t *testing.T) {
	content := assHeader +
		"Dialogue: 0,0:01:30.25,0:01:32.50,Default,,0,0,0,,Timing.\n"

	cues := ParseSSA(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Start != 90*time.Second+250*time.Millisecond {
		t.Errorf("expected 1m30.25s, got %v", cues[0].Start)
	}
	if cues[0].End != 92*time.Second+500*time.Millisecond {
		t.Errorf("expected 1m32.5s, got %v", cues[0].End)
	}
}

func TestParseSSABraceAwareCommaSplit(t *testing.T) {
	content := assHeader +
		`Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,{\pos(100,200)},{\pos(1,2)}Positioned, still one field` + "\n"

	cues := ParseSSA(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Text != "Positioned, still one field" {
		t.Errorf("comma inside override block split the text: %q", cues[0].Text)
	}
}

func TestParseSSACustomFormatOrder(t *testing.T) {
	content := `[Events]
Format: Start, End, Text
Dialogue: 0:00:02.00,0:00:03.00,Reordered fields.
`
	cues := ParseSSA(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Start != 2*time.Second {
		t.Errorf("expected 2s, got %v", cues[0].Start)
	}
	if cues[0].Text != "Reordered fields." {
		t.Errorf("got %q", cues[0].Text)
	}
}

func TestParseSSADefaultFieldOrder(t *testing.T) {
	// no Format: line at all; the standard 10-field order applies
	content := "Dialogue: Marked=0,0:00:01.00,0:00:02.00,Default,,0,0,0,,Minimal file.\n"

	cues := ParseSSA(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Text != "Minimal file." {
		t.Errorf("got %q", cues[0].Text)
	}
}

func TestParseSSAOverrideStyling(t *testing.T) {
	content := assHeader +
		`Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\b1\i1}bold italic{\b0} italic only` + "\n"

	cues := ParseSSA(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	spans := cues[0].Spans
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %+v", len(spans), spans)
	}
	if !spans[0].Style.Bold || !spans[0].Style.Italic {
		t.Errorf("span 0 should be bold italic: %+v", spans[0].Style)
	}
	if spans[1].Style.Bold || !spans[1].Style.Italic {
		t.Errorf("span 1 should be italic only: %+v", spans[1].Style)
	}
	if cues[0].Text != "bold italic italic only" {
		t.Errorf("got %q", cues[0].Text)
	}
}

func TestParseSSAColorBGROrder(t *testing.T) {
	// &H0000FF& is blue-green-red, so this is pure red
	content := assHeader +
		`Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\c&H0000FF&}red text` + "\n"

	cues := ParseSSA(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	spans := cues[0].Spans
	if len(spans) != 1 || spans[0].Style == nil || spans[0].Style.Color == nil {
		t.Fatalf("expected one colored span, got %+v", spans)
	}
	c := spans[0].Style.Color
	if c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("expected opaque red, got %+v", c)
	}
}

func TestParseSSAColorAlphaInversion(t *testing.T) {
	// leading alpha byte is SSA-inverted: 0xFF means fully transparent
	content := assHeader +
		`Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\1c&HFF0000FF&}ghost` + "\n"

	cues := ParseSSA(content)
	spans := cues[0].Spans
	if len(spans) != 1 || spans[0].Style.Color == nil {
		t.Fatalf("expected one colored span, got %+v", spans)
	}
	c := spans[0].Style.Color
	if c.R != 255 || c.A != 0 {
		t.Errorf("expected transparent red, got %+v", c)
	}
}

func TestParseSSAFontDirectives(t *testing.T) {
	content := assHeader +
		`Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\fs24\fnComic Sans}sized` + "\n"

	cues := ParseSSA(content)
	spans := cues[0].Spans
	if len(spans) != 1 || spans[0].Style == nil {
		t.Fatalf("expected one styled span, got %+v", spans)
	}
	style := spans[0].Style
	if style.FontSize == nil || *style.FontSize != 24 {
		t.Errorf("expected font size 24, got %v", style.FontSize)
	}
	if style.FontFamily != "Comic Sans" {
		t.Errorf("expected 'Comic Sans', got %q", style.FontFamily)
	}
}

func TestParseSSANewlineEscapes(t *testing.T) {
	content := assHeader +
		`Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,Line one\NLine two\nLine three` + "\n"

	cues := ParseSSA(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Text != "Line one\nLine two\nLine three" {
		t.Errorf("got %q", cues[0].Text)
	}
}

func TestParseSSADropsEmptyAndMalformed(t *testing.T) {
	content := assHeader +
		`Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\pos(10,20)}` + "\n" +
		"Dialogue: 0,bad,0:00:03.00,Default,,0,0,0,,Bad start time.\n" +
		"Dialogue: 0,0:00:04.00,0:00:05.00,Default,,0,0,0,,Survivor.\n"

	cues := ParseSSA(content)
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Text != "Survivor." {
		t.Errorf("got %q", cues[0].Text)
	}
}

func TestParseSSAIgnoresStylesSectionFormat(t *testing.T) {
	// the [V4+ Styles] Format: line must not clobber the events field map
	cues := ParseSSA(assHeader +
		"Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,Fields intact.\n")
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Text != "Fields intact." {
		t.Errorf("got %q", cues[0].Text)
	}
}

func TestParseSSAEmptyInput(t *testing.T) {
	if cues := ParseSSA(""); len(cues) != 0 {
		t.Errorf("expected no cues, got %d", len(cues))
	}
}
