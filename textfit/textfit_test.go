package textfit

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFontSizeEmptyStringReturnsMinSize(t *testing.T) {
	for _, env := range []Envelope{TitleSolo, TitleWithSubtitle, Subtitle} {
		if got := FontSize("", env); got != env.MinSize {
			t.Errorf("FontSize(\"\") = %v, want %v", got, env.MinSize)
		}
	}
}

func TestFontSizeStaysWithinEnvelope(t *testing.T) {
	inputs := []string{
		"",
		"A",
		"SCP-1048-JP",
		"The Clockwork Heart",
		strings.Repeat("a", 50),
		strings.Repeat("x", 500),
		strings.Repeat("あ", 200),
	}
	for _, env := range []Envelope{TitleSolo, TitleWithSubtitle, Subtitle} {
		for _, s := range inputs {
			got := FontSize(s, env)
			if got < env.MinSize || got > env.MaxSize {
				t.Errorf("FontSize(%q) = %v, outside [%v, %v]", s, got, env.MinSize, env.MaxSize)
			}
		}
	}
}

func TestFontSizeShortStringGetsMaxSize(t *testing.T) {
	if got := FontSize("Hi", TitleSolo); got != TitleSolo.MaxSize {
		t.Errorf("FontSize(\"Hi\") = %v, want %v", got, TitleSolo.MaxSize)
	}
}

func TestFontSizeMonotonicInLength(t *testing.T) {
	env := TitleSolo
	prev := FontSize("a", env)
	for n := 2; n <= 120; n++ {
		got := FontSize(strings.Repeat("a", n), env)
		if got > prev {
			t.Fatalf("FontSize at length %d = %v, larger than %v at length %d", n, got, prev, n-1)
		}
		prev = got
	}
}

func TestWrapLinesEmptyInput(t *testing.T) {
	if got := WrapLines("", 60, TitleSolo); got != nil {
		t.Errorf("WrapLines(\"\") = %v, want nil", got)
	}
}

func TestWrapLinesNeverExceedsMaxLines(t *testing.T) {
	for _, env := range []Envelope{TitleSolo, TitleWithSubtitle, Subtitle} {
		for _, n := range []int{1, 10, 50, 200, 1000} {
			text := strings.Repeat("a", n)
			size := FontSize(text, env)
			lines := WrapLines(text, size, env)
			if len(lines) > env.MaxLines {
				t.Errorf("WrapLines len %d at input length %d, want <= %d", len(lines), n, env.MaxLines)
			}
		}
	}
}

func TestWrapLinesTruncatesToExactBudget(t *testing.T) {
	env := Envelope{MinSize: 60, MaxSize: 110, MaxWidthPx: 1100, AvgCharWidthRatio: 0.6, MaxLines: 2}
	fontSize := 60.0
	charsPerLine := int(env.MaxWidthPx / (fontSize * env.AvgCharWidthRatio))
	maxChars := charsPerLine * env.MaxLines

	text := strings.Repeat("a", maxChars+100)
	lines := WrapLines(text, fontSize, env)

	joined := strings.Join(lines, "")
	if !strings.HasSuffix(joined, Ellipsis) {
		t.Errorf("truncated output %q does not end with %q", joined, Ellipsis)
	}
	if got := utf8.RuneCountInString(joined); got != maxChars {
		t.Errorf("truncated output length = %d, want %d", got, maxChars)
	}
}

func TestWrapLinesExactBudgetNotTruncated(t *testing.T) {
	env := Envelope{MinSize: 60, MaxSize: 110, MaxWidthPx: 1100, AvgCharWidthRatio: 0.6, MaxLines: 2}
	fontSize := 60.0
	charsPerLine := int(env.MaxWidthPx / (fontSize * env.AvgCharWidthRatio))
	maxChars := charsPerLine * env.MaxLines

	text := strings.Repeat("b", maxChars)
	joined := strings.Join(WrapLines(text, fontSize, env), "")
	if joined != text {
		t.Errorf("input at exact budget was modified: got %q", joined)
	}
}

func TestWrapLinesChunksAreFixedWidth(t *testing.T) {
	env := Envelope{MinSize: 30, MaxSize: 70, MaxWidthPx: 1100, AvgCharWidthRatio: 0.6, MaxLines: 3}
	fontSize := 55.0
	charsPerLine := int(env.MaxWidthPx / (fontSize * env.AvgCharWidthRatio))

	text := strings.Repeat("c", charsPerLine+5)
	lines := WrapLines(text, fontSize, env)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if utf8.RuneCountInString(lines[0]) != charsPerLine {
		t.Errorf("first line length = %d, want %d", utf8.RuneCountInString(lines[0]), charsPerLine)
	}
	if utf8.RuneCountInString(lines[1]) != 5 {
		t.Errorf("second line length = %d, want 5", utf8.RuneCountInString(lines[1]))
	}
}

func TestWrapLinesCountsRunesNotBytes(t *testing.T) {
	env := Envelope{MinSize: 60, MaxSize: 110, MaxWidthPx: 1100, AvgCharWidthRatio: 0.6, MaxLines: 4}
	fontSize := 110.0
	charsPerLine := int(env.MaxWidthPx / (fontSize * env.AvgCharWidthRatio))

	text := strings.Repeat("機", charsPerLine+1)
	lines := WrapLines(text, fontSize, env)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if got := utf8.RuneCountInString(lines[0]); got != charsPerLine {
		t.Errorf("first line rune count = %d, want %d", got, charsPerLine)
	}
}

func TestFitCombinesSizeAndLines(t *testing.T) {
	block := Fit("SCP-1048-JP", TitleWithSubtitle)
	if block.SizePx < TitleWithSubtitle.MinSize || block.SizePx > TitleWithSubtitle.MaxSize {
		t.Errorf("SizePx = %v, outside envelope", block.SizePx)
	}
	if len(block.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(block.Lines))
	}
	if block.Lines[0] != "SCP-1048-JP" {
		t.Errorf("line = %q, want unmodified input", block.Lines[0])
	}
}
