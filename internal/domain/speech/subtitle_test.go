package speech

import (
	"strings"
	"testing"
	"time"
)

func TestBuildSRTFormat(t *testing.T) {
	srt, total := BuildSRT([]string{
		"The sky is blue.",
		"Grass grows green in spring.",
	}, 120)

	// 4 words and 5 words at 120 wpm: 2s and 2.5s cues.
	if total != 4500*time.Millisecond {
		t.Fatalf("total = %s", total)
	}
	want := "1\n00:00:00,000 --> 00:00:02,000\nThe sky is blue.\n\n" +
		"2\n00:00:02,000 --> 00:00:04,500\nGrass grows green in spring.\n\n"
	if srt != want {
		t.Fatalf("srt =\n%q\nwant\n%q", srt, want)
	}
}

func TestBuildSRTMinimumCueDuration(t *testing.T) {
	srt, total := BuildSRT([]string{"Hi."}, 600)
	if total != time.Second {
		t.Fatalf("total = %s", total)
	}
	if !strings.Contains(srt, "00:00:00,000 --> 00:00:01,000") {
		t.Fatalf("srt = %q", srt)
	}
}

func TestBuildSRTSkipsEmptySentences(t *testing.T) {
	srt, _ := BuildSRT([]string{"", "  ", "One sentence here."}, 160)
	if strings.Count(srt, "-->") != 1 {
		t.Fatalf("expected a single cue, got %q", srt)
	}
	if !strings.HasPrefix(srt, "1\n") {
		t.Fatalf("cue numbering should start at 1, got %q", srt)
	}
}

func TestSrtTimestampRollover(t *testing.T) {
	got := srtTimestamp(time.Hour + 2*time.Minute + 3*time.Second + 45*time.Millisecond)
	if got != "01:02:03,045" {
		t.Fatalf("timestamp = %q", got)
	}
}
