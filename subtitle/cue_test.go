package subtitle

import "testing"

func TestParseCues(t *testing.T) {
	cues, err := ParseCues("hi/0.0/there/0.5/friend/1.2")
	if err != nil {
		t.Fatalf("ParseCues returned error: %v", err)
	}

	want := []Cue{
		{Text: "hi", Start: 0.0, End: 0.5},
		{Text: "there", Start: 0.5, End: 1.2},
		{Text: "friend", Start: 1.2, End: 2.2},
	}
	if len(cues) != len(want) {
		t.Fatalf("expected %d cues, got %d", len(want), len(cues))
	}
	for i, w := range want {
		if cues[i] != w {
			t.Errorf("cue %d: expected %+v, got %+v", i, w, cues[i])
		}
	}
}

func TestParseCuesDropsOddTrailingToken(t *testing.T) {
	cues, err := ParseCues("hello/0.0/world")
	if err != nil {
		t.Fatalf("ParseCues returned error: %v", err)
	}
	if len(cues) != 1 {
		t.Fatalf("expected 1 cue, got %d", len(cues))
	}
	if cues[0].Text != "hello" || cues[0].End != 1.0 {
		t.Errorf("unexpected cue: %+v", cues[0])
	}
}

func TestParseCuesInvalidStartTime(t *testing.T) {
	if _, err := ParseCues("hello/zero/world/1.0"); err == nil {
		t.Fatal("expected error for non-numeric start time")
	}
}

func TestParseCuesEmptyTranscript(t *testing.T) {
	cues, err := ParseCues("")
	if err != nil {
		t.Fatalf("ParseCues returned error: %v", err)
	}
	if len(cues) != 0 {
		t.Fatalf("expected no cues, got %d", len(cues))
	}
}

func TestParseCuesKeepsSpaceMarkers(t *testing.T) {
	cues, err := ParseCues(" /0.0/word/0.8")
	if err != nil {
		t.Fatalf("ParseCues returned error: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].Text != " " {
		t.Errorf("expected pause marker cue, got %q", cues[0].Text)
	}
}
