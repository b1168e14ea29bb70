package render

import "testing"

func TestParseStartTimes(t *testing.T) {
	cases := []struct {
		in   string
		want []float64
	}{
		{"0 2.5 5", []float64{0, 2.5, 5}},
		{"0,2.5,5", []float64{0, 2.5, 5}},
		{"  0 ,  2.5 ", []float64{0, 2.5}},
		{"", nil},
	}
	for _, tc := range cases {
		got, err := ParseStartTimes(tc.in)
		if err != nil {
			t.Errorf("ParseStartTimes(%q) returned error: %v", tc.in, err)
			continue
		}
		if len(got) != len(tc.want) {
			t.Errorf("ParseStartTimes(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("ParseStartTimes(%q)[%d] = %v, want %v", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}

func TestParseStartTimesInvalid(t *testing.T) {
	if _, err := ParseStartTimes("0 two 4"); err == nil {
		t.Fatal("expected error for non-numeric start time")
	}
}

func TestReconcileStartTimes(t *testing.T) {
	cases := []struct {
		name   string
		starts []float64
		count  int
		want   []float64
	}{
		{"exact", []float64{0, 1, 2}, 3, []float64{0, 1, 2}},
		{"truncated", []float64{0, 1, 2, 3, 4}, 3, []float64{0, 1, 2}},
		{"extended", []float64{0, 1, 2}, 5, []float64{0, 1, 2, 5, 8}},
		{"empty", nil, 3, []float64{0, 3, 6}},
		{"zero images", []float64{0, 1}, 0, nil},
	}
	for _, tc := range cases {
		got := ReconcileStartTimes(tc.starts, tc.count)
		if len(got) != len(tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s: index %d got %v, want %v", tc.name, i, got[i], tc.want[i])
			}
		}
	}
}

func TestBuildTimeline(t *testing.T) {
	paths := []string{"a.png", "b.png", "c.png"}
	slots, err := BuildTimeline(paths, []float64{0, 2, 5}, 9)
	if err != nil {
		t.Fatalf("BuildTimeline returned error: %v", err)
	}

	want := []ImageSlot{
		{Path: "a.png", Index: 0, Start: 0, Duration: 2},
		{Path: "b.png", Index: 1, Start: 2, Duration: 3},
		{Path: "c.png", Index: 2, Start: 5, Duration: 4},
	}
	for i, w := range want {
		if slots[i] != w {
			t.Errorf("slot %d: got %+v, want %+v", i, slots[i], w)
		}
	}
}

func TestBuildTimelineRejectsNegativeDuration(t *testing.T) {
	if _, err := BuildTimeline([]string{"a.png"}, []float64{10}, 5); err == nil {
		t.Fatal("expected error when image starts past the audio end")
	}
	if _, err := BuildTimeline([]string{"a.png", "b.png"}, []float64{5, 2}, 10); err == nil {
		t.Fatal("expected error for out-of-order start times")
	}
}
