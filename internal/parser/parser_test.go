package parser

import (
	"regexp"
	"strings"
	"testing"
)

var rePullTimeShape = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`)

func TestParse_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n\t\n"} {
		res := Parse(text, nil)
		if res.Valid {
			t.Errorf("Parse(%q) unexpectedly valid", text)
		}
		if res.ErrorMessage == "" {
			t.Errorf("Parse(%q) has empty error message", text)
		}
		if len(res.Entries) != 0 {
			t.Errorf("Parse(%q) returned entries on failure", text)
		}
	}
}

func TestParse_NoMatch(t *testing.T) {
	res := Parse("nothing here resembles a pull\nstill nothing", nil)
	if res.Valid {
		t.Fatal("expected invalid result")
	}
	if res.ErrorMessage == "" {
		t.Fatal("expected a non-empty error message")
	}
}

func TestParse_StructuredSinglePull(t *testing.T) {
	res := Parse("1  (3:24)\n48%\nP2\n7:46 PM\n", nil)
	if !res.Valid {
		t.Fatalf("parse failed: %s", res.ErrorMessage)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(res.Entries))
	}
	e := res.Entries[0]
	if e.Name != "Pull 1: P2 - 48% (3:24)" {
		t.Errorf("name = %q", e.Name)
	}
	if e.PullTime != "19:46:00" {
		t.Errorf("pullTime = %q", e.PullTime)
	}
}

func TestParse_StructuredMultiplePulls(t *testing.T) {
	text := strings.Join([]string{
		"12  (8:02)",
		"I1",
		"3%",
		"9:15 PM",
		"",
		"13  (1:10)",
		"11:58 PM",
		"",
		"14  (0:45)",
		"12:10 AM",
	}, "\n")

	res := Parse(text, nil)
	if !res.Valid {
		t.Fatalf("parse failed: %s", res.ErrorMessage)
	}
	if len(res.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(res.Entries))
	}

	wantNames := []string{"Pull 12: I1 - 3% (8:02)", "Pull 13 (1:10)", "Pull 14 (0:45)"}
	wantTimes := []string{"21:15:00", "23:58:00", "00:10:00"}
	for i, e := range res.Entries {
		if e.Name != wantNames[i] {
			t.Errorf("entry %d name = %q, want %q", i, e.Name, wantNames[i])
		}
		if e.PullTime != wantTimes[i] {
			t.Errorf("entry %d pullTime = %q, want %q", i, e.PullTime, wantTimes[i])
		}
		if !rePullTimeShape.MatchString(e.PullTime) {
			t.Errorf("entry %d pullTime %q not HH:MM:SS", i, e.PullTime)
		}
	}
}

func TestParse_StructuredFieldsResetBetweenPulls(t *testing.T) {
	// Health and phase from the first pull must not leak into the second.
	text := "1  (3:24)\n48%\nP2\n7:46 PM\n2  (2:00)\n8:03 PM\n"
	res := Parse(text, nil)
	if !res.Valid || len(res.Entries) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Entries[1].Name != "Pull 2 (2:00)" {
		t.Errorf("second entry name = %q, want %q", res.Entries[1].Name, "Pull 2 (2:00)")
	}
}

func TestParse_TimeWithoutPullNumberIgnored(t *testing.T) {
	// A clock token before any pull-number line must not emit.
	text := "7:30 PM\n1  (3:24)\n7:46 PM\n"
	res := Parse(text, nil)
	if !res.Valid {
		t.Fatalf("parse failed: %s", res.ErrorMessage)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(res.Entries))
	}
	if res.Entries[0].PullTime != "19:46:00" {
		t.Errorf("pullTime = %q", res.Entries[0].PullTime)
	}
}

func TestParse_BareTimeNames(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantName string
		wantTime string
	}{
		{
			name:     "text before the time",
			line:     "Nidhogg wipe 21:03:47 (pull 12)",
			wantName: "Nidhogg",
			wantTime: "21:03:47",
		},
		{
			name:     "text after the time",
			line:     "19:46:00 Second platform attempt",
			wantName: "Second platform",
			wantTime: "19:46:00",
		},
		{
			name:     "placeholder when line is only a time",
			line:     "20:15:30",
			wantName: "Pull 1",
			wantTime: "20:15:30",
		},
		{
			name:     "twelve hour token converts",
			line:     "final phase 9:05:10 PM",
			wantName: "final phase",
			wantTime: "21:05:10",
		},
		{
			name:     "stripping falls back when too little remains",
			line:     "wipe 22:00:01",
			wantName: "wipe",
			wantTime: "22:00:01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.line, nil)
			if !res.Valid {
				t.Fatalf("parse failed: %s", res.ErrorMessage)
			}
			if len(res.Entries) != 1 {
				t.Fatalf("got %d entries, want 1", len(res.Entries))
			}
			if res.Entries[0].Name != tt.wantName {
				t.Errorf("name = %q, want %q", res.Entries[0].Name, tt.wantName)
			}
			if res.Entries[0].PullTime != tt.wantTime {
				t.Errorf("pullTime = %q, want %q", res.Entries[0].PullTime, tt.wantTime)
			}
		})
	}
}

func TestParse_BareTimeLongPrefixFallsBackToSuffix(t *testing.T) {
	prefix := strings.Repeat("x", 60)
	res := Parse(prefix+" 20:00:00 Golem", nil)
	if !res.Valid || len(res.Entries) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Entries[0].Name != "Golem" {
		t.Errorf("name = %q, want %q", res.Entries[0].Name, "Golem")
	}
}

func TestParse_StructuredWinsOverBareTime(t *testing.T) {
	// Both strategies could match here; the structured one runs first.
	text := "1  (3:24)\n7:46 PM\nextra note 20:00:00\n"
	res := Parse(text, nil)
	if !res.Valid {
		t.Fatalf("parse failed: %s", res.ErrorMessage)
	}
	if res.Entries[0].Name != "Pull 1 (3:24)" {
		t.Errorf("name = %q, structured strategy should have won", res.Entries[0].Name)
	}
}

func TestParse_EntryIDsUniqueWithinCall(t *testing.T) {
	text := "1  (1:00)\n7:01 PM\n2  (1:00)\n7:05 PM\n3  (1:00)\n7:09 PM\n"
	res := Parse(text, nil)
	if !res.Valid {
		t.Fatalf("parse failed: %s", res.ErrorMessage)
	}
	seen := make(map[string]bool)
	for _, e := range res.Entries {
		if e.ID == "" {
			t.Error("empty entry ID")
		}
		if seen[e.ID] {
			t.Errorf("duplicate entry ID %q", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestParse_CustomRules(t *testing.T) {
	rules := &Rules{
		MaxNameLength:       50,
		NoiseWords:          []string{"enrage"},
		StripParentheticals: true,
	}
	if err := rules.Validate(); err != nil {
		t.Fatalf("rules invalid: %v", err)
	}

	res := Parse("Titan enrage 21:10:00", rules)
	if !res.Valid || len(res.Entries) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Entries[0].Name != "Titan" {
		t.Errorf("name = %q, want %q", res.Entries[0].Name, "Titan")
	}
}
