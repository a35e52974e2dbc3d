package usecase

import (
	"testing"
	"time"
)

func TestOffsetMatcher(t *testing.T) {
	tests := []struct {
		text   string
		want   time.Duration
		wantOK bool
	}{
		{"meet client tomorrow at 15:00 remind 1 hour before", time.Hour, true},
		{"dentist friday remind me 2 days earlier", 48 * time.Hour, true},
		{"call remind me an hour in advance", time.Hour, true},
		{"standup remind 15 min ahead", 15 * time.Minute, true},
		{"exam remind me 3 blorps before", 72 * time.Hour, true},
		{"remind me in 2 hours", 0, false},
		{"buy milk", 0, false},
	}

	for _, tt := range tests {
		m, ok := offsetMatcher{}.Match(tt.text)
		if ok != tt.wantOK {
			t.Fatalf("Match(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
		}
		if ok && m.Delta != tt.want {
			t.Errorf("Match(%q) delta = %v, want %v", tt.text, m.Delta, tt.want)
		}
		if ok && tt.text[m.Start:m.End] != m.Text {
			t.Errorf("Match(%q) span does not match text %q", tt.text, m.Text)
		}
	}
}

func TestAbsoluteMatcher(t *testing.T) {
	text := "pay rent remind me at 9:30 tomorrow"
	m, ok := absoluteMatcher{}.Match(text)
	if !ok {
		t.Fatalf("expected match")
	}
	if m.Phrase != "9:30 tomorrow" {
		t.Errorf("phrase = %q", m.Phrase)
	}
	if text[m.PhraseStart:] != m.Phrase {
		t.Errorf("PhraseStart %d does not point at phrase", m.PhraseStart)
	}

	if _, ok := (absoluteMatcher{}).Match("meet at 9:30"); ok {
		t.Errorf("plain 'at' without remind cue should not match")
	}
}

func TestRelativeMatcher(t *testing.T) {
	tests := []struct {
		text string
		want time.Duration
		end  string
	}{
		{"remind me in 2 hours and 20 minutes to log into the game", 2*time.Hour + 20*time.Minute, " to log into the game"},
		{"remind in 1 day, 3 hours check mail", 27 * time.Hour, " check mail"},
		{"stretch remind me in 45 min", 45 * time.Minute, ""},
		{"remind me in an hour", time.Hour, ""},
	}

	for _, tt := range tests {
		m, ok := relativeMatcher{}.Match(tt.text)
		if !ok {
			t.Fatalf("Match(%q) expected match", tt.text)
		}
		if m.Delta != tt.want {
			t.Errorf("Match(%q) delta = %v, want %v", tt.text, m.Delta, tt.want)
		}
		if rest := tt.text[m.End:]; rest != tt.end {
			t.Errorf("Match(%q) leaves %q, want %q", tt.text, rest, tt.end)
		}
	}

	if _, ok := (relativeMatcher{}).Match("remind me in the evening"); ok {
		t.Errorf("no duration should not match")
	}
}

func TestRecurrenceMatcher(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"report every week on friday", "weekly", true},
		{"take pills every day", "daily", true},
		{"take pills everyday", "daily", true},
		{"pay rent monthly", "monthly", true},
		{"birthday annually", "yearly", true},
		{"water plants every 3 days", "every 3 days", true},
		{"sync every 2 weeks", "every 2 weeks", true},
		{"backup every 1 week", "weekly", true},
		{"buy milk", "", false},
		{"every weekday standup", "", false},
	}

	for _, tt := range tests {
		m, ok := recurrenceMatcher{}.Match(tt.text)
		if ok != tt.wantOK {
			t.Fatalf("Match(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
		}
		if m.Rule != tt.want {
			t.Errorf("Match(%q) rule = %q, want %q", tt.text, m.Rule, tt.want)
		}
	}
}

func TestDateCueMatcher(t *testing.T) {
	for _, text := range []string{"at 15:00", "on 5", "tomorrow", "next friday", "this evening", "tonight"} {
		if _, ok := (dateCueMatcher{}).Match(text); !ok {
			t.Errorf("expected cue in %q", text)
		}
	}
	for _, text := range []string{"buy milk", "call 2026 office", "eveningwear"} {
		if _, ok := (dateCueMatcher{}).Match(text); ok {
			t.Errorf("unexpected cue in %q", text)
		}
	}
}
