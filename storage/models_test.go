package storage

import "testing"

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusNone, false},
		{StatusIndexed, false},
		{StatusInvalid, true},
		{StatusUploaded, true},
	}
	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("Status(%q).Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestCreatorResolved(t *testing.T) {
	c := &Creator{Key: "ACME", Handle: "@acme"}
	if c.Resolved() {
		t.Error("creator without channel ID must not be resolved")
	}
	c.ChannelID = "UC123"
	if !c.Resolved() {
		t.Error("creator with channel ID must be resolved")
	}
}
