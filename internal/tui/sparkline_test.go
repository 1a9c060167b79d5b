package tui

import "testing"

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name    string
		history []int
		width   int
		want    string
	}{
		{"empty", nil, 10, ""},
		{"zero width", []int{50}, 0, ""},
		{"bounds", []int{100, 0}, 10, "▁█"},
		{"oldest on the left", []int{50, 14, 100}, 10, "█▁▄"},
		{"clamped", []int{150, -3}, 10, "▁█"},
		{"keeps most recent", []int{100, 0, 0, 0}, 2, "▁█"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderSparkline(tt.history, tt.width); got != tt.want {
				t.Errorf("RenderSparkline(%v, %d) = %q, want %q", tt.history, tt.width, got, tt.want)
			}
		})
	}
}
