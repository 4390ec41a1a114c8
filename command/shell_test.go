package command

import "testing"

func TestShellJoin(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "Plain args stay bare",
			args:     []string{"-f", "concat", "-i", "/lists/concat_00000.txt"},
			expected: "ffmpeg -f concat -i /lists/concat_00000.txt",
		},
		{
			name:     "Space in path",
			args:     []string{"-i", "/my videos/list.txt"},
			expected: "ffmpeg -i '/my videos/list.txt'",
		},
		{
			name:     "Single quote in path",
			args:     []string{"-i", "/videos/it's here.mp4"},
			expected: `ffmpeg -i '/videos/it'\''s here.mp4'`,
		},
		{
			name:     "Glob characters",
			args:     []string{"/out/frame_*.jpg"},
			expected: "ffmpeg '/out/frame_*.jpg'",
		},
		{
			name:     "Empty argument",
			args:     []string{""},
			expected: "ffmpeg ''",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShellJoin("ffmpeg", tt.args); got != tt.expected {
				t.Errorf("ShellJoin() = %q, want %q", got, tt.expected)
			}
		})
	}
}
