package clipboard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := map[string][]string{
		"":                           nil,
		"pbcopy":                     {"pbcopy"},
		"xclip -selection clipboard": {"xclip", "-selection", "clipboard"},
		`sh -c "cat > out.txt"`:      {"sh", "-c", "cat > out.txt"},
		`  wl-copy   --trim-newline`: {"wl-copy", "--trim-newline"},
		`tee 'it''s'`:                {"tee", "its"},
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, parseCommand(in))
		})
	}
}

func TestWriteUsesConfiguredCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}

	out := filepath.Join(t.TempDir(), "clip.txt")
	svc := NewService(`sh -c "cat > `+out+`"`, nil).(*clipboardService)
	svc.writeAll = func(string) error {
		t.Fatal("system clipboard must not be used when a command is configured")
		return nil
	}

	require.NoError(t, svc.Write(context.Background(), "https://allanime.to/anime/abc"))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "https://allanime.to/anime/abc", string(got))
}

func TestWriteCommandFailure(t *testing.T) {
	svc := NewService("definitely-not-a-real-clipboard-tool", nil)

	err := svc.Write(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definitely-not-a-real-clipboard-tool")
}

func TestWriteSystemClipboard(t *testing.T) {
	svc := NewService("", nil).(*clipboardService)

	var copied string
	svc.writeAll = func(text string) error {
		copied = text
		return nil
	}

	require.NoError(t, svc.Write(context.Background(), "hello"))
	assert.Equal(t, "hello", copied)
}

func TestWriteSystemClipboardFailure(t *testing.T) {
	if isWSL() {
		t.Skip("falls back to clip.exe under WSL")
	}

	svc := NewService("", nil).(*clipboardService)
	svc.writeAll = func(string) error { return errors.New("no xclip") }

	err := svc.Write(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no xclip")
}
