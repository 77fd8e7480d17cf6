package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mash-protocol/fram-go/pkg/fram"
)

func TestNames(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"fm24c16b", "fm24cl04b", "fm24cl16b"}, names)
}

func TestPresetsValidate(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			p, err := Load(name)
			require.NoError(t, err)
			assert.Equal(t, name, p.Name)
			assert.NotEmpty(t, p.Description)

			_, err = p.Config()
			assert.NoError(t, err)
		})
	}
}

func TestDefaultMatchesDriverDefaults(t *testing.T) {
	p, err := Load(Default)
	require.NoError(t, err)

	cfg, err := p.Config()
	require.NoError(t, err)
	assert.Equal(t, fram.DefaultConfig(), cfg)
}

func TestSmallPart(t *testing.T) {
	p, err := Load("fm24cl04b")
	require.NoError(t, err)

	cfg, err := p.Config()
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Capacity())
	assert.Equal(t, 2, cfg.Pages)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("fm99x")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `name: custom
address: 0xA4
pages: 2
page_size: 128
chunk_size: 16
timeout: 250ms
exclusive: true
diagnostics: false
page_wrap: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)

	cfg, err := p.Config()
	require.NoError(t, err)

	assert.Equal(t, "custom", cfg.Name)
	assert.Equal(t, uint8(0xA4), cfg.WriteAddress)
	assert.Equal(t, uint8(0xA5), cfg.ReadAddress)
	assert.Equal(t, 2, cfg.Pages)
	assert.Equal(t, 128, cfg.PageSize)
	assert.Equal(t, 16, cfg.ChunkSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, fram.DefaultPollInterval, cfg.PollInterval)
	assert.True(t, cfg.Exclusive)
	assert.False(t, cfg.Diagnostics)
	assert.True(t, cfg.PageWrap)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no name", "pages: 8\n"},
		{"unknown field", "name: x\nsize: 2048\n"},
		{"bad duration", "name: x\ntimeout: soon\n"},
		{"not yaml", "name: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestConfigRejectsInvalidGeometry(t *testing.T) {
	p, err := Parse([]byte("name: bad\npages: 3\n"))
	require.NoError(t, err)

	_, err = p.Config()
	assert.ErrorIs(t, err, fram.ErrInvalidConfig)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigRejectsReadAddress(t *testing.T) {
	p, err := Parse([]byte("name: odd\naddress: 0xA1\n"))
	require.NoError(t, err)

	_, err = p.Config()
	assert.ErrorIs(t, err, fram.ErrInvalidConfig)
}

func TestLoadReturnsCopy(t *testing.T) {
	p, err := Load(Default)
	require.NoError(t, err)

	p.Pages = 3
	p.Name = "changed"
	off := false
	p.Diagnostics = &off

	again, err := Load(Default)
	require.NoError(t, err)
	assert.Equal(t, Default, again.Name)

	cfg, err := again.Config()
	require.NoError(t, err)
	assert.Equal(t, fram.DefaultConfig(), cfg)
}
