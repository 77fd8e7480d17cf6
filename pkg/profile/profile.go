// Package profile loads FRAM device profiles from YAML.
//
// Presets for the supported parts are embedded in the binary; user
// profiles use the same format:
//
//	name: fm24cl16b
//	address: 0xA0
//	pages: 8
//	page_size: 256
//	chunk_size: 32
//	timeout: 100ms
//
// Fields that are omitted keep their DefaultConfig value.
package profile

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/fram-go/pkg/fram"
)

//go:embed profiles/*.yaml
var profileFS embed.FS

// Default is the preset used when no profile is named.
const Default = "fm24cl16b"

// Profile describes a device part and driver options.
type Profile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Address is the 8-bit write address of page 0.
	Address uint8 `yaml:"address"`

	Pages     int `yaml:"pages"`
	PageSize  int `yaml:"page_size"`
	ChunkSize int `yaml:"chunk_size"`
	TxBuffer  int `yaml:"tx_buffer"`
	RxBuffer  int `yaml:"rx_buffer"`
	DumpBlock int `yaml:"dump_block"`

	Timeout      time.Duration `yaml:"timeout"`
	PollInterval time.Duration `yaml:"poll_interval"`

	Interrupt   bool  `yaml:"interrupt"`
	Exclusive   bool  `yaml:"exclusive"`
	Diagnostics *bool `yaml:"diagnostics"`
	PageWrap    bool  `yaml:"page_wrap"`
}

var (
	cacheMu sync.RWMutex
	cache   = make(map[string]*Profile)
)

// Load returns the embedded preset with the given name. Each call returns
// a fresh copy.
func Load(name string) (*Profile, error) {
	cacheMu.RLock()
	if p, ok := cache[name]; ok {
		cacheMu.RUnlock()
		return p.clone(), nil
	}
	cacheMu.RUnlock()

	data, err := profileFS.ReadFile("profiles/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("profile %q not found: %w", name, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing profile %q: %w", name, err)
	}

	cacheMu.Lock()
	cache[name] = p
	cacheMu.Unlock()

	return p.clone(), nil
}

// clone returns a copy that shares nothing with p.
func (p *Profile) clone() *Profile {
	c := *p
	if p.Diagnostics != nil {
		v := *p.Diagnostics
		c.Diagnostics = &v
	}
	return &c
}

// LoadFile reads a profile from path.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a YAML profile. Unknown fields are rejected.
func Parse(data []byte) (*Profile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Profile
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, errors.New("profile has no name")
	}
	return &p, nil
}

// Names returns the names of all embedded presets, sorted.
func Names() ([]string, error) {
	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		return nil, fmt.Errorf("reading profiles directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") {
			names = append(names, strings.TrimSuffix(name, ".yaml"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Config returns the driver configuration for the profile. It starts from
// fram.DefaultConfig and applies every field the profile sets.
func (p *Profile) Config() (fram.Config, error) {
	cfg := fram.DefaultConfig()
	cfg.Name = p.Name

	if p.Address != 0 {
		if p.Address&0x01 != 0 {
			return fram.Config{}, fmt.Errorf("profile %q: %w: address %#02x has the read bit set",
				p.Name, fram.ErrInvalidConfig, p.Address)
		}
		cfg.WriteAddress = p.Address
		cfg.ReadAddress = p.Address | 0x01
	}
	setInt(&cfg.Pages, p.Pages)
	setInt(&cfg.PageSize, p.PageSize)
	setInt(&cfg.ChunkSize, p.ChunkSize)
	setInt(&cfg.TxBufferSize, p.TxBuffer)
	setInt(&cfg.RxBufferSize, p.RxBuffer)
	setInt(&cfg.DumpBlockSize, p.DumpBlock)
	if p.Timeout != 0 {
		cfg.Timeout = p.Timeout
	}
	if p.PollInterval != 0 {
		cfg.PollInterval = p.PollInterval
	}
	cfg.Interrupt = p.Interrupt
	cfg.Exclusive = p.Exclusive
	cfg.PageWrap = p.PageWrap
	if p.Diagnostics != nil {
		cfg.Diagnostics = *p.Diagnostics
	}

	if err := cfg.Validate(); err != nil {
		return fram.Config{}, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return cfg, nil
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
