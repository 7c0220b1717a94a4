package config

import (
	"fmt"
	"os"
	"time"

	json "github.com/json-iterator/go"
)

var strictJSON = json.Config{DisallowUnknownFields: true}.Froze()

// file mirrors Config in a JSON-friendly form. Pointers distinguish absent fields, which
// keep their defaults, from explicitly zeroed ones. Durations are Go duration strings.
type file struct {
	Server *struct {
		Root        *string `json:"root"`
		DefaultFile *string `json:"default_file"`
		Name        *string `json:"name"`
	} `json:"server"`
	Workers *struct {
		Number        *int    `json:"number"`
		ShutdownGrace *string `json:"shutdown_grace"`
	} `json:"workers"`
	URI *struct {
		RequestLineSize *int `json:"request_line_size"`
	} `json:"uri"`
	Headers *struct {
		Default *int `json:"default"`
		Maximal *int `json:"maximal"`
	} `json:"headers"`
	NET *struct {
		ReadBufferSize            *int    `json:"read_buffer_size"`
		ReadTimeout               *string `json:"read_timeout"`
		AcceptLoopInterruptPeriod *string `json:"accept_loop_interrupt_period"`
		WriteBufferSize           *int    `json:"write_buffer_size"`
	} `json:"net"`
}

// Load reads a JSON configuration file and applies it on top of Default(). The result
// is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse is Load operating on the file contents.
func Parse(data []byte) (*Config, error) {
	var f file
	if err := strictJSON.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := Default()
	if err := f.apply(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func (f file) apply(cfg *Config) (err error) {
	if s := f.Server; s != nil {
		set(&cfg.Server.Root, s.Root)
		set(&cfg.Server.DefaultFile, s.DefaultFile)
		set(&cfg.Server.Name, s.Name)
	}

	if w := f.Workers; w != nil {
		set(&cfg.Workers.Number, w.Number)
		if err = setDuration(&cfg.Workers.ShutdownGrace, w.ShutdownGrace); err != nil {
			return err
		}
	}

	if u := f.URI; u != nil {
		set(&cfg.URI.RequestLineSize.Maximal, u.RequestLineSize)
	}

	if h := f.Headers; h != nil {
		set(&cfg.Headers.Number.Default, h.Default)
		set(&cfg.Headers.Number.Maximal, h.Maximal)
	}

	if n := f.NET; n != nil {
		set(&cfg.NET.ReadBufferSize, n.ReadBufferSize)
		set(&cfg.NET.WriteBufferSize, n.WriteBufferSize)
		if err = setDuration(&cfg.NET.ReadTimeout, n.ReadTimeout); err != nil {
			return err
		}

		if err = setDuration(&cfg.NET.AcceptLoopInterruptPeriod, n.AcceptLoopInterruptPeriod); err != nil {
			return err
		}
	}

	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *string) error {
	if src == nil {
		return nil
	}

	d, err := time.ParseDuration(*src)
	if err != nil {
		return err
	}

	*dst = d
	return nil
}
