package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// config is cipcd's on-disk configuration, loaded from YAML the way
// bureau-foundation-bureau's daemon binaries load theirs — the teacher
// itself carries no configuration surface (BX-D-mini-RPC wires its socket
// paths and etcd endpoints directly into main-less package tests), so this
// shape is grounded on the pack's config-file convention instead.
type config struct {
	Socket string `yaml:"socket"`

	Etcd struct {
		Endpoints []string `yaml:"endpoints"`
		TTL       int64    `yaml:"ttl_seconds"`
	} `yaml:"etcd"`

	RateLimit struct {
		PerSecond float64 `yaml:"per_second"`
		Burst     int     `yaml:"burst"`
	} `yaml:"rate_limit"`

	CallTimeoutSeconds int `yaml:"call_timeout_seconds"`
	Workers            int `yaml:"workers"`
}

func (c config) callTimeout() time.Duration {
	return time.Duration(c.CallTimeoutSeconds) * time.Second
}

func defaultConfig() config {
	var c config
	c.Socket = "/tmp/cipcd.sock"
	c.Etcd.Endpoints = []string{"localhost:2379"}
	c.Etcd.TTL = 10
	c.RateLimit.PerSecond = 100
	c.RateLimit.Burst = 20
	c.CallTimeoutSeconds = 5
	c.Workers = 4
	return c
}

// loadConfig reads path if it exists, layering its fields over
// defaultConfig — a missing file is not an error, since every field has a
// usable default and the demo binary should run with zero setup.
func loadConfig(path string) (config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("cipcd: read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("cipcd: parse config %s: %w", path, err)
	}
	return c, nil
}
