package main

import (
	"github.com/dhamidi/javalink/config"
	"github.com/dhamidi/javalink/javaref"
)

func loadConfig(flags *globalFlags) (*config.Config, error) {
	return config.Load(flags.config)
}

func openSession(flags *globalFlags) (*config.Config, *javaref.Session, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.SessionOptions()
	if err != nil {
		return nil, nil, err
	}
	return cfg, javaref.NewSession(opts), nil
}
