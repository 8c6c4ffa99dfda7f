package main

import (
	"stopwatch/internal/infra"
	"stopwatch/internal/probe"
)

type application struct {
	Config infra.Config
	Logger *infra.Logger
	Prober *probe.Prober
}

func newApplication(cfg infra.Config, logger *infra.Logger, prober *probe.Prober) *application {
	return &application{
		Config: cfg,
		Logger: logger,
		Prober: prober,
	}
}
