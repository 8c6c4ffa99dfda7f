//go:build wireinject

package main

import (
	"io"

	"github.com/google/wire"
)

func initApplication(out io.Writer) (*application, error) {
	wire.Build(
		provideConfig,
		provideLogger,
		provideStopwatch,
		provideProbeConfig,
		provideProber,
		newApplication,
	)
	return nil, nil
}
