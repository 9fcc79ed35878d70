package main

import (
	"github.com/cibf/call-postprocessor/internal/app"
	"github.com/cibf/call-postprocessor/internal/kafka"
	"github.com/cibf/call-postprocessor/internal/server"
)

func main() {
	app.Invoke(
		server.StartServer,
		kafka.StartConsumeTranscripts,
	).Run()
}
