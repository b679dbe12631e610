/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/constants"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/options"
	"github.com/unikorn-cloud/placeholder-conformance/pkg/server"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

func main() {
	var (
		logging    options.Logging
		listen     string
		latency    time.Duration
		corsOrigin string
	)

	pflag.StringVar(&listen, "listen-address", ":8080", "Address to serve the fake provider on.")
	pflag.DurationVar(&latency, "latency", 0, "Artificial delay added to every response.")
	pflag.StringVar(&corsOrigin, "cors-origin", "", "Emit Access-Control-Allow-Origin with this value.")

	logging.AddFlags(pflag.CommandLine)

	pflag.Parse()

	logging.Setup()

	logger := log.Log.WithName("init")
	logger.Info("fake provider starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	opts := []server.Option{server.WithLatency(latency)}

	if corsOrigin != "" {
		opts = append(opts, server.WithCORS(corsOrigin))
	}

	httpServer := &http.Server{
		Addr:              listen,
		Handler:           server.New(opts...).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx := cr.SetupSignalHandler()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "graceful shutdown failed")
		}
	}()

	logger.Info("listening", "address", listen)

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Println(err)
		os.Exit(1)
	}
}
