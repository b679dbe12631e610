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

package options

import (
	"flag"

	"github.com/spf13/pflag"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Logging configures the process wide logger.
type Logging struct {
	zap zap.Options
}

// AddFlags exposes the zap flags (--zap-log-level, --zap-devel etc.) on f.
func (l *Logging) AddFlags(f *pflag.FlagSet) {
	flags := flag.NewFlagSet("logging", flag.ContinueOnError)

	l.zap.BindFlags(flags)

	f.AddGoFlagSet(flags)
}

// Setup installs the logger, call it after flags are parsed.
func (l *Logging) Setup() {
	log.SetLogger(zap.New(zap.UseFlagOptions(&l.zap)))
}
