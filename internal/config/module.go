package config

import "go.uber.org/fx"

// Module provides environment configuration to the fx graph.
var Module = fx.Provide(Load)
