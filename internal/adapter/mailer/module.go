package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/marketbase/marketplace/internal/config"
)

// Module exposes the mail gateway client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.MailerAddress, p.Config.MailerTimeout, p.Logger)
}
