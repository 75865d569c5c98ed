package di

import (
	"go.uber.org/fx"

	"github.com/marketbase/marketplace/internal/adapter/mailer"
	"github.com/marketbase/marketplace/internal/adapter/payments"
	"github.com/marketbase/marketplace/internal/adapter/uploads"
	"github.com/marketbase/marketplace/internal/app"
	"github.com/marketbase/marketplace/internal/config"
	"github.com/marketbase/marketplace/internal/logger"
	"github.com/marketbase/marketplace/internal/pkg/auth"
	"github.com/marketbase/marketplace/internal/server/http/handlers"
	"github.com/marketbase/marketplace/internal/server/http/router"
	"github.com/marketbase/marketplace/internal/storage/postgres"
	"github.com/marketbase/marketplace/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		mailer.Module,
		payments.Module,
		uploads.Module,
		usecase.Module,
		fx.Provide(
			func(client mailer.Client) usecase.Notifier { return client },
			func(client uploads.Client) usecase.Uploader { return client },
			func(client payments.Client) app.PaymentProvider { return client },
			func(facade *app.MarketplaceFacade) handlers.MarketplaceFacade { return facade },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
