package http

import (
	"embed"
	"html/template"

	"github.com/go-playground/validator/v10"

	"github.com/vogiaan1904/ticketbottle-nftmarket/config"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/service"
	"github.com/vogiaan1904/ticketbottle-nftmarket/internal/view"
	"github.com/vogiaan1904/ticketbottle-nftmarket/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	sessSvc   service.SessionService
	walletSvc service.WalletService
	mktSvc    service.MarketplaceService
	content   *view.Content
	tmpl      *template.Template
	sessConf  config.SessionConfig
	simConf   config.SimulationConfig
	l         logger.Logger
	validator *validator.Validate
}

func NewHandler(
	sessSvc service.SessionService,
	walletSvc service.WalletService,
	mktSvc service.MarketplaceService,
	sessConf config.SessionConfig,
	simConf config.SimulationConfig,
	l logger.Logger,
) (*Handler, error) {
	content, err := view.LoadContent()
	if err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{
		sessSvc:   sessSvc,
		walletSvc: walletSvc,
		mktSvc:    mktSvc,
		content:   content,
		tmpl:      tmpl,
		sessConf:  sessConf,
		simConf:   simConf,
		l:         l,
		validator: validator.New(),
	}, nil
}
