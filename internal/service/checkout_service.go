package service

import (
	"context"
	"fmt"
	"time"

	"vitrine/internal/adapter"
	"vitrine/internal/config"
	"vitrine/internal/models"
	"vitrine/internal/observability"
	"vitrine/internal/repository"

	"github.com/google/uuid"
)

// PaymentProvider creates PIX charges on an external gateway.
type PaymentProvider interface {
	CreateCharge(ctx context.Context, apiKey string, in adapter.ChargeInput) (*adapter.Charge, error)
}

type CheckoutService struct {
	settingsRepo repository.SettingsRepository
	cfg          *config.Config
	bestfy       PaymentProvider
}

func NewCheckoutService(settingsRepo repository.SettingsRepository, cfg *config.Config, bestfy PaymentProvider) *CheckoutService {
	return &CheckoutService{settingsRepo: settingsRepo, cfg: cfg, bestfy: bestfy}
}

// Checkout is the payment link handed back to the frontend.
type Checkout struct {
	Plano       string `json:"plano"`
	ValorCents  int    `json:"valor"`
	URL         string `json:"url"`
	Provider    string `json:"provider"`
	ReferenceID string `json:"referencia,omitempty"`
}

// Quote resolves the charge amount for a plan. Prices stored in the profile
// settings override the configured defaults.
func (s *CheckoutService) Quote(ctx context.Context, plano string) (int, error) {
	if !models.IsValidPlan(plano) {
		return 0, models.NewValidationError("Invalid plano")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return 0, err
	}

	var override, fallback int
	switch plano {
	case models.PlanMensal:
		override, fallback = settings.PrecoMensal, s.cfg.PrecoMensal
	case models.Plan3Meses:
		override, fallback = settings.Preco3Meses, s.cfg.Preco3Meses
	case models.Plan6Meses:
		override, fallback = settings.Preco6Meses, s.cfg.Preco6Meses
	case models.Plan12Meses:
		override, fallback = settings.Preco12Meses, s.cfg.Preco12Meses
	}
	if override > 0 {
		return override, nil
	}
	return fallback, nil
}

// Create issues a checkout through the configured default provider. The
// explicit Bestfy endpoint bypasses this and always hits the gateway.
func (s *CheckoutService) Create(ctx context.Context, plano, email string) (*Checkout, error) {
	if s.cfg.PixProvider == "bestfy" {
		return s.CreateBestfy(ctx, plano, email)
	}
	return s.CreateSimulated(ctx, plano, email)
}

// CreateSimulated issues a checkout link on the built-in simulated gateway.
// No money moves; the link encodes the charge so the frontend can render a
// fake payment screen.
func (s *CheckoutService) CreateSimulated(ctx context.Context, plano, email string) (*Checkout, error) {
	valor, err := s.Quote(ctx, plano)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ref := uuid.New().String()
	url := fmt.Sprintf("%s/checkout/%s?plano=%s&valor=%d", s.cfg.CheckoutHost, ref, plano, valor)
	observability.ObserveProviderCall("simulado", start, nil)

	return &Checkout{
		Plano:       plano,
		ValorCents:  valor,
		URL:         url,
		Provider:    "simulado",
		ReferenceID: ref,
	}, nil
}

// CreateBestfy issues a real PIX charge through the Bestfy gateway using the
// API key stored in the profile settings.
func (s *CheckoutService) CreateBestfy(ctx context.Context, plano, email string) (*Checkout, error) {
	valor, err := s.Quote(ctx, plano)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings.BestfyKey == "" {
		return nil, models.NewConfigMissingError("Bestfy key not configured")
	}

	charge, err := s.bestfy.CreateCharge(ctx, settings.BestfyKey, adapter.ChargeInput{
		AmountCents: valor,
		Description: fmt.Sprintf("Assinatura %s", plano),
		Metadata: map[string]string{
			"plano": plano,
			"email": email,
		},
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &Checkout{
		Plano:       plano,
		ValorCents:  valor,
		URL:         charge.CheckoutURL,
		Provider:    "bestfy",
		ReferenceID: charge.ID,
	}, nil
}
