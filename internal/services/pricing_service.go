package services

import (
	"context"
	"errors"
	"local_delivery/internal/models"
	"local_delivery/internal/repository"

	"github.com/shopspring/decimal"
)

// PricingRules are the amounts applied to every order. Settings stored in
// the database override the configured defaults.
type PricingRules struct {
	TaxRatePercent   float64 `json:"tax_rate_percent"`
	DeliveryFee      float64 `json:"delivery_fee"`
	DeliveryRadiusKm float64 `json:"delivery_radius_km"`
}

type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	Taxes       float64 `json:"taxes"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

type PricingService interface {
	Rules(ctx context.Context) (PricingRules, error)
	Quote(ctx context.Context, items []models.OrderItem) (Totals, error)
}

type pricingService struct {
	settingsRepo repository.SettingsRepository
	defaults     PricingRules
}

func NewPricingService(settingsRepo repository.SettingsRepository, defaults PricingRules) PricingService {
	return &pricingService{settingsRepo: settingsRepo, defaults: defaults}
}

func (s *pricingService) Rules(ctx context.Context) (PricingRules, error) {
	rules := s.defaults

	var err error
	if rules.TaxRatePercent, err = s.setting(ctx, models.SettingTaxRate, rules.TaxRatePercent); err != nil {
		return PricingRules{}, err
	}
	if rules.DeliveryFee, err = s.setting(ctx, models.SettingDeliveryFee, rules.DeliveryFee); err != nil {
		return PricingRules{}, err
	}
	if rules.DeliveryRadiusKm, err = s.setting(ctx, models.SettingDeliveryRadiusKm, rules.DeliveryRadiusKm); err != nil {
		return PricingRules{}, err
	}
	return rules, nil
}

func (s *pricingService) setting(ctx context.Context, name string, fallback float64) (float64, error) {
	setting, err := s.settingsRepo.GetSettings(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return 0, storage("failed to get "+name+" setting", err)
	}
	return setting.Value, nil
}

// Quote prices a set of line items: tax is a percentage of the subtotal and
// the delivery fee only applies to a non-empty order.
func (s *pricingService) Quote(ctx context.Context, items []models.OrderItem) (Totals, error) {
	rules, err := s.Rules(ctx)
	if err != nil {
		return Totals{}, err
	}
	return computeTotals(items, rules), nil
}

func computeTotals(items []models.OrderItem, rules PricingRules) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(lineTotal(item.UnitPrice, item.Quantity))
	}

	taxes := subtotal.Mul(decimal.NewFromFloat(rules.TaxRatePercent)).Div(decimal.NewFromInt(100)).Round(2)
	fee := decimal.Zero
	if subtotal.IsPositive() {
		fee = decimal.NewFromFloat(rules.DeliveryFee).Round(2)
	}
	total := subtotal.Add(taxes).Add(fee)

	return Totals{
		Subtotal:    subtotal.Round(2).InexactFloat64(),
		Taxes:       taxes.InexactFloat64(),
		DeliveryFee: fee.InexactFloat64(),
		Total:       total.Round(2).InexactFloat64(),
	}
}

func lineTotal(unitPrice float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// sameAmount compares two money amounts at cent precision.
func sameAmount(a, b float64) bool {
	diff := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs()
	return diff.LessThanOrEqual(decimal.New(1, -2))
}
