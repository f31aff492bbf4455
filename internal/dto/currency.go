package dto

import (
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
)

// --- Currency DTOs ---

// CreateCurrencyRequest defines data for registering a currency.
type CreateCurrencyRequest struct {
	CurrencyCode  string `json:"currencyCode" binding:"required,iso4217"`
	Symbol        string `json:"symbol" binding:"required"`
	Name          string `json:"name" binding:"required"`
	DecimalPlaces int32  `json:"decimalPlaces" binding:"min=0,max=8"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string `json:"currencyCode"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	DecimalPlaces int32  `json:"decimalPlaces"`
}

// ToCurrencyResponse converts a domain.Currency to its DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  c.CurrencyCode,
		Symbol:        c.Symbol,
		Name:          c.Name,
		DecimalPlaces: c.DecimalPlaces,
	}
}

// ToListCurrenciesResponse converts a slice of domain.Currency to DTOs.
func ToListCurrenciesResponse(cs []domain.Currency) []CurrencyResponse {
	list := make([]CurrencyResponse, len(cs))
	for i, c := range cs {
		list[i] = ToCurrencyResponse(&c)
	}
	return list
}
