package models

import "github.com/shopspring/decimal"

type Product struct {
	Name      string          `json:"name"`
	PixPrice  decimal.Decimal `json:"pix_price"`
	CardPrice decimal.Decimal `json:"card_price"`
	ListPrice decimal.Decimal `json:"list_price"`
	Flavors   []string        `json:"flavors"`
	ImageURL  string          `json:"image_url"`
}

// GummyHair is the single product the storefront sells.
var GummyHair = Product{
	Name:      "Suplemento Alimentar Gummy Hair - 60 Unidades",
	PixPrice:  decimal.RequireFromString("19.87"),
	CardPrice: decimal.RequireFromString("48.13"),
	ListPrice: decimal.RequireFromString("82.99"),
	Flavors:   []string{"Morango", "Melancia", "Maçã Verde"},
	ImageURL:  "https://ykvvltnfhzbqykxcizij.supabase.co/storage/v1/object/public/produtos/br-11134103-7r98o-m148lhgwk4uoda.webp",
}

func (p Product) PriceFor(paymentMethod string) decimal.Decimal {
	if paymentMethod == PaymentMethodCard {
		return p.CardPrice
	}
	return p.PixPrice
}

func (p Product) HasFlavor(flavor string) bool {
	for _, f := range p.Flavors {
		if f == flavor {
			return true
		}
	}
	return false
}
