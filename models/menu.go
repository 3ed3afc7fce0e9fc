package models

import "github.com/shopspring/decimal"

type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Available   bool            `json:"available"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}
