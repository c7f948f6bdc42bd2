package httppresentation

import (
	appShop "github.com/Zhima-Mochi/minishop-pos/internal/application/shop"
	"github.com/Zhima-Mochi/minishop-pos/internal/domain/display"
	"github.com/Zhima-Mochi/minishop-pos/internal/domain/promotion"
)

type lineResponse struct {
	Code                string `json:"code"`
	Name                string `json:"name"`
	Quantity            int    `json:"quantity"`
	UnitPrice           string `json:"unit_price"`
	Discount            string `json:"discount"`
	DiscountedUnitPrice string `json:"discounted_unit_price"`
	Total               string `json:"total"`
}

type cartResponse struct {
	CartID                  string          `json:"cart_id"`
	Products                []display.Entry `json:"products"`
	Lines                   []lineResponse  `json:"lines"`
	TotalQuantity           int             `json:"total_quantity"`
	TotalPrice              string          `json:"total_price"`
	TotalDiscount           string          `json:"total_discount"`
	TotalPriceWithDiscounts string          `json:"total_price_with_discounts"`
	Summary                 string          `json:"summary"`
	CatalogEmpty            bool            `json:"catalog_empty"`
}

func newCartResponse(s *appShop.Snapshot) cartResponse {
	lines := make([]lineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, lineResponse{
			Code:                l.Code,
			Name:                l.Name,
			Quantity:            l.Quantity,
			UnitPrice:           l.UnitPrice.StringFixed(2),
			Discount:            l.Discount.StringFixed(2),
			DiscountedUnitPrice: l.DiscountedUnitPrice().StringFixed(2),
			Total:               l.Total().StringFixed(2),
		})
	}
	products := s.Entries
	if products == nil {
		products = []display.Entry{}
	}
	return cartResponse{
		CartID:                  s.CartID,
		Products:                products,
		Lines:                   lines,
		TotalQuantity:           s.TotalQuantity,
		TotalPrice:              s.TotalPrice.StringFixed(2),
		TotalDiscount:           s.TotalDiscount.StringFixed(2),
		TotalPriceWithDiscounts: s.TotalPriceWithDiscounts.StringFixed(2),
		Summary:                 s.Summary,
		CatalogEmpty:            s.CatalogEmpty,
	}
}

type promotionResponse struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Codes       []string `json:"codes"`
	Description string   `json:"description"`
	BonusUnits  int      `json:"bonus_units,omitempty"`
	Threshold   int      `json:"threshold,omitempty"`
	Amount      string   `json:"amount,omitempty"`
}

func newPromotionResponse(r promotion.Rule) promotionResponse {
	resp := promotionResponse{
		ID:          string(r.ID),
		Kind:        string(r.Kind),
		Codes:       r.Codes,
		Description: r.Description,
		BonusUnits:  r.BonusUnits,
	}
	if r.Kind == promotion.KindVolumeThreshold {
		resp.Threshold = r.Threshold
		resp.Amount = r.Amount.StringFixed(2)
	}
	return resp
}
