package config

import (
	"fmt"
	"os"

	"github.com/Zhima-Mochi/minishop-pos/internal/domain/promotion"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// promotionFile mirrors the YAML layout:
//
//	promotions:
//	  - id: TWO_FOR_ONE_VOUCHER
//	    kind: paired_unit
//	    codes: [VOUCHER]
//	    description: "2-for-1: Buy 2, get 1 free"
//	  - id: BULK_TSHIRT
//	    kind: volume_threshold
//	    codes: [TSHIRT]
//	    threshold: 3
//	    amount: "1.00"
type promotionFile struct {
	Promotions []promotionEntry `yaml:"promotions"`
}

type promotionEntry struct {
	ID          string   `yaml:"id"`
	Kind        string   `yaml:"kind"`
	Codes       []string `yaml:"codes"`
	Description string   `yaml:"description"`
	BonusUnits  int      `yaml:"bonus_units,omitempty"`
	Threshold   int      `yaml:"threshold,omitempty"`
	Amount      string   `yaml:"amount,omitempty"`
}

// LoadPromotions reads the promotion catalog at path.
// An empty path yields promotion.Default().
func LoadPromotions(path string) (*promotion.Catalog, error) {
	if path == "" {
		return promotion.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading promotions %s: %w", path, err)
	}
	return ParsePromotions(data)
}

func ParsePromotions(data []byte) (*promotion.Catalog, error) {
	var file promotionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing promotions: %w", err)
	}

	rules := make([]promotion.Rule, 0, len(file.Promotions))
	for i, p := range file.Promotions {
		amount := decimal.Zero
		if p.Amount != "" {
			d, err := decimal.NewFromString(p.Amount)
			if err != nil {
				return nil, fmt.Errorf("promotion %d (%s): amount: %w", i, p.ID, err)
			}
			amount = d
		}
		rules = append(rules, promotion.Rule{
			ID:          promotion.ID(p.ID),
			Kind:        promotion.Kind(p.Kind),
			Codes:       p.Codes,
			Description: p.Description,
			BonusUnits:  p.BonusUnits,
			Threshold:   p.Threshold,
			Amount:      amount,
		})
	}

	catalog, err := promotion.NewCatalog(rules...)
	if err != nil {
		return nil, fmt.Errorf("building promotions: %w", err)
	}
	return catalog, nil
}
