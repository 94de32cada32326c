package shopping

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"recipehub/pkg/models"
)

// StoreCost is the price of a shopping list at one store.
type StoreCost struct {
	Store string           `json:"-"`
	Items models.PriceList `json:"items"`
	Total float64          `json:"total"`

	total decimal.Decimal
}

// StoreCosts keeps one entry per store name in first-seen order and encodes
// as a JSON object keyed by store name.
type StoreCosts []StoreCost

func (sc *StoreCosts) set(c StoreCost) {
	for i := range *sc {
		if (*sc)[i].Store == c.Store {
			(*sc)[i] = c
			return
		}
	}
	*sc = append(*sc, c)
}

func (sc StoreCosts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range sc {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Store)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object form written by MarshalJSON, keeping the
// store order of the document.
func (sc *StoreCosts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*sc = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("store costs: expected object, got %v", tok)
	}

	out := StoreCosts{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		var c StoreCost
		if err := dec.Decode(&c); err != nil {
			return fmt.Errorf("store costs: %w", err)
		}
		c.Store = tok.(string)
		c.total = decimal.NewFromFloat(c.Total)
		out.set(c)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*sc = out
	return nil
}

// Result is a priced shopping list across every known store.
type Result struct {
	ShoppingList  models.Ingredients `json:"shopping_list"`
	StoreCosts    StoreCosts         `json:"store_costs"`
	CheapestStore string             `json:"cheapest_store"`
	TotalCost     float64            `json:"total_cost"`
}

// Combine merges the ingredients of recipes under their normalized labels.
// A label seen twice keeps its position and its quantities are joined as
// text ("2, plus 1"), so numeric amounts are not summed.
func Combine(recipes []models.Recipe) models.Ingredients {
	list := models.Ingredients{}
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			key := Normalize(ing.Name)
			if existing, ok := list.Get(key); ok {
				list.Set(key, existing.Plus(ing.Quantity))
				continue
			}
			list.Set(key, ing.Quantity)
		}
	}
	return list
}

// PriceAt prices every item of list against the store catalog.
func PriceAt(list models.Ingredients, store models.Store) StoreCost {
	cost := StoreCost{
		Store: store.Name,
		Items: make(models.PriceList, 0, len(list)),
		total: decimal.Zero,
	}
	for _, item := range list {
		price := Match(item.Name, store.Prices)
		cost.Items.Set(item.Name, price)
		cost.total = cost.total.Add(decimal.NewFromFloat(price))
	}
	cost.Total = cost.total.InexactFloat64()
	return cost
}

// Aggregate combines the recipes into one shopping list, prices it at
// every store and picks the cheapest. On equal totals the store seen first
// wins. It returns ErrNoStores when stores is empty.
func Aggregate(recipes []models.Recipe, stores []models.Store) (*Result, error) {
	if len(stores) == 0 {
		return nil, ErrNoStores
	}

	res := &Result{ShoppingList: Combine(recipes)}
	for _, s := range stores {
		res.StoreCosts.set(PriceAt(res.ShoppingList, s))
	}

	cheapest := res.StoreCosts[0]
	for _, c := range res.StoreCosts[1:] {
		if c.total.LessThan(cheapest.total) {
			cheapest = c
		}
	}
	res.CheapestStore = cheapest.Store
	res.TotalCost = cheapest.Total
	return res, nil
}
