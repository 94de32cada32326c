package geo

import (
	"math"
	"sort"

	"recipehub/pkg/models"
)

// StoreDistance is a store together with its distance from the requester.
type StoreDistance struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Address  string           `json:"address"`
	Postcode string           `json:"postcode"`
	Distance float64          `json:"distance"` // km, two decimals
	Prices   models.PriceList `json:"prices"`
}

// RankByDistance returns every store with known coordinates, nearest
// first. Distances are rounded to two decimals before sorting; equal
// distances keep their input order.
func RankByDistance(origin Point, stores []models.Store) []StoreDistance {
	out := make([]StoreDistance, 0, len(stores))
	for _, s := range stores {
		lat, lon, ok := s.Coordinates()
		if !ok {
			continue
		}
		d := Haversine(origin, Point{Lat: lat, Lon: lon})
		out = append(out, StoreDistance{
			ID:       s.ID,
			Name:     s.Name,
			Address:  s.Address,
			Postcode: s.Postcode,
			Distance: round2(d),
			Prices:   s.Prices,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
