package stores

import "recipehub/pkg/models"

type seedStore struct {
	name, address, postcode string
	lat, lon                float64
	// flour, baking soda, brown sugar, eggs, granulated sugar, salt,
	// chocolate chips, unsalted butter, vanilla extract
	prices [9]float64
}

var seedLabels = [9]string{
	"all-purpose flour",
	"baking soda",
	"brown sugar",
	"eggs",
	"granulated sugar",
	"salt",
	"chocolate chips",
	"unsalted butter",
	"vanilla extract",
}

var seed = []seedStore{
	{"Tesco Extra Whitley Bay", "Newsteads Drive, Whitley Bay", "NE25 9UZ", 55.0478, -1.4827,
		[9]float64{1.65, 0.80, 1.20, 2.40, 1.10, 0.60, 2.15, 2.65, 1.40}},
	{"Sainsbury's Whitley Bay", "Newsteads Drive, Whitley Bay", "NE25 9UT", 55.0475, -1.4830,
		[9]float64{1.75, 0.85, 1.30, 2.60, 1.20, 0.65, 2.25, 2.75, 1.60}},
	{"Morrisons Whitley Bay", "Hillheads Road, Whitley Bay", "NE25 9UX", 55.0461, -1.4789,
		[9]float64{1.60, 0.75, 1.15, 2.35, 1.05, 0.55, 2.10, 2.60, 1.30}},
	{"Tesco Metro Newcastle", "Clayton Street, Newcastle upon Tyne", "NE1 5PB", 54.9697, -1.6157,
		[9]float64{1.70, 0.82, 1.22, 2.45, 1.12, 0.62, 2.20, 2.70, 1.45}},
	{"Sainsbury's Newcastle", "John Dobson Street, Newcastle upon Tyne", "NE1 8HL", 54.9741, -1.6120,
		[9]float64{1.80, 0.87, 1.32, 2.65, 1.22, 0.67, 2.30, 2.80, 1.65}},
	// London, for comparison
	{"Waitrose London", "200 Oxford Street, London", "W1D 1NU", 51.5152, -0.1449,
		[9]float64{2.25, 1.15, 1.65, 3.25, 1.55, 0.85, 2.85, 3.25, 2.25}},
}

// SeedStores returns a fresh copy of the built-in store set.
func SeedStores() []models.Store {
	out := make([]models.Store, 0, len(seed))
	for _, s := range seed {
		lat, lon := s.lat, s.lon
		prices := make(models.PriceList, 0, len(seedLabels))
		for i, label := range seedLabels {
			prices = append(prices, models.Price{Label: label, Amount: s.prices[i]})
		}
		out = append(out, models.Store{
			Name:      s.name,
			Address:   s.address,
			Postcode:  s.postcode,
			Latitude:  &lat,
			Longitude: &lon,
			Prices:    prices,
		})
	}
	return out
}
