package seed

import domain "github.com/preston-bernstein/ops-console-service/internal/domain/carousel"

// Default returns the built-in carousel used when no seed file is configured.
func Default() []domain.Entry {
	return []domain.Entry{
		{ID: "1", Position: 1, Type: "Single", Sport: "Soccer", League: "FIFA - CUF", Event: "RMA vs BAR", Period: "Match", GradingUnits: "1x2", MarketType: "El Clasico", Header: "El Clasico", ExpiryDateTime: "30-07-2025 18:01:08", Country: "Default", Language: "Default", Visible: true},
		{ID: "2", Position: 2, Type: "Banner", MarketType: "Summer Promo", Header: "Combo Boost", ExpiryDateTime: "30-07-2025 18:01:08", Country: "Default", Language: "Default", Visible: true},
		{ID: "3", Position: 3, Type: "Parlay", Sport: "Parlay: [treetop]", League: "summer Promo", Event: "MUN vs LIV", Period: "1x2", GradingUnits: "Handicap", MarketType: "Combo Boost", Header: "Super Odds", ExpiryDateTime: "30-07-2025 18:01:08", Country: "Default", Language: "Default", Visible: true},
		{ID: "4", Position: 4, Type: "Link/Freetext", Sport: "AUSTRALIA: NSW", Period: "1st Half", MarketType: "Super Odds", Header: "Super Odds", ExpiryDateTime: "30-07-2025 18:01:08", Country: "Default", Language: "English", Visible: true},
		{ID: "5", Position: 5, Type: "Single", Sport: "Single", League: "NBA", Event: "MUN vs LIV", Period: "1st Half", GradingUnits: "Corners", MarketType: "Summer Promo", Header: "Sumer Promo", ExpiryDateTime: "30-07-2025 18:01:08", Country: "Default", Language: "Default", Visible: true},
		{ID: "6", Position: 6, Type: "Parlay", Sport: "Temis", League: "NBA", Event: "MUN vs LIV", Period: "1x2", MarketType: "Super Odds", Header: "Doher", ExpiryDateTime: "30-07-2025 18:01:08", Country: "Default", Language: "English", Visible: true},
		{ID: "7", Position: 7, Type: "Single", Sport: "Soccer", League: "NBA", Event: "MUN vs LIV", Period: "1st Half", GradingUnits: "Corners", MarketType: "Summer Promo", Header: "Summer Promo", ExpiryDateTime: "30-07-2025 18:00", Country: "Default", Language: "Default", Visible: false},
		{ID: "8", Position: 8, Type: "Link/Freetext", Sport: "Tennis", League: "NBA", Event: "MUN vs LIV", Period: "1st Half", MarketType: "Combo Boost", Header: "Summer Odds", ExpiryDateTime: "30-07-2025 18:01", Country: "Default", Language: "Default", Visible: true},
		{ID: "9", Position: 9, Type: "Parlay", Sport: "Single", League: "NBA", Event: "MUN vs LIV", Period: "Over Time", GradingUnits: "1x2", MarketType: "Super Odds", Header: "Super Odds", ExpiryDateTime: "30-07-2025 18:01", Country: "Default", Language: "Default", Visible: false},
		{ID: "10", Position: 10, Type: "Single", Sport: "Tennis", League: "NBA", Event: "MUN vs LIV", Period: "1st Half", MarketType: "Combo Boost", Header: "Summer Promo", ExpiryDateTime: "30-07-2025 18:01", Country: "Default", Language: "Default", Visible: true},
	}
}
