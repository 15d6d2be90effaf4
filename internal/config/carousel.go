package config

// CarouselConfig points at the seed the editor sessions open from.
type CarouselConfig struct {
	SeedPath  string // empty means the built-in seed
	WatchSeed bool
}

// AdminConfig guards and scopes the admin catalog.
type AdminConfig struct {
	Token  string
	Brands []string
}

func loadCarousel() CarouselConfig {
	return CarouselConfig{
		SeedPath:  envOrDefault(envSeedPath, ""),
		WatchSeed: boolEnvOrDefault(envSeedWatch, true),
	}
}

func loadAdmin() AdminConfig {
	return AdminConfig{
		Token:  envOrDefault(envAdminToken, ""),
		Brands: listEnvOrDefault(envAdminBrands, []string{defaultAdminBrand}),
	}
}
