package shared

const (
	UserID   = "user_id"
	UserRole = "user_role"

	RoleAdmin  = "admin"
	RoleEditor = "editor"

	PlacementHeader    = "header"
	PlacementFooter    = "footer"
	PlacementSidebar   = "sidebar"
	PlacementInContent = "in_content"
	PlacementBanner    = "banner"

	AdTypeBanner = "banner"
	AdTypeHTML   = "html"
	AdTypeVideo  = "video"

	LanguageArabic  = "ar"
	LanguageEnglish = "en"

	PricingFree     = "free"
	PricingFreemium = "freemium"
	PricingPaid     = "paid"
)

// Placements lists every known ad slot; requests naming anything else are
// rejected before touching storage.
var Placements = []string{
	PlacementHeader,
	PlacementFooter,
	PlacementSidebar,
	PlacementInContent,
	PlacementBanner,
}

func IsValidPlacement(placement string) bool {
	for _, p := range Placements {
		if p == placement {
			return true
		}
	}
	return false
}

var AdTypes = []string{AdTypeBanner, AdTypeHTML, AdTypeVideo}

func IsValidAdType(adType string) bool {
	for _, t := range AdTypes {
		if t == adType {
			return true
		}
	}
	return false
}
