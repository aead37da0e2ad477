package distribution

// CountryProfile describes one country a customer can live in.
type CountryProfile struct {
	Code            string  // ISO 3166-1 alpha-2
	Name            string  // English name
	Native          string  // name in the local language and script
	Weight          float64 // sampling weight, proportional to relative GDP (US = 1.0)
	PurchasingPower float64 // price multiplier, proportional to income per capita (US = 1.0)
	CallingCode     string
	Locale          string // key into the name pools
}

// Display variants of a country field.
const (
	DisplayNative = iota
	DisplayCode
	DisplayEnglish
	displayVariants
)

// Display renders the country in the given variant.
func (c CountryProfile) Display(variant int) string {
	switch variant {
	case DisplayNative:
		return c.Native
	case DisplayCode:
		return c.Code
	default:
		return c.Name
	}
}

// DefaultCountries returns the built-in country table.
func DefaultCountries() []CountryProfile {
	return []CountryProfile{
		{"US", "United States", "United States", 1.00, 1.00, "1", "en_US"},
		{"CN", "China", "中国", 0.70, 0.45, "86", "zh"},
		{"JP", "Japan", "日本", 0.23, 0.81, "81", "ja"},
		{"DE", "Germany", "Deutschland", 0.19, 0.90, "49", "de"},
		{"GB", "United Kingdom", "United Kingdom", 0.13, 0.83, "44", "en_GB"},
		{"IN", "India", "भारत", 0.13, 0.18, "91", "in"},
		{"FR", "France", "France", 0.13, 0.82, "33", "fr"},
		{"IT", "Italy", "Italia", 0.10, 0.72, "39", "it"},
		{"CA", "Canada", "Canada", 0.08, 0.87, "1", "en_US"},
		{"KR", "South Korea", "대한민국", 0.08, 0.70, "82", "ko"},
		{"RU", "Russia", "Россия", 0.08, 0.45, "7", "ru"},
		{"BR", "Brazil", "Brasil", 0.08, 0.34, "55", "pt"},
		{"AU", "Australia", "Australia", 0.07, 0.95, "61", "en_GB"},
		{"ES", "Spain", "España", 0.07, 0.65, "34", "es"},
		{"MX", "Mexico", "México", 0.06, 0.36, "52", "es"},
		{"ID", "Indonesia", "Indonesia", 0.05, 0.25, "62", "id"},
		{"NL", "Netherlands", "Nederland", 0.05, 0.92, "31", "nl"},
		{"SA", "Saudi Arabia", "المملكة العربية السعودية", 0.04, 0.75, "966", "ar"},
		{"TR", "Turkey", "Türkiye", 0.04, 0.40, "90", "tr"},
		{"CH", "Switzerland", "Schweiz", 0.03, 1.12, "41", "de"},
		{"TW", "Taiwan", "臺灣", 0.03, 0.60, "886", "zh"},
		{"PL", "Poland", "Polska", 0.03, 0.50, "48", "pl"},
		{"SE", "Sweden", "Sverige", 0.03, 0.92, "46", "nordic"},
		{"BE", "Belgium", "België", 0.02, 0.88, "32", "nl"},
		{"TH", "Thailand", "ประเทศไทย", 0.02, 0.32, "66", "id"},
		{"IE", "Ireland", "Éire", 0.02, 1.05, "353", "en_GB"},
		{"AT", "Austria", "Österreich", 0.02, 0.87, "43", "de"},
		{"NG", "Nigeria", "Nigeria", 0.02, 0.15, "234", "en_GB"},
		{"IL", "Israel", "ישראל", 0.02, 0.75, "972", "en_US"},
		{"SG", "Singapore", "Singapore", 0.02, 1.05, "65", "zh"},
		{"HK", "Hong Kong", "香港", 0.02, 0.95, "852", "zh"},
		{"MY", "Malaysia", "Malaysia", 0.02, 0.48, "60", "id"},
		{"DK", "Denmark", "Danmark", 0.02, 1.02, "45", "nordic"},
		{"ZA", "South Africa", "South Africa", 0.02, 0.30, "27", "en_GB"},
		{"PH", "Philippines", "Pilipinas", 0.02, 0.20, "63", "es"},
		{"PK", "Pakistan", "پاکستان", 0.01, 0.14, "92", "in"},
		{"AE", "UAE", "الإمارات العربية المتحدة", 0.01, 0.80, "971", "ar"},
		{"NO", "Norway", "Norge", 0.01, 1.10, "47", "nordic"},
		{"CZ", "Czechia", "Česko", 0.01, 0.55, "420", "pl"},
		{"BD", "Bangladesh", "বাংলাদেশ", 0.01, 0.13, "880", "in"},
		{"FI", "Finland", "Suomi", 0.01, 0.84, "358", "nordic"},
		{"NZ", "New Zealand", "New Zealand", 0.01, 0.80, "64", "en_GB"},
	}
}
