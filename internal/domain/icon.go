package domain

// DefaultIcon is shown for crops without a dedicated pictogram.
const DefaultIcon = "🌱"

var cropIcons = map[string]string{
	"Rice":      "🌾",
	"Wheat":     "🌾",
	"Maize":     "🌽",
	"Cotton":    "🌱",
	"Sugarcane": "🎋",
	"Sorghum":   "🌾",
	"Barley":    "🌾",
	"Groundnut": "🥜",
	"Soybean":   "🫘",
	"Chickpea":  "🫛",
	"Tomato":    "🍅",
	"Potato":    "🥔",
	"Onion":     "🧅",
	"Carrot":    "🥕",
	"Sunflower": "🌻",
	"Mustard":   "🌼",
	"Tea":       "🍵",
	"Coffee":    "☕",
	"Coconut":   "🥥",
}

// CropIcon returns the display pictogram for a crop name.
func CropIcon(name string) string {
	if icon, ok := cropIcons[name]; ok {
		return icon
	}
	return DefaultIcon
}
