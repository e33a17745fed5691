package domain

// DefaultCrops is returned when the table has nothing for the conditions.
var DefaultCrops = []string{"Wheat", "Rice", "Maize"}

// referenceLeaves is the built-in table. Crop order within a leaf is priority order.
var referenceLeaves = map[Key][]string{
	{SoilClay, HighRainfall, Acidic}:   {"Rice", "Sugarcane", "Jute"},
	{SoilClay, HighRainfall, Neutral}:  {"Wheat", "Barley", "Cotton"},
	{SoilClay, HighRainfall, Alkaline}: {"Cotton", "Sunflower", "Safflower"},
	{SoilClay, LowRainfall, Acidic}:    {"Finger Millet", "Sweet Potato", "Cassava"},
	{SoilClay, LowRainfall, Neutral}:   {"Sorghum", "Pearl Millet", "Chickpea"},
	{SoilClay, LowRainfall, Alkaline}:  {"Barley", "Mustard", "Linseed"},

	{SoilSandy, HighRainfall, Acidic}:   {"Pineapple", "Cashew", "Coconut"},
	{SoilSandy, HighRainfall, Neutral}:  {"Groundnut", "Sesame", "Watermelon"},
	{SoilSandy, HighRainfall, Alkaline}: {"Date Palm", "Pomegranate", "Citrus"},
	{SoilSandy, LowRainfall, Acidic}:    {"Cassava", "Sweet Potato", "Yam"},
	{SoilSandy, LowRainfall, Neutral}:   {"Pearl Millet", "Sorghum", "Groundnut"},
	{SoilSandy, LowRainfall, Alkaline}:  {"Barley", "Mustard", "Cumin"},

	{SoilLoamy, HighRainfall, Acidic}:   {"Rice", "Maize", "Sugarcane"},
	{SoilLoamy, HighRainfall, Neutral}:  {"Wheat", "Rice", "Cotton"},
	{SoilLoamy, HighRainfall, Alkaline}: {"Wheat", "Barley", "Mustard"},
	{SoilLoamy, LowRainfall, Acidic}:    {"Maize", "Sweet Potato", "Tomato"},
	{SoilLoamy, LowRainfall, Neutral}:   {"Wheat", "Chickpea", "Pea"},
	{SoilLoamy, LowRainfall, Alkaline}:  {"Barley", "Mustard", "Safflower"},

	{SoilSilt, HighRainfall, Acidic}:   {"Rice", "Jute", "Sugarcane"},
	{SoilSilt, HighRainfall, Neutral}:  {"Wheat", "Maize", "Soybean"},
	{SoilSilt, HighRainfall, Alkaline}: {"Cotton", "Sunflower", "Wheat"},
	{SoilSilt, LowRainfall, Acidic}:    {"Tomato", "Potato", "Carrot"},
	{SoilSilt, LowRainfall, Neutral}:   {"Wheat", "Barley", "Chickpea"},
	{SoilSilt, LowRainfall, Alkaline}:  {"Mustard", "Safflower", "Linseed"},

	{SoilPeaty, HighRainfall, Acidic}:   {"Rice", "Tea", "Coffee"},
	{SoilPeaty, HighRainfall, Neutral}:  {"Vegetables", "Herbs", "Berries"},
	{SoilPeaty, HighRainfall, Alkaline}: {"Cabbage", "Lettuce", "Spinach"},
	{SoilPeaty, LowRainfall, Acidic}:    {"Blueberry", "Cranberry", "Azalea"},
	{SoilPeaty, LowRainfall, Neutral}:   {"Carrot", "Onion", "Garlic"},
	{SoilPeaty, LowRainfall, Alkaline}:  {"Brassicas", "Root Vegetables", "Herbs"},

	{SoilChalky, HighRainfall, Acidic}:   {"Potato", "Tomato", "Pepper"},
	{SoilChalky, HighRainfall, Neutral}:  {"Wheat", "Barley", "Oats"},
	{SoilChalky, HighRainfall, Alkaline}: {"Sugar Beet", "Cabbage", "Turnip"},
	{SoilChalky, LowRainfall, Acidic}:    {"Strawberry", "Raspberry", "Gooseberry"},
	{SoilChalky, LowRainfall, Neutral}:   {"Barley", "Wheat", "Pea"},
	{SoilChalky, LowRainfall, Alkaline}:  {"Mustard", "Radish", "Turnip"},
}

// ReferenceTable returns a fresh copy of the built-in table.
func ReferenceTable() *Table {
	b := NewTableBuilder()
	for k, crops := range referenceLeaves {
		b.Add(k, crops...)
	}
	t, err := b.Build()
	if err != nil {
		panic("domain: reference table: " + err.Error())
	}
	return t
}
