package service

// defaultTagIcons maps dietary tags to icon names. Lookup is case sensitive.
var defaultTagIcons = map[string]string{
	"Extra Hot":    "FaHotjar",
	"Hot":          "GiChiliPepper",
	"Eggs":         "FaEgg",
	"Lactose Free": "TbMilkOff",
	"Vegetarian":   "FaLeaf",
	"Fish":         "FaFish",
	"Seafood":      "FaFish",
	"Meat":         "GiMeat",
	"Soy":          "LuBean",
}

// TagIcon returns "" for tags without an icon.
func TagIcon(tag string) string {
	return defaultTagIcons[tag]
}
