package aqi

// Category describes one band of the AirNow AQI guide: an inclusive index
// range, a level name, a severity color from the fixed AirNow palette, and
// the advisory text shown to users.
type Category struct {
	AQILow      int    `json:"aqi_low"`
	AQIHigh     int    `json:"aqi_high"`
	Level       string `json:"level"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// categories is the AirNow guide. The top band's upper bound is a sentinel
// well beyond any realistic index so the lookup is effectively total on
// [0, ∞); extrapolated indices past it still land on "Hazardous" via the
// fallback in LookupCategory.
var categories = []Category{
	{0, 50, "Good", "#00e400",
		"Air quality is satisfactory, and air pollution poses little or no risk."},
	{51, 100, "Moderate", "#ffff00",
		"Air quality is acceptable. However, there may be a risk for some people, particularly those who are unusually sensitive to air pollution."},
	{101, 150, "Unhealthy for Sensitive Groups", "#ff7e00",
		"Members of sensitive groups may experience health effects. The general public is less likely to be affected."},
	{151, 200, "Unhealthy", "#ff0000",
		"Some members of the general public may experience health effects; members of sensitive groups may experience more serious health effects."},
	{201, 300, "Very Unhealthy", "#8f3f97",
		"Health alert: The risk of health effects is increased for everyone."},
	{301, 10000, "Hazardous", "#7e0023",
		"Health warning of emergency conditions: everyone is more likely to be affected."},
}

// LookupCategory returns the guide band containing the overall AQI. Values
// beyond every defined bound fall back to the last band, which is reachable
// in principle since extrapolation does not cap the index.
func LookupCategory(overallAQI int) Category {
	for _, c := range categories {
		if overallAQI >= c.AQILow && overallAQI <= c.AQIHigh {
			return c
		}
	}
	return categories[len(categories)-1]
}
