package weather

import "slices"

// Unknown is shown wherever a value or classification is not available.
const Unknown = "—"

var descriptions = map[int]string{
	0: "Clear", 1: "Mainly clear", 2: "Partly cloudy", 3: "Overcast",
	45: "Fog", 48: "Rime fog",
	51: "Light drizzle", 53: "Drizzle", 55: "Dense drizzle",
	56: "Freezing drizzle", 57: "Dense freezing drizzle",
	61: "Light rain", 63: "Rain", 65: "Heavy rain",
	66: "Freezing rain", 67: "Heavy freezing rain",
	71: "Light snow", 73: "Snow", 75: "Heavy snow",
	77: "Snow grains",
	80: "Rain showers", 81: "Showers", 82: "Violent showers",
	85: "Snow showers", 86: "Heavy snow showers",
	95: "Thunderstorm", 96: "Thunder w/ hail", 99: "Thunder w/ heavy hail",
}

// KnownCodes returns the weather codes with a defined description, ascending.
func KnownCodes() []int {
	codes := make([]int, 0, len(descriptions))
	for code := range descriptions {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Describe maps a weather code to a short human description.
func Describe(code int) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return Unknown
}

// Icon maps a weather code to an icon identifier. Only clear and partly
// cloudy have day/night variants.
func Icon(code int, isDay bool) string {
	switch {
	case code == 0:
		if isDay {
			return "clear-day"
		}
		return "clear-night"
	case code == 1 || code == 2:
		if isDay {
			return "partly-cloudy-day"
		}
		return "partly-cloudy-night"
	case code == 3:
		return "overcast"
	case in(code, 45, 48):
		return "fog"
	case in(code, 51, 53, 55, 56, 57):
		return "drizzle"
	case code == 61:
		return "light-drizzle"
	case in(code, 63, 65, 66, 67):
		return "rain"
	case code == 80:
		return "rain-showers"
	case in(code, 81, 82):
		return "heavy-rain-showers"
	case in(code, 71, 73):
		return "snow"
	case in(code, 75, 85, 86):
		return "heavy-snow"
	case code == 77:
		return "snow-grains"
	case in(code, 95, 96, 99):
		return "thunderstorm"
	default:
		return "na"
	}
}

// Theme names the visual theme for a condition. Night wins over any code.
func Theme(code int, isDay bool) string {
	if !isDay {
		return "theme-night"
	}
	switch {
	case code == 0:
		return "theme-clear"
	case in(code, 1, 2, 3):
		return "theme-cloudy"
	case in(code, 45, 48):
		return "theme-fog"
	case in(code, 61, 63, 65, 66, 67, 80, 81, 82):
		return "theme-rain"
	case in(code, 71, 73, 75, 77, 85, 86):
		return "theme-snow"
	case in(code, 95, 96, 99):
		return "theme-thunder"
	default:
		return "theme-cloudy"
	}
}

func HumidityComfort(pct float64) string {
	switch {
	case pct < 30:
		return "Dry"
	case pct <= 60:
		return "Comfortable"
	default:
		return "Humid"
	}
}

func VisibilityText(km float64) string {
	switch {
	case km >= 10:
		return "Excellent visibility"
	case km >= 5:
		return "Good"
	case km >= 2:
		return "Moderate"
	default:
		return "Poor"
	}
}

func WindText(kmh float64) string {
	switch {
	case kmh < 6:
		return "Calm"
	case kmh < 20:
		return "Breezy"
	case kmh < 38:
		return "Windy"
	default:
		return "Gale"
	}
}

var beaufortLimits = []float64{5, 12, 20, 29, 39}

// Beaufort maps a wind speed in km/h onto a 0..6 scale. Anything above
// the last band stays at 6.
func Beaufort(kmh float64) int {
	if kmh < 1 {
		return 0
	}
	for i, limit := range beaufortLimits {
		if kmh <= limit {
			return i + 1
		}
	}
	return 6
}

// AQIBand maps a US AQI value to its qualitative band.
func AQIBand(aqi *int) string {
	if aqi == nil {
		return Unknown
	}
	switch v := *aqi; {
	case v <= 50:
		return "Good"
	case v <= 100:
		return "Moderate"
	case v <= 150:
		return "Unhealthy (SG)"
	case v <= 200:
		return "Unhealthy"
	case v <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}

// FeelsIcon picks the thermometer icon for an apparent temperature.
func FeelsIcon(apparentC *float64) string {
	if apparentC == nil {
		return "thermometer"
	}
	switch t := *apparentC; {
	case t > 35:
		return "thermometer-warmer"
	case t > 20:
		return "thermometer"
	default:
		return "thermometer-colder"
	}
}

// CodeOrUnknown returns the code, or -1 which every table treats as unknown.
func CodeOrUnknown(code *int) int {
	if code == nil {
		return -1
	}
	return *code
}

func in(code int, set ...int) bool {
	return slices.Contains(set, code)
}
