package maps

// Wire shapes for the maps provider web services. Only the fields the
// pipeline reads are declared.

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string   `json:"formatted_address"`
		Geometry         geometry `json:"geometry"`
		PlaceID          string   `json:"place_id"`
	} `json:"results"`
}

type autocompleteResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Predictions  []struct {
		Description string `json:"description"`
		PlaceID     string `json:"place_id"`
	} `json:"predictions"`
}

type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       struct {
		Name             string   `json:"name"`
		FormattedAddress string   `json:"formatted_address"`
		Geometry         geometry `json:"geometry"`
		Rating           float64  `json:"rating"`
		PriceLevel       *int     `json:"price_level"`
		PriceLevelName   string   `json:"priceLevel"`
		PhoneNumber      string   `json:"formatted_phone_number"`
		Types            []string `json:"types"`
		OpeningHours     struct {
			WeekdayText []string `json:"weekday_text"`
		} `json:"opening_hours"`
		Photos []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"result"`
}

type nearbyResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name     string   `json:"name"`
		PlaceID  string   `json:"place_id"`
		Geometry geometry `json:"geometry"`
		Types    []string `json:"types"`
	} `json:"results"`
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// Prediction is one autocomplete candidate.
type Prediction struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}

// GeocodeResult is a resolved address.
type GeocodeResult struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address"`
	PlaceID          string  `json:"place_id"`
}

// DayHours is one entry of a weekly schedule, in provider order.
type DayHours struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// PlaceDetail is the internal shape of external place metadata.
type PlaceDetail struct {
	PlaceID     string     `json:"place_id"`
	Name        string     `json:"name"`
	Address     string     `json:"formatted_address"`
	Lat         float64    `json:"lat"`
	Lng         float64    `json:"lng"`
	Rating      float64    `json:"rating"`
	PriceRange  *string    `json:"price_range"`
	Hours       []DayHours `json:"business_hours"`
	PhoneNumber string     `json:"phone_number"`
	PhotoURL    string     `json:"photo_url"`
	Types       []string   `json:"types"`
}

// Place is one nearby-search candidate.
type Place struct {
	Name    string   `json:"name"`
	PlaceID string   `json:"place_id"`
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Types   []string `json:"types"`
}
