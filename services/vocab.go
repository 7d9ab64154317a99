package services

import "regexp"

// Column names of the raw listings export that the cleaner reads.
const (
	colLastScraped      = "last_scraped"
	colPrice            = "price"
	colVerifications    = "host_verifications"
	colRoomType         = "room_type"
	colBoroughRaw       = "neighbourhood_group_cleansed"
	colPropertyType     = "property_type"
	colBathrooms        = "bathrooms"
	colBathroomsText    = "bathrooms_text"
	colAmenities        = "amenities"
	colHostResponseTime = "host_response_time"
)

// Columns the cleaner derives.
const (
	colBorough         = "borough"
	colPropertyGrouped = "property_type_grouped"
	colBathroomsShared = "bathrooms_shared"
)

// prunedColumns are identifiers, URLs, free text and duplicate geography.
var prunedColumns = []string{
	"id", "listing_url", "scrape_id", "source",
	"name", "description", "neighborhood_overview", "picture_url",
	"host_id", "host_url", "host_name", "host_location", "host_about",
	"host_thumbnail_url", "host_picture_url", "host_neighbourhood",
	"neighbourhood", "neighbourhood_cleansed",
	"calendar_updated", "calendar_last_scraped", "license",
}

var (
	dateColumns       = []string{colLastScraped, "host_since", "first_review", "last_review"}
	// numericColumns are coerced when present; exports differ in which of
	// them they carry.
	numericColumns = []string{
		"host_listings_count", "host_total_listings_count", "latitude", "longitude",
		"accommodates", colBathrooms, "bedrooms", "beds",
		"minimum_nights", "maximum_nights",
		"minimum_minimum_nights", "maximum_minimum_nights",
		"minimum_maximum_nights", "maximum_maximum_nights",
		"minimum_nights_avg_ntm", "maximum_nights_avg_ntm",
		"availability_30", "availability_60", "availability_90", "availability_365",
		"number_of_reviews", "number_of_reviews_ltm", "number_of_reviews_l30d",
		"review_scores_rating", "review_scores_accuracy", "review_scores_cleanliness",
		"review_scores_checkin", "review_scores_communication", "review_scores_location",
		"review_scores_value",
		"calculated_host_listings_count", "calculated_host_listings_count_entire_homes",
		"calculated_host_listings_count_private_rooms", "calculated_host_listings_count_shared_rooms",
		"reviews_per_month",
	}
	percentageColumns = []string{"host_response_rate", "host_acceptance_rate"}
	flagColumns       = []string{
		"host_is_superhost", "host_has_profile_pic", "host_identity_verified",
		"has_availability", "instant_bookable",
	}
)

// verification is one known host verification method and its indicator column.
type verification struct {
	Token  string
	Column string
}

var verifications = []verification{
	{Token: "email", Column: "email_verified"},
	{Token: "phone", Column: "phone_verified"},
	{Token: "work_email", Column: "work_email_verified"},
}

// category is a closed categorical column.
type category struct {
	Source string
	Target string
	Levels []string
}

var (
	RoomTypes = []string{"Entire home/apt", "Private room", "Shared room", "Hotel room"}
	Boroughs  = []string{"Bronx", "Brooklyn", "Manhattan", "Queens", "Staten Island"}
)

var categories = []category{
	{Source: colRoomType, Target: colRoomType, Levels: RoomTypes},
	{Source: colBoroughRaw, Target: colBorough, Levels: Boroughs},
}

// Rule assigns Label to values Match accepts.
type Rule struct {
	Label string
	Match func(string) bool
}

// Pattern returns a case-insensitive regexp predicate.
func Pattern(expr string) func(string) bool {
	re := regexp.MustCompile(`(?i)` + expr)
	return re.MatchString
}

// RuleSet is an ordered list of rules with a mandatory fallback label.
// The first matching rule wins.
type RuleSet struct {
	Rules   []Rule
	Default string
}

// Classify returns the label of the first matching rule, or the default.
func (rs RuleSet) Classify(s string) string {
	for _, r := range rs.Rules {
		if r.Match(s) {
			return r.Label
		}
	}
	return rs.Default
}

// Labels returns every label the set can produce, default last.
func (rs RuleSet) Labels() []string {
	seen := make(map[string]struct{}, len(rs.Rules)+1)
	var out []string
	for _, r := range append(rs.Rules, Rule{Label: rs.Default}) {
		if _, ok := seen[r.Label]; ok {
			continue
		}
		seen[r.Label] = struct{}{}
		out = append(out, r.Label)
	}
	return out
}

// PropertyGroups buckets Airbnb's property_type strings. "Houseboat" and
// "Tiny home" must meet the unique-stay rule before the house rule.
var PropertyGroups = RuleSet{
	Rules: []Rule{
		{Label: "Hotel/Hostel", Match: Pattern(`hotel|hostel|resort|bed and breakfast`)},
		{Label: "Apartment/Condo", Match: Pattern(`rental unit|apartment|condo|loft`)},
		{Label: "Unique Stay", Match: Pattern(`boat|tent|camper|\brv\b|tiny|castle|lighthouse|treehouse|dome|yurt|barn|farm|cave|bus|container|island`)},
		{Label: "House", Match: Pattern(`house|home|cottage|bungalow|villa|cabin|guest suite|chalet`)},
	},
	Default: "Other",
}

const (
	halfBathToken = "half-bath"
	halfBathCount = 0.5
	sharedToken   = "shared"
)

// responseTimes ranks host_response_time from fastest to slowest.
var responseTimes = map[string]float64{
	"within an hour":     1,
	"within a few hours": 2,
	"within a day":       3,
	"a few days or more": 4,
}

// amenityGroup is a keyword set scored into one count column.
type amenityGroup struct {
	Column   string
	Keywords []string
}

// amenityGroups are matched as lower-case substrings of the raw amenity text.
var amenityGroups = []amenityGroup{
	{Column: "amenities_kitchen", Keywords: []string{
		"kitchen", "refrigerator", "microwave", "oven", "stove", "dishwasher",
		"coffee maker", "cooking basics", "dishes and silverware", "freezer", "toaster", "kettle",
	}},
	{Column: "amenities_tv", Keywords: []string{
		"tv", "netflix", "cable", "amazon prime", "hbo", "disney+", "chromecast", "roku", "apple tv",
	}},
	{Column: "amenities_workspace", Keywords: []string{
		"dedicated workspace", "wifi", "ethernet", "desk", "office chair", "monitor",
	}},
	{Column: "amenities_bathroom", Keywords: []string{
		"hair dryer", "shampoo", "conditioner", "body soap", "shower gel", "hot water", "bathtub", "bidet",
	}},
	{Column: "amenities_laundry", Keywords: []string{
		"washer", "dryer", "iron", "drying rack", "laundromat",
	}},
	{Column: "amenities_climate", Keywords: []string{
		"air conditioning", "heating", "fan", "fireplace", "radiant heating", "central air",
	}},
	{Column: "amenities_safety", Keywords: []string{
		"smoke alarm", "carbon monoxide alarm", "fire extinguisher", "first aid kit",
	}},
	{Column: "amenities_sleep", Keywords: []string{
		"bed linens", "extra pillows and blankets", "room-darkening shades", "hangers", "blackout",
	}},
	{Column: "amenities_child", Keywords: []string{
		"crib", "high chair", "children", "baby", "changing table", "pack ’n play", "outlet covers", "window guards",
	}},
	{Column: "amenities_luxury", Keywords: []string{
		"pool", "hot tub", "gym", "sauna", "piano", "view", "waterfront", "espresso machine",
	}},
	{Column: "amenities_outdoor", Keywords: []string{
		"patio", "balcony", "backyard", "garden", "bbq grill", "outdoor furniture", "outdoor dining", "fire pit",
	}},
	{Column: "amenities_security", Keywords: []string{
		"lockbox", "smart lock", "keypad", "security cameras", "private entrance", "safe", "building staff", "self check-in",
	}},
}
