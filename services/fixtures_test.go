package services

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"airbnb-cleaner/models"
	"airbnb-cleaner/utils"
)

func newTestLogger() *utils.Logger {
	return utils.NewLoggerWithOptions(utils.LogOptions{Level: "debug", Format: "json", Output: io.Discard})
}

var testCutoff = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

var rawHeader = []string{
	"id", "listing_url", "name", "description", "last_scraped",
	"host_since", "host_response_time", "host_response_rate", "host_acceptance_rate",
	"host_is_superhost", "host_verifications", "host_has_profile_pic", "host_identity_verified",
	"neighbourhood_cleansed", "neighbourhood_group_cleansed", "latitude",
	"property_type", "room_type", "accommodates", "bathrooms", "bathrooms_text", "bedrooms",
	"amenities", "price", "has_availability", "first_review", "last_review",
	"review_scores_rating", "instant_bookable",
}

// listing returns a raw row with sensible defaults; overrides replace fields.
func listing(overrides map[string]string) map[string]string {
	row := map[string]string{
		"id":                           "1",
		"listing_url":                  "https://www.airbnb.com/rooms/1",
		"name":                         "Sunny loft",
		"description":                  "Close to the subway",
		"last_scraped":                 "2023-06-01",
		"host_since":                   "2015-03-02",
		"host_response_time":           "within an hour",
		"host_response_rate":           "100%",
		"host_acceptance_rate":         "90%",
		"host_is_superhost":            "f",
		"host_verifications":           "['email', 'phone']",
		"host_has_profile_pic":         "t",
		"host_identity_verified":       "t",
		"neighbourhood_cleansed":       "Williamsburg",
		"neighbourhood_group_cleansed": "Brooklyn",
		"latitude":                     "40.71",
		"property_type":                "Entire rental unit",
		"room_type":                    "Entire home/apt",
		"accommodates":                 "2",
		"bathrooms":                    "",
		"bathrooms_text":               "1 bath",
		"bedrooms":                     "1",
		"amenities":                    `["Wifi", "Kitchen", "Smoke alarm"]`,
		"price":                        "$150.00",
		"has_availability":             "t",
		"first_review":                 "2019-01-01",
		"last_review":                  "2023-05-01",
		"review_scores_rating":         "4.8",
		"instant_bookable":             "f",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func rawTable(t *testing.T, rows ...map[string]string) *models.Table {
	t.Helper()
	records := make([][]string, len(rows))
	for i, row := range rows {
		rec := make([]string, len(rawHeader))
		for c, name := range rawHeader {
			rec[c] = row[name]
		}
		records[i] = rec
	}
	tbl, err := models.FromRecords(rawHeader, records)
	require.NoError(t, err)
	return tbl
}

func cell(t *testing.T, tbl *models.Table, row int, col string) models.Value {
	t.Helper()
	v, err := tbl.At(row, col)
	require.NoError(t, err)
	return v
}
