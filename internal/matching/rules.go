package matching

import (
	"math"
	"strings"
	"time"

	"github.com/fbanabil/Lost-and-Found-Web-Portal-Synesis-IT/internal/models"
)

// Matching thresholds. A pair qualifies when it is nearby and either the
// types match or the dates are close.
const (
	NearbyRadiusKm = 0.50
	MaxDateGapDays = 3
)

// Matches reports whether a lost/found pair qualifies:
// (sameType AND nearby) OR (similarDate AND nearby).
func Matches(lost models.LostItem, found models.FoundItem) bool {
	nearby := Nearby(lost.Latitude, lost.Longitude, found.Latitude, found.Longitude)
	if !nearby {
		return false
	}
	return SameType(lost.Type, found.Type) || SimilarDate(lost.Date, found.FoundDate)
}

// SameType is case-insensitive exact equality on the item type.
func SameType(a, b string) bool {
	return strings.EqualFold(a, b)
}

// SimilarDate holds when both dates are present and at most MaxDateGapDays
// apart. A missing date never matches, and is not an error.
func SimilarDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return false
	}
	gap := math.Abs(a.Sub(*b).Hours()) / 24
	return gap <= MaxDateGapDays
}

// Nearby holds when both coordinate pairs are present and within
// NearbyRadiusKm of each other. Missing coordinates never match.
func Nearby(lat1, lon1, lat2, lon2 *float64) bool {
	if lat1 == nil || lon1 == nil || lat2 == nil || lon2 == nil {
		return false
	}
	return DistanceKm(*lat1, *lon1, *lat2, *lon2) <= NearbyRadiusKm
}
