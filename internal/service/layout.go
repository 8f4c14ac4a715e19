package service

import (
	"fmt"
	"math"
	"strings"

	"dorry-backend/internal/domain"
)

// Layout generation and mutation. Both are pure functions: persistence
// and version bookkeeping belong to the callers.

// Fractions of the land area assigned to each generated room.
const (
	livingRoomShare = 0.25
	kitchenShare    = 0.10
	bedroomShare    = 0.15
	bathroomShare   = 0.05

	// footprintShare of the land area becomes built area.
	footprintShare = 0.6
)

// OrientationFromWind maps a wind direction string to a cardinal
// rotation. The match is a first-substring-wins linear scan over
// "North", "East", "South", "West" — deliberately no smarter than
// that, so "North-East" always lands on the North branch. This literal
// behavior is the documented contract; do not replace it with parsing.
func OrientationFromWind(windDirection string) int {
	switch {
	case strings.Contains(windDirection, "North"):
		return 0
	case strings.Contains(windDirection, "East"):
		return 90
	case strings.Contains(windDirection, "South"):
		return 180
	case strings.Contains(windDirection, "West"):
		return 270
	default:
		return 0
	}
}

// GenerateLayout derives a rectangular building footprint and four
// rooms from the land area, placing wet areas (kitchen, bathroom) on
// the side of the envelope opposite the prevailing wind.
func GenerateLayout(landArea float64, env domain.WeatherData) (domain.DesignData, error) {
	if landArea <= 0 {
		return domain.DesignData{}, fmt.Errorf("land area must be positive, got %v: %w", landArea, domain.ErrInvalidInput)
	}

	orientation := OrientationFromWind(env.WindDirection)

	buildingWidth := math.Sqrt(landArea * footprintShare)
	buildingHeight := buildingWidth * 1.5

	// Wet rooms shift along X for a N/S wind, along Y for an E/W wind.
	alongX := orientation == 0 || orientation == 180
	alongY := orientation == 90 || orientation == 270

	kitchenPos := domain.Point{X: 10, Y: 10}
	if alongX {
		kitchenPos.X = 10 + buildingWidth*0.7
	}
	if alongY {
		kitchenPos.Y = 10 + buildingHeight*0.4
	}

	bathroomPos := domain.Point{X: 10, Y: 10 + buildingHeight*0.4}
	if alongX {
		bathroomPos.X = buildingWidth * 0.7
	}
	if alongY {
		bathroomPos.Y = buildingHeight * 0.4
	}

	rooms := []domain.Room{
		domain.NewRoom("1", "Living Room", domain.RoomTypeLivingRoom,
			landArea*livingRoomShare, buildingWidth*0.7, buildingHeight*0.4,
			domain.Point{X: 10, Y: 10}),
		domain.NewRoom("2", "Kitchen", domain.RoomTypeKitchen,
			landArea*kitchenShare, buildingWidth*0.3, buildingHeight*0.3,
			kitchenPos),
		domain.NewRoom("3", "Bedroom", domain.RoomTypeBedroom,
			landArea*bedroomShare, buildingWidth*0.5, buildingHeight*0.3,
			domain.Point{X: 10, Y: 10 + buildingHeight*0.4}),
		domain.NewRoom("4", "Bathroom", domain.RoomTypeBathroom,
			landArea*bathroomShare, buildingWidth*0.3, buildingHeight*0.2,
			bathroomPos),
	}

	return domain.DesignData{
		Rooms:     rooms,
		TotalArea: landArea * footprintShare,
		Dimensions: domain.Dimensions{
			Width:  buildingWidth,
			Height: buildingHeight,
		},
	}, nil
}

// Mutation scale factors for "make it bigger" instructions.
const (
	areaScale = 1.2
	sideScale = 1.1
)

// roomTokens maps instruction substrings to room types, checked in
// order; first match wins.
var roomTokens = []struct {
	token string
	typ   domain.RoomType
}{
	{"living room", domain.RoomTypeLivingRoom},
	{"kitchen", domain.RoomTypeKitchen},
	{"bedroom", domain.RoomTypeBedroom},
	{"bathroom", domain.RoomTypeBathroom},
}

// MutateLayout applies a keyword-triggered size change to a layout
// copy. An instruction containing neither "larger" nor "bigger", or
// naming no known room, is a no-op: the input is returned unchanged
// and the change descriptor is nil. Keyword matching is literal
// substring membership — intent parsing is explicitly out of scope.
func MutateLayout(current domain.DesignData, instruction string) (domain.DesignData, *domain.DesignChange) {
	text := strings.ToLower(instruction)
	if !strings.Contains(text, "larger") && !strings.Contains(text, "bigger") {
		return current, nil
	}

	var target domain.RoomType
	for _, rt := range roomTokens {
		if strings.Contains(text, rt.token) {
			target = rt.typ
			break
		}
	}
	if target == "" {
		return current, nil
	}

	updated := current.Clone()
	var firstOriginalArea float64
	found := false
	for i := range updated.Rooms {
		if updated.Rooms[i].Type != target {
			continue
		}
		if !found {
			firstOriginalArea = updated.Rooms[i].Area
			found = true
		}
		updated.Rooms[i].Area *= areaScale
		updated.Rooms[i].Width *= sideScale
		updated.Rooms[i].Height *= sideScale
	}
	if !found {
		return current, nil
	}

	// Total area grows by one room's delta only, even when several
	// rooms share the type. Ambiguous carried-over behavior; kept
	// as-is pending a product decision.
	updated.TotalArea += firstOriginalArea * (areaScale - 1)

	return updated, &domain.DesignChange{
		RoomModified: target,
		SizeIncrease: true,
	}
}
