package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dorry-backend/internal/domain"
)

func testWeather(windDirection string) domain.WeatherData {
	return domain.WeatherData{
		WindDirection:   windDirection,
		WindSpeed:       12,
		SolarIrradiance: 5.8,
		Temperature:     25,
		Humidity:        50,
		Location:        domain.GeoPoint{Lat: 30.04, Lon: 31.24, Name: "Cairo"},
		Timestamp:       time.Now(),
	}
}

func TestGenerateLayout_RejectsNonPositiveLandArea(t *testing.T) {
	for _, landArea := range []float64{0, -1, -750} {
		_, err := GenerateLayout(landArea, testWeather("North"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestGenerateLayout_NorthEastScenario(t *testing.T) {
	// landArea=750 with a North-East wind: the North branch matches
	// first, so orientation resolves to 0.
	data, err := GenerateLayout(750, testWeather("North-East"))
	require.NoError(t, err)

	assert.InDelta(t, 21.2132, data.Dimensions.Width, 0.001)
	assert.InDelta(t, 31.8198, data.Dimensions.Height, 0.001)
	assert.InDelta(t, 450, data.TotalArea, 1e-9)

	require.Len(t, data.Rooms, 4)
	assert.Equal(t, domain.RoomTypeLivingRoom, data.Rooms[0].Type)
	assert.Equal(t, domain.RoomTypeKitchen, data.Rooms[1].Type)
	assert.Equal(t, domain.RoomTypeBedroom, data.Rooms[2].Type)
	assert.Equal(t, domain.RoomTypeBathroom, data.Rooms[3].Type)

	assert.InDelta(t, 187.5, data.Rooms[0].Area, 1e-9)
	assert.InDelta(t, 75, data.Rooms[1].Area, 1e-9)
	assert.InDelta(t, 112.5, data.Rooms[2].Area, 1e-9)
	assert.InDelta(t, 37.5, data.Rooms[3].Area, 1e-9)

	var sum float64
	for _, room := range data.Rooms {
		sum += room.Area
	}
	assert.InDelta(t, 750*0.55, sum, 1e-9)
}

func TestGenerateLayout_RoomAreasSumForAnyLandArea(t *testing.T) {
	for _, landArea := range []float64{1, 80, 333.5, 750, 12000} {
		data, err := GenerateLayout(landArea, testWeather("South"))
		require.NoError(t, err)
		require.Len(t, data.Rooms, 4)

		var sum float64
		for _, room := range data.Rooms {
			sum += room.Area
		}
		assert.InDelta(t, landArea*0.55, sum, 1e-6)
		assert.InDelta(t, landArea*0.6, data.TotalArea, 1e-6)
	}
}

func TestOrientationFromWind(t *testing.T) {
	tests := []struct {
		direction string
		want      int
	}{
		{"North", 0},
		{"North-East", 0},          // North matches before East
		{"North-Northwest", 0},
		{"West-Northwest", 0},      // contains "North"
		{"East", 90},
		{"East-Southeast", 90},     // East matches before South
		{"South", 180},
		{"Southwest", 180},         // South matches before West
		{"South-Southwest", 180},
		{"West", 270},
		{"", 0},
		{"Calm", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OrientationFromWind(tt.direction), "direction %q", tt.direction)
	}
}

func TestGenerateLayout_WetRoomsOffsetAlongWindAxis(t *testing.T) {
	// North/South winds shift wet rooms along X; East/West along Y.
	northData, err := GenerateLayout(750, testWeather("North"))
	require.NoError(t, err)
	bw := northData.Dimensions.Width
	bh := northData.Dimensions.Height

	kitchen := northData.Rooms[1]
	bathroom := northData.Rooms[3]
	assert.InDelta(t, 10+bw*0.7, kitchen.Position.X, 1e-9)
	assert.InDelta(t, 10.0, kitchen.Position.Y, 1e-9)
	assert.InDelta(t, bw*0.7, bathroom.Position.X, 1e-9)
	assert.InDelta(t, 10+bh*0.4, bathroom.Position.Y, 1e-9)

	eastData, err := GenerateLayout(750, testWeather("East"))
	require.NoError(t, err)

	kitchen = eastData.Rooms[1]
	bathroom = eastData.Rooms[3]
	assert.InDelta(t, 10.0, kitchen.Position.X, 1e-9)
	assert.InDelta(t, 10+bh*0.4, kitchen.Position.Y, 1e-9)
	assert.InDelta(t, 10.0, bathroom.Position.X, 1e-9)
	assert.InDelta(t, bh*0.4, bathroom.Position.Y, 1e-9)

	// Dry rooms stay put regardless of orientation.
	assert.Equal(t, northData.Rooms[0].Position, eastData.Rooms[0].Position)
	assert.Equal(t, northData.Rooms[2].Position, eastData.Rooms[2].Position)
}

func TestGenerateLayout_WetAreaFlagsDerivedFromType(t *testing.T) {
	data, err := GenerateLayout(400, testWeather("West"))
	require.NoError(t, err)

	for _, room := range data.Rooms {
		assert.Equal(t, room.Type.IsWetArea(), room.IsWetArea, "room %s", room.Name)
	}
	assert.False(t, data.Rooms[0].IsWetArea)
	assert.True(t, data.Rooms[1].IsWetArea)
	assert.False(t, data.Rooms[2].IsWetArea)
	assert.True(t, data.Rooms[3].IsWetArea)
}

func TestGenerateLayout_Deterministic(t *testing.T) {
	a, err := GenerateLayout(512, testWeather("Northeast"))
	require.NoError(t, err)
	b, err := GenerateLayout(512, testWeather("Northeast"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMutateLayout_NoKeywordIsNoOp(t *testing.T) {
	current, err := GenerateLayout(750, testWeather("North-East"))
	require.NoError(t, err)

	updated, change := MutateLayout(current, "how much will this cost?")
	assert.Nil(t, change)
	assert.Equal(t, current, updated)
}

func TestMutateLayout_KeywordWithoutRoomIsNoOp(t *testing.T) {
	current, err := GenerateLayout(750, testWeather("North-East"))
	require.NoError(t, err)

	updated, change := MutateLayout(current, "make it bigger")
	assert.Nil(t, change)
	assert.Equal(t, current, updated)
}

func TestMutateLayout_EnlargeKitchen(t *testing.T) {
	current, err := GenerateLayout(750, testWeather("North-East"))
	require.NoError(t, err)

	updated, change := MutateLayout(current, "Make the kitchen BIGGER please")
	require.NotNil(t, change)
	assert.Equal(t, domain.RoomTypeKitchen, change.RoomModified)
	assert.True(t, change.SizeIncrease)

	// Only the kitchen is scaled; every other room is untouched.
	kitchenBefore := current.Rooms[1]
	kitchenAfter := updated.Rooms[1]
	assert.InDelta(t, kitchenBefore.Area*1.2, kitchenAfter.Area, 1e-9)
	assert.InDelta(t, kitchenBefore.Width*1.1, kitchenAfter.Width, 1e-9)
	assert.InDelta(t, kitchenBefore.Height*1.1, kitchenAfter.Height, 1e-9)
	assert.Equal(t, current.Rooms[0], updated.Rooms[0])
	assert.Equal(t, current.Rooms[2], updated.Rooms[2])
	assert.Equal(t, current.Rooms[3], updated.Rooms[3])

	assert.InDelta(t, current.TotalArea+kitchenBefore.Area*0.2, updated.TotalArea, 1e-9)

	// The input snapshot is never mutated in place.
	assert.InDelta(t, 75, current.Rooms[1].Area, 1e-9)
}

func TestMutateLayout_LargerTokenAlsoMatches(t *testing.T) {
	current, err := GenerateLayout(750, testWeather("North-East"))
	require.NoError(t, err)

	updated, change := MutateLayout(current, "i want a larger living room")
	require.NotNil(t, change)
	assert.Equal(t, domain.RoomTypeLivingRoom, change.RoomModified)
	assert.InDelta(t, current.Rooms[0].Area*1.2, updated.Rooms[0].Area, 1e-9)
}

func TestMutateLayout_SequentialMutationsCompound(t *testing.T) {
	current, err := GenerateLayout(750, testWeather("North-East"))
	require.NoError(t, err)
	area0 := current.Rooms[1].Area

	once, change := MutateLayout(current, "make the kitchen bigger")
	require.NotNil(t, change)
	twice, change := MutateLayout(once, "make the kitchen bigger")
	require.NotNil(t, change)

	assert.InDelta(t, area0*1.2*1.2, twice.Rooms[1].Area, 1e-9)
	// Second turn's total-area delta is based on the already-scaled area.
	assert.InDelta(t, current.TotalArea+area0*0.2+area0*1.2*0.2, twice.TotalArea, 1e-9)
}

func TestMutateLayout_MultipleRoomsOfTypeAllScaleButSingleDelta(t *testing.T) {
	// Two bedrooms: both get scaled, but totalArea grows by only the
	// first room's delta. Carried-over behavior, kept deliberately.
	current := domain.DesignData{
		Rooms: []domain.Room{
			domain.NewRoom("1", "Bedroom 1", domain.RoomTypeBedroom, 20, 5, 4, domain.Point{X: 0, Y: 0}),
			domain.NewRoom("2", "Bedroom 2", domain.RoomTypeBedroom, 30, 6, 5, domain.Point{X: 5, Y: 0}),
		},
		TotalArea:  100,
		Dimensions: domain.Dimensions{Width: 10, Height: 10},
	}

	updated, change := MutateLayout(current, "larger bedroom")
	require.NotNil(t, change)
	assert.Equal(t, domain.RoomTypeBedroom, change.RoomModified)

	assert.InDelta(t, 24, updated.Rooms[0].Area, 1e-9)
	assert.InDelta(t, 36, updated.Rooms[1].Area, 1e-9)
	assert.InDelta(t, 104, updated.TotalArea, 1e-9) // 100 + 20*0.2 only
}
