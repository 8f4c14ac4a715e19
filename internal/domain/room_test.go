package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomType_IsWetArea(t *testing.T) {
	assert.True(t, RoomTypeKitchen.IsWetArea())
	assert.True(t, RoomTypeBathroom.IsWetArea())
	assert.False(t, RoomTypeLivingRoom.IsWetArea())
	assert.False(t, RoomTypeBedroom.IsWetArea())
	assert.False(t, RoomTypeOther.IsWetArea())
}

func TestRoomType_DisplayName(t *testing.T) {
	assert.Equal(t, "Living Room", RoomTypeLivingRoom.DisplayName())
	assert.Equal(t, "Kitchen", RoomTypeKitchen.DisplayName())
	assert.Equal(t, "Room", RoomTypeOther.DisplayName())
	assert.Equal(t, "Room", RoomType("garage").DisplayName())
}

func TestNewRoom_DerivesWetFlag(t *testing.T) {
	wet := NewRoom("1", "Kitchen", RoomTypeKitchen, 15, 5, 3, Point{X: 1, Y: 2})
	assert.True(t, wet.IsWetArea)
	assert.Equal(t, Point{X: 1, Y: 2}, wet.Position)
	assert.Zero(t, wet.Rotation)

	dry := NewRoom("2", "Bedroom", RoomTypeBedroom, 20, 5, 4, Point{})
	assert.False(t, dry.IsWetArea)
}

func TestDesignData_CloneIsDeep(t *testing.T) {
	original := DesignData{
		Rooms: []Room{
			NewRoom("1", "Living Room", RoomTypeLivingRoom, 40, 8, 5, Point{X: 10, Y: 10}),
		},
		TotalArea:  60,
		Dimensions: Dimensions{Width: 10, Height: 6},
	}

	clone := original.Clone()
	clone.Rooms[0].Area = 999
	clone.TotalArea = 1

	assert.InDelta(t, 40, original.Rooms[0].Area, 1e-9)
	assert.InDelta(t, 60, original.TotalArea, 1e-9)
}
