package domain

// RoomType is a closed enumeration of the functional spaces a generated
// layout can contain. The wet-area property is derived from the variant
// rather than stored as free-form data, so a typo in a type string can
// never flip placement behavior.
type RoomType string

const (
	RoomTypeLivingRoom RoomType = "living_room"
	RoomTypeKitchen    RoomType = "kitchen"
	RoomTypeBedroom    RoomType = "bedroom"
	RoomTypeBathroom   RoomType = "bathroom"
	RoomTypeOther      RoomType = "other"
)

// IsWetArea reports whether rooms of this type require plumbing and are
// therefore placed opposite the prevailing wind.
func (t RoomType) IsWetArea() bool {
	return t == RoomTypeKitchen || t == RoomTypeBathroom
}

// DisplayName returns the human-readable label used in chat responses.
func (t RoomType) DisplayName() string {
	switch t {
	case RoomTypeLivingRoom:
		return "Living Room"
	case RoomTypeKitchen:
		return "Kitchen"
	case RoomTypeBedroom:
		return "Bedroom"
	case RoomTypeBathroom:
		return "Bathroom"
	default:
		return "Room"
	}
}

// Point is a plan offset in meters from the layout origin.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Room is one functional space in a layout snapshot.
// Width*Height is not forced to equal Area: area is tracked
// independently and drifts after scaling (legacy contract).
type Room struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      RoomType `json:"type"`
	Area      float64  `json:"area"` // m²
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
	Position  Point    `json:"position"`
	Rotation  float64  `json:"rotation"`
	IsWetArea bool     `json:"isWetArea"`
}

// NewRoom builds a Room with IsWetArea derived from the type.
func NewRoom(id, name string, t RoomType, area, width, height float64, pos Point) Room {
	return Room{
		ID:        id,
		Name:      name,
		Type:      t,
		Area:      area,
		Width:     width,
		Height:    height,
		Position:  pos,
		Rotation:  0,
		IsWetArea: t.IsWetArea(),
	}
}

// Dimensions is the overall building envelope in meters.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DesignData is one layout snapshot: rooms in creation order, the
// independently mutable total built area, and the envelope dimensions.
type DesignData struct {
	Rooms      []Room     `json:"rooms"`
	TotalArea  float64    `json:"totalArea"`
	Dimensions Dimensions `json:"dimensions"`
}

// Clone returns a deep copy so mutation never aliases a stored snapshot.
func (d DesignData) Clone() DesignData {
	out := d
	out.Rooms = make([]Room, len(d.Rooms))
	copy(out.Rooms, d.Rooms)
	return out
}
