package model

// Room is one rentable hotel room.  Rooms are static inventory from
// the reservation engine's point of view: the engine only ever reads
// them to verify existence and to lock a room row while checking
// availability.
//
// Fields:
//  ID         – primary key identifier.
//  Number     – human readable room number, unique per hotel.
//  Floor      – floor the room is on.
//  Capacity   – number of guests the room sleeps.
//  CategoryID – reference to the room category.
type Room struct {
    ID         uint64 // rooms.id
    Number     string // rooms.room_number (unique)
    Floor      int32  // rooms.floor
    Capacity   int32  // rooms.capacity
    CategoryID uint64 // rooms.category_id
}

// Category groups rooms by class (standard, suite, ...).
type Category struct {
    ID          uint64 // categories.id
    Name        string // categories.category_name (unique)
    Description string // categories.description
}
