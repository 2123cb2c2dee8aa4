package model

import "time"

// Apartment represents a rentable unit owned by exactly one user.  It is
// the scoping unit for all financial and booking data: every income and
// expense row references an apartment, and every calendar of bookings is
// keyed by an apartment id.  Corresponds to a row in the `apartments`
// table.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user ID of the owning user.
//  Name      – human-friendly name of the apartment (required).
//  Location  – optional free-text location.
//  CreatedAt – timestamp when the apartment was created.
//  UpdatedAt – timestamp of last update.
type Apartment struct {
    ID        uint64    `json:"id"`                 // apartments.id
    UserID    uint64    `json:"user_id"`            // apartments.user_id
    Name      string    `json:"name"`               // apartments.name
    Location  *string   `json:"location,omitempty"` // apartments.location (nullable)
    CreatedAt time.Time `json:"created_at"`         // apartments.created_at
    UpdatedAt time.Time `json:"updated_at"`         // apartments.updated_at
}
