package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// EntityRef is a lightweight reference to a backend entity carried by navigation focus.
type EntityRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}
