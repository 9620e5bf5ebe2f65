package model

import "time"

type Comment struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type Feedback struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	DeviceID  string    `json:"deviceId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ViewStats tracks the global view counter and the devices that were seen.
// The device set grows without bound, there is no expiry policy.
type ViewStats struct {
	TotalViews int            `json:"totalViews"`
	Books      map[string]int `json:"books"`
	Devices    []string       `json:"devices"`
}

func NewViewStats() *ViewStats {
	return &ViewStats{
		Books:   make(map[string]int),
		Devices: []string{},
	}
}
