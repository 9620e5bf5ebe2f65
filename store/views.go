package store

import (
	"time"

	"github.com/storyworld/storyworld/model"
)

// RecordView bumps the global view counter, the book counter when a
// bookID is given, and remembers the device. The device set only ever
// grows, there is no expiry.
func (s *Store) RecordView(bookID, deviceID string) (*model.ViewStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bookID != "" {
		b := s.findBookLocked(bookID)
		if b == nil {
			return nil, ErrBookNotFound
		}
		b.Views++
		b.UpdatedAt = time.Now()
		s.views.Books[bookID]++
		s.persistLocked(CollectionBooks)
	}

	s.views.TotalViews++
	if deviceID != "" && !s.hasDeviceLocked(deviceID) {
		s.views.Devices = append(s.views.Devices, deviceID)
	}
	s.persistLocked(CollectionViews)

	return cloneViews(s.views), nil
}

func (s *Store) hasDeviceLocked(deviceID string) bool {
	for _, d := range s.views.Devices {
		if d == deviceID {
			return true
		}
	}
	return false
}
