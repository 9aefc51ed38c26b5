package domain

import (
	"time"

	"github.com/google/uuid"
)

// Search — сохранённый поиск пользователя (загруженное изображение и его детекции).
type Search struct {
	ID         string
	UserID     string
	StorageKey string
	CreatedAt  time.Time
	Detections []Detection
}

// NewSearch выдаёт поиску и каждой детекции новые идентификаторы.
func NewSearch(userID, storageKey string, detections []Detection) *Search {
	search := &Search{
		ID:         uuid.NewString(),
		UserID:     userID,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
		Detections: detections,
	}

	for i := range search.Detections {
		search.Detections[i].ID = uuid.NewString()
		search.Detections[i].SearchID = search.ID
	}

	return search
}
