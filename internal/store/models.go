package store

import (
	"encoding/json"
	"time"
)

type Generation struct {
	ID        string
	Title     string
	Data      json.RawMessage
	CreatedAt time.Time
}
