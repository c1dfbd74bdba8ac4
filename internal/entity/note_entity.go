package entity

import "time"

type Note struct {
	Text      string
	CreatedAt time.Time
}
