package room

import (
	"errors"
	"time"
)

var ErrRoomNotFound = errors.New("room not found")

type Room struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Capacity   int    `json:"capacity"`
	Location   string `json:"location"`
	Available  bool   `json:"available"`
	Restricted bool   `json:"restricted"`
}

type Equipment struct {
	ID          int64  `json:"id"`
	RoomID      int64  `json:"roomId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// Schedule is a fixed recurring or one-off usage block a room carries outside
// the booking lifecycle (classes, maintenance).
type Schedule struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"roomId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Usage     string    `json:"usage"`
}
