package models

import "time"

// StatusCheck is a client-reported liveness ping
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// StatusCheckRequest represents an incoming status ping
type StatusCheckRequest struct {
	ClientName string `json:"client_name" binding:"required,max=255"`
}
