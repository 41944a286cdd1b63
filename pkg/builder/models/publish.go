package models

import "time"

// PublishResult describes the outcome of one build run. ID and UID are only
// set when the collection was actually created remotely.
type PublishResult struct {
	ID        string    `json:"id,omitempty"`
	UID       string    `json:"uid,omitempty"`
	Name      string    `json:"name"`
	File      string    `json:"file,omitempty"`
	Uploaded  bool      `json:"uploaded"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
