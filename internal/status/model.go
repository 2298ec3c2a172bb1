// Package status implements the status-check diagnostic CRUD.
package status

import "time"

// Check records a client ping.
type Check struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}
