package store

import "time"

type Credentials struct {
	AccessToken  string
	RefreshToken string
}

type SavedJob struct {
	ID      int64
	Company string
	Role    string
	URL     string
	SavedAt time.Time
}
