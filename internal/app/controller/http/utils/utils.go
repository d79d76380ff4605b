package utils

import "time"

const (
	RequestTimeout = 3 * time.Second
)
