package ports

import "time"

// Clock supplies the current instant
type Clock interface {
	Now() time.Time
}
