package address

import "time"

// IDGenerator mints case ids and supplies the clock
type IDGenerator interface {
	Now() time.Time
	CaseID() string
}
