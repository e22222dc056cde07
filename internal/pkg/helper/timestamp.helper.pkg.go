package helper

import (
	"time"
)

func TimeRightNow() time.Time {
	return time.Now().UTC()
}
