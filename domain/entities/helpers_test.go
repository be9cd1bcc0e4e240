package entities

import "time"

var testTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
