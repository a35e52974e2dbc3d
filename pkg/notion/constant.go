package notion

import "time"

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	DefaultVersion = "2022-06-28"
	DefaultTimeout = 15 * time.Second

	StatusOpen = "Open"
	StatusDone = "Done"

	// Database property names the client writes.
	PropertyName   = "Name"
	PropertyStatus = "Status"
	PropertyDue    = "Due"
	PropertyRepeat = "Repeat"
)
