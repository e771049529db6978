package types

import (
	"encoding/json"
	"time"
)

const TopicActivityRegistered = "activity.registered"

// ActivityRegistered is published once for every activity event that has been stored.
type ActivityRegistered struct {
	Event     ActivityEvent `json:"event"`
	Tenant    string        `json:"tenant"`
	Timestamp time.Time     `json:"timestamp"`
}

func (a *ActivityRegistered) ContentType() string {
	return "application/json"
}

func (a *ActivityRegistered) TopicName() string {
	return TopicActivityRegistered
}

func (a *ActivityRegistered) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}
