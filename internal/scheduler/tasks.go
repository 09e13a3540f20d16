package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskGeocodeProperty = "properties.geocode"

type GeocodePropertyPayload struct {
	PropertyID string `json:"propertyId"`
}

func NewGeocodePropertyTask(payload GeocodePropertyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGeocodeProperty, data), nil
}

func ParseGeocodePropertyPayload(task *asynq.Task) (GeocodePropertyPayload, error) {
	var payload GeocodePropertyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return GeocodePropertyPayload{}, err
	}
	return payload, nil
}
