package dto

import (
	"encoding/json"

	"hotel/internal/domains/audit/model"
	"hotel/shared"
	"hotel/shared/constant"
)

type LogResponse struct {
	ID         string          `json:"id"`
	EventID    string          `json:"event_id"`
	Topic      string          `json:"topic"`
	EventType  string          `json:"event_type"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Actor      string          `json:"actor"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt string          `json:"occurred_at"`
	CreatedAt  string          `json:"created_at"`
}

func (r *LogResponse) FromModel(model model.Log) {
	r.ID = model.ID
	r.EventID = model.EventID
	r.Topic = model.Topic
	r.EventType = model.EventType
	r.EntityType = model.EntityType
	r.EntityID = model.EntityID
	r.Actor = model.Actor
	r.Payload = json.RawMessage(model.Payload)
	r.OccurredAt = model.OccurredAt.Format(constant.DateFormat)
	r.CreatedAt = model.CreatedAt.Format(constant.DateFormat)
}

type GetLogsResponse struct {
	Logs      []LogResponse `json:"logs"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetLogsResponse) FromModels(models []model.Log, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Logs = make([]LogResponse, len(models))
	for i, mod := range models {
		r.Logs[i].FromModel(mod)
	}
}
