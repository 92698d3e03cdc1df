package dto

type BatchSendResponse struct {
	RouteID string `json:"route_id"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Total   int    `json:"total"`
}

type ScheduleChangeRequest struct {
	Reason string `json:"reason"`
}

type StopResponseRequest struct {
	Content string `json:"content"`
}

type StopResponseResult struct {
	StopID  string `json:"stop_id"`
	Action  string `json:"action"`
	Message string `json:"message"`
}

type TypeReadinessResponse struct {
	Total     int `json:"total"`
	Confirmed int `json:"confirmed"`
	Pending   int `json:"pending"`
}

type ReadinessResponse struct {
	RouteID           string                `json:"route_id"`
	TotalStops        int                   `json:"total_stops"`
	ConfirmedStops    int                   `json:"confirmed_stops"`
	PendingStops      int                   `json:"pending_stops"`
	ConfirmationRate  float64               `json:"confirmation_rate"`
	Pickups           TypeReadinessResponse `json:"pickups"`
	Deliveries        TypeReadinessResponse `json:"deliveries"`
	ReadyForExecution bool                  `json:"ready_for_execution"`
}
