package models

// RequestDetails carries per-request metadata attached by the middleware and
// picked up by the logger.
type RequestDetails struct {
	RequestID      string                 `json:"request_id"`
	IP             string                 `json:"ip"`
	UserAgent      string                 `json:"user_agent"`
	HTTPMethod     string                 `json:"http_method"`
	Path           string                 `json:"path"`
	OperationName  string                 `json:"operation_name"`
	RequestTime    string                 `json:"request_time"`
	ResponseTime   string                 `json:"response_time"`
	Status         int                    `json:"status"`
	RequestParams  map[string]interface{} `json:"request_params"`
	ResponseParams map[string]interface{} `json:"response_params"`
}
