package backend

// Both services wrap payloads as {"response": {"data": ...}}.
type envelope[T any] struct {
	Response struct {
		Data T `json:"data"`
	} `json:"response"`
}

type traceListRequest struct {
	Locale        string `json:"locale"`
	PageIndex     int    `json:"pageIndex"`
	PageSize      int    `json:"pageSize"`
	StartTimeFrom string `json:"startTimeFrom"`
	StartTimeTo   string `json:"startTimeTo"`
	ProjectCode   string `json:"projectCode"`
	State         int    `json:"state"`
	Type          string `json:"type"`
}

// traceEntry keeps SerialNumber as a pointer so a missing field can be told
// apart from an empty one.
type traceEntry struct {
	SerialNumber *string `json:"serialNumber"`
}

type abortProjectRequest struct {
	SerialNumber   string `json:"serialNumber"`
	PersonInCharge string `json:"personInCharge"`
	Locale         string `json:"locale"`
	Comment        string `json:"comment"`
}

type processListRequest struct {
	ProcessID    string `json:"processId"`
	SerialNumber string `json:"serialNumber"`
	State        *int   `json:"state"`
	PageNum      int    `json:"pageNum"`
	PageSize     int    `json:"pageSize"`
}

type processPage struct {
	Records []processRecord `json:"records"`
}

type processRecord struct {
	SerialNumber  string `json:"serialNumber"`
	CompleteState *int   `json:"completeState"`
}

type abortProcessRequest struct {
	Comment      string `json:"comment"`
	PerformerID  string `json:"performerId"`
	SerialNumber string `json:"serialNumber"`
}
