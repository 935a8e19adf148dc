package model

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type SuccessMsg struct {
	Message string `json:"message"`
}

type PingResponse struct {
	Message string `json:"message"`
}
