// File: internal/dto/message_response.go
package dto

// MessageResponse 後端所有回應共用的訊息格式
type MessageResponse struct {
	// message 成功或錯誤描述
	Message string `json:"message"`
}
